package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rentkit/outreach-console/environments"
	"github.com/rentkit/outreach-console/internal/domain"
	"github.com/rentkit/outreach-console/internal/view"
	"github.com/rentkit/outreach-console/pkg/logger"
)

// Small internal interfaces so we can test without touching real DB/cache/webhook.
type messageRepository interface {
	GetAll(ctx context.Context, ch domain.Channel) ([]domain.Message, error)
	GetByID(ctx context.Context, ch domain.Channel, id int64) (*domain.Message, error)
	Create(ctx context.Context, m domain.NewMessage) (*domain.Message, error)
	Update(ctx context.Context, ch domain.Channel, id int64, patch domain.MessageUpdate) (*domain.Message, error)
	MarkSent(ctx context.Context, ch domain.Channel, id int64, sentAt time.Time) (*domain.Message, error)
	Delete(ctx context.Context, ch domain.Channel, id int64) error
	CountByType(ctx context.Context, ch domain.Channel) (map[domain.MessageType]int64, error)
}

type EventsClient interface {
	Notify(ctx context.Context, event domain.ChangeEvent) error
}

type CacheClient interface {
	CacheRecentSend(ctx context.Context, ch domain.Channel, id int64, sentAt time.Time) error
	GetRecentSends(ctx context.Context) ([]domain.RecentSend, error)
}

type MessageService struct {
	repo   messageRepository
	events EventsClient
	cache  CacheClient
	config environments.MessageConfig
}

func NewMessageService(
	repo messageRepository,
	events EventsClient,
	cache CacheClient,
	config environments.MessageConfig,
) *MessageService {
	return &MessageService{
		repo:   repo,
		events: events,
		cache:  cache,
		config: config,
	}
}

// List fetches the full table for the bucket's channel and computes the
// filtered, sorted view in memory.
func (s *MessageService) List(ctx context.Context, q view.Query) ([]domain.Message, error) {
	messages, err := s.repo.GetAll(ctx, q.Bucket.Channel())
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return view.Apply(messages, q), nil
}

// AvailableCategories reports the categories present in a bucket, untouched
// by any active category or search filter.
func (s *MessageService) AvailableCategories(ctx context.Context, bucket domain.MessageType) ([]string, error) {
	messages, err := s.repo.GetAll(ctx, bucket.Channel())
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return view.Categories(messages, bucket), nil
}

func (s *MessageService) Create(ctx context.Context, in domain.NewMessage) (*domain.Message, error) {
	if err := s.validateNew(in); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "message.created", created)

	return created, nil
}

func (s *MessageService) Update(ctx context.Context, ch domain.Channel, id int64, patch domain.MessageUpdate) (*domain.Message, error) {
	if patch.MessageType != nil && patch.MessageType.Channel() != ch {
		return nil, fmt.Errorf("message type %q does not belong to channel %q: %w", *patch.MessageType, ch, domain.ErrValidation)
	}
	if patch.Subject != nil && ch != domain.ChannelEmail {
		return nil, fmt.Errorf("subject is only valid for email messages: %w", domain.ErrValidation)
	}
	if patch.Content != nil && len(*patch.Content) > s.config.MaxContentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters: %w", s.config.MaxContentLength, domain.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, ch, id, patch)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "message.updated", updated)

	return updated, nil
}

// MarkSent stamps the record with the current instant. Re-invoking is
// allowed and simply overwrites the remembered send time.
func (s *MessageService) MarkSent(ctx context.Context, ch domain.Channel, id int64) (*domain.Message, error) {
	sentAt := time.Now().UTC()

	updated, err := s.repo.MarkSent(ctx, ch, id, sentAt)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheRecentSend(ctx, ch, id, sentAt); err != nil {
			logger.Warnf("Failed to cache recent send %s:%d: %v", ch, id, err)
		}
	}

	s.notify(ctx, "message.sent", updated)

	return updated, nil
}

// Duplicate copies category, name, body and type (and subject for email),
// appends " (Copy)" to the name and creates the copy unsent regardless of
// the source's send state.
func (s *MessageService) Duplicate(ctx context.Context, ch domain.Channel, id int64) (*domain.Message, error) {
	src, err := s.repo.GetByID(ctx, ch, id)
	if err != nil {
		return nil, err
	}

	copyIn := domain.NewMessage{
		Channel:         ch,
		ContextCategory: src.ContextCategory,
		ContentName:     src.ContentName + " (Copy)",
		Subject:         src.Subject,
		Content:         src.Content,
		MessageType:     src.MessageType,
	}

	created, err := s.repo.Create(ctx, copyIn)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "message.copied", created)

	return created, nil
}

func (s *MessageService) Delete(ctx context.Context, ch domain.Channel, id int64) error {
	if err := s.repo.Delete(ctx, ch, id); err != nil {
		return err
	}

	s.notify(ctx, "message.deleted", &domain.Message{ID: id, Channel: ch})

	return nil
}

func (s *MessageService) RecentSends(ctx context.Context) ([]domain.RecentSend, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("cache client not configured")
	}
	return s.cache.GetRecentSends(ctx)
}

// Stats merges per-bucket counts across both channels.
func (s *MessageService) Stats(ctx context.Context) (*domain.MessageStats, error) {
	smsCounts, err := s.repo.CountByType(ctx, domain.ChannelSMS)
	if err != nil {
		return nil, err
	}
	emailCounts, err := s.repo.CountByType(ctx, domain.ChannelEmail)
	if err != nil {
		return nil, err
	}

	return &domain.MessageStats{
		Broadcast:          smsCounts[domain.TypeBroadcast],
		FunnelContent:      smsCounts[domain.TypeFunnelContent],
		EmailBroadcast:     emailCounts[domain.TypeEmailBroadcast],
		EmailFunnelContent: emailCounts[domain.TypeEmailFunnelContent],
	}, nil
}

// validateNew enforces the required-field contract before any database
// call: category, name and content must be present, the type must belong to
// the channel, and subject is an email-only field.
func (s *MessageService) validateNew(in domain.NewMessage) error {
	if strings.TrimSpace(in.ContextCategory) == "" {
		return fmt.Errorf("contextCategory is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(in.ContentName) == "" {
		return fmt.Errorf("contentName is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("content is required: %w", domain.ErrValidation)
	}
	if in.MessageType.Channel() != in.Channel {
		return fmt.Errorf("message type %q does not belong to channel %q: %w", in.MessageType, in.Channel, domain.ErrValidation)
	}
	if in.Subject != nil && in.Channel != domain.ChannelEmail {
		return fmt.Errorf("subject is only valid for email messages: %w", domain.ErrValidation)
	}
	if len(in.Content) > s.config.MaxContentLength {
		return fmt.Errorf("content exceeds maximum length of %d characters: %w", s.config.MaxContentLength, domain.ErrValidation)
	}

	return nil
}

// notify is fire-and-forget: event delivery never fails a mutation.
func (s *MessageService) notify(ctx context.Context, event string, m *domain.Message) {
	if s.events == nil {
		return
	}

	err := s.events.Notify(ctx, domain.ChangeEvent{
		Event:      event,
		Channel:    m.Channel,
		MessageID:  m.ID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Warnf("Failed to post %s event for %s:%d: %v", event, m.Channel, m.ID, err)
	}
}
