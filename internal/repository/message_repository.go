package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rentkit/outreach-console/internal/domain"
)

// MessageRepository handles database operations for both message domains.
// Every method routes to the table implied by the explicit channel; the
// whole table is fetched per call and filtering happens in memory.
type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func tableFor(ch domain.Channel) string {
	if ch == domain.ChannelEmail {
		return "email_messages"
	}
	return "sms_messages"
}

// The two tables are near-parallel: only email carries subject, only sms
// carries created_date.
func columnsFor(ch domain.Channel) string {
	if ch == domain.ChannelEmail {
		return "id, context_category, content_name, subject, content, message_type, sent_date, created_at, updated_at"
	}
	return "id, context_category, content_name, content, message_type, created_date, sent_date, created_at, updated_at"
}

func (r *MessageRepository) GetAll(ctx context.Context, ch domain.Channel) ([]domain.Message, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", columnsFor(ch), tableFor(ch))

	var messages []domain.Message
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("failed to get %s messages: %w", ch, err)
	}

	for i := range messages {
		messages[i].Channel = ch
	}

	return messages, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, ch domain.Channel, id int64) (*domain.Message, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", columnsFor(ch), tableFor(ch))

	var message domain.Message
	if err := r.db.GetContext(ctx, &message, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s message %d: %w", ch, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s message %d: %w", ch, id, err)
	}

	message.Channel = ch

	return &message, nil
}

func (r *MessageRepository) Create(ctx context.Context, m domain.NewMessage) (*domain.Message, error) {
	var query string
	var args []any

	if m.Channel == domain.ChannelEmail {
		query = `
			INSERT INTO email_messages (context_category, content_name, subject, content, message_type, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`
		args = []any{m.ContextCategory, m.ContentName, m.Subject, m.Content, m.MessageType}
	} else {
		query = `
			INSERT INTO sms_messages (context_category, content_name, content, message_type, created_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`
		args = []any{m.ContextCategory, m.ContentName, m.Content, m.MessageType}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s message: %w", m.Channel, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return r.GetByID(ctx, m.Channel, id)
}

// Update applies a partial patch, building the SET clause from the non-nil
// fields, and returns the fresh record.
func (r *MessageRepository) Update(ctx context.Context, ch domain.Channel, id int64, patch domain.MessageUpdate) (*domain.Message, error) {
	sets := []string{}
	args := []any{}

	if patch.ContextCategory != nil {
		sets = append(sets, "context_category = ?")
		args = append(args, *patch.ContextCategory)
	}
	if patch.ContentName != nil {
		sets = append(sets, "content_name = ?")
		args = append(args, *patch.ContentName)
	}
	if patch.Subject != nil && ch == domain.ChannelEmail {
		sets = append(sets, "subject = ?")
		args = append(args, *patch.Subject)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.MessageType != nil {
		sets = append(sets, "message_type = ?")
		args = append(args, *patch.MessageType)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, ch, id)
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", tableFor(ch), strings.Join(sets, ", "))
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update %s message %d: %w", ch, id, err)
	}

	// MySQL reports 0 affected rows for a no-change update, so existence is
	// confirmed by the re-read rather than RowsAffected.
	return r.GetByID(ctx, ch, id)
}

// MarkSent overwrites the send timestamp; at most one send time is
// remembered per message.
func (r *MessageRepository) MarkSent(ctx context.Context, ch domain.Channel, id int64, sentAt time.Time) (*domain.Message, error) {
	query := fmt.Sprintf("UPDATE %s SET sent_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", tableFor(ch))

	result, err := r.db.ExecContext(ctx, query, sentAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark %s message %d as sent: %w", ch, id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%s message %d: %w", ch, id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, ch, id)
}

// Delete removes the record permanently. Funnel assignments referencing it
// are intentionally left alone.
func (r *MessageRepository) Delete(ctx context.Context, ch domain.Channel, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", tableFor(ch))

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s message %d: %w", ch, id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s message %d: %w", ch, id, domain.ErrNotFound)
	}

	return nil
}

// CountByType returns per-bucket record counts for one channel's table.
func (r *MessageRepository) CountByType(ctx context.Context, ch domain.Channel) (map[domain.MessageType]int64, error) {
	query := fmt.Sprintf("SELECT message_type, COUNT(*) AS total FROM %s GROUP BY message_type", tableFor(ch))

	var rows []struct {
		MessageType domain.MessageType `db:"message_type"`
		Total       int64              `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count %s messages: %w", ch, err)
	}

	counts := make(map[domain.MessageType]int64, len(rows))
	for _, row := range rows {
		counts[row.MessageType] = row.Total
	}

	return counts, nil
}
