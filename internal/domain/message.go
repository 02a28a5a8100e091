package domain

import (
	"strings"
	"time"
)

// Channel is the explicit discriminant between the two message domains.
// It is always carried on a record, never inferred from which optional
// fields happen to be set.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case ChannelSMS, ChannelEmail:
		return Channel(s), true
	}
	return "", false
}

// MessageType is one of the four (channel x purpose) buckets. Exactly one
// bucket per message, fixed at creation but editable.
type MessageType string

const (
	TypeBroadcast          MessageType = "broadcast"
	TypeFunnelContent      MessageType = "funnel_content"
	TypeEmailBroadcast     MessageType = "email_broadcast"
	TypeEmailFunnelContent MessageType = "email_funnel_content"
)

func ParseMessageType(s string) (MessageType, bool) {
	switch MessageType(s) {
	case TypeBroadcast, TypeFunnelContent, TypeEmailBroadcast, TypeEmailFunnelContent:
		return MessageType(s), true
	}
	return "", false
}

// Channel returns the message domain the bucket belongs to.
func (t MessageType) Channel() Channel {
	if strings.HasPrefix(string(t), "email_") {
		return ChannelEmail
	}
	return ChannelSMS
}

// IsBroadcast reports whether the bucket tracks a "last sent" timestamp.
func (t MessageType) IsBroadcast() bool {
	return t == TypeBroadcast || t == TypeEmailBroadcast
}

// Message is a single outbound content record from either domain. Subject
// is only populated for email records, CreatedDate only for SMS records
// (the email table carries no distinct creation-date column).
type Message struct {
	ID              int64       `db:"id" json:"id"`
	Channel         Channel     `db:"-" json:"channel"`
	ContextCategory string      `db:"context_category" json:"contextCategory"`
	ContentName     string      `db:"content_name" json:"contentName"`
	Subject         *string     `db:"subject" json:"subject,omitempty"`
	Content         string      `db:"content" json:"content"`
	MessageType     MessageType `db:"message_type" json:"messageType"`
	CreatedDate     *time.Time  `db:"created_date" json:"createdDate,omitempty"`
	SentDate        *time.Time  `db:"sent_date" json:"sentDate,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewMessage holds the fields accepted when creating a record.
type NewMessage struct {
	Channel         Channel
	ContextCategory string
	ContentName     string
	Subject         *string
	Content         string
	MessageType     MessageType
}

// MessageUpdate is a partial patch; nil fields are left untouched.
type MessageUpdate struct {
	ContextCategory *string
	ContentName     *string
	Subject         *string
	Content         *string
	MessageType     *MessageType
}

// RecentSend is the cached record of a broadcast marked sent.
type RecentSend struct {
	Channel   Channel   `json:"channel"`
	MessageID int64     `json:"messageId"`
	SentAt    time.Time `json:"sentAt"`
}

// ChangeEvent is posted to the ops webhook after a mutation is applied.
type ChangeEvent struct {
	Event      string    `json:"event"`
	Channel    Channel   `json:"channel"`
	MessageID  int64     `json:"messageId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// MessageStats counts records per bucket.
type MessageStats struct {
	Broadcast          int64 `json:"broadcast"`
	FunnelContent      int64 `json:"funnelContent"`
	EmailBroadcast     int64 `json:"emailBroadcast"`
	EmailFunnelContent int64 `json:"emailFunnelContent"`
}
