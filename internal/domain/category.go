package domain

import "time"

// Category is a labeling taxonomy. Messages reference a category by name,
// not by foreign key: renaming a category does not cascade to the category
// text already stored on messages.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// SalesFunnel is a named drip sequence. Only read in this service; the
// execution engine lives elsewhere.
type SalesFunnel struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// FunnelAssignment links a funnel-content message to a funnel, joined with
// the funnel name for display.
type FunnelAssignment struct {
	ID         int64   `db:"id" json:"id"`
	MessageID  int64   `db:"message_id" json:"messageId"`
	Channel    Channel `db:"channel" json:"channel"`
	FunnelID   int64   `db:"funnel_id" json:"funnelId"`
	FunnelName string  `db:"funnel_name" json:"funnelName"`
}
