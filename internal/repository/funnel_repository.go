package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rentkit/outreach-console/internal/domain"
)

// FunnelRepository reads funnels and their content assignments. This side of
// the model is read-only in the console.
type FunnelRepository struct {
	db *sqlx.DB
}

func NewFunnelRepository(db *sqlx.DB) *FunnelRepository {
	return &FunnelRepository{db: db}
}

func (r *FunnelRepository) GetAllFunnels(ctx context.Context) ([]domain.SalesFunnel, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM sales_funnels
		ORDER BY name ASC
	`

	var funnels []domain.SalesFunnel
	if err := r.db.SelectContext(ctx, &funnels, query); err != nil {
		return nil, fmt.Errorf("failed to get funnels: %w", err)
	}

	return funnels, nil
}

// GetAssignments answers "which funnels is this content assigned to" for a
// set of message ids in one channel, joined with the funnel name.
func (r *FunnelRepository) GetAssignments(ctx context.Context, ch domain.Channel, messageIDs []int64) ([]domain.FunnelAssignment, error) {
	if len(messageIDs) == 0 {
		return []domain.FunnelAssignment{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT a.id, a.message_id, a.channel, a.funnel_id, f.name AS funnel_name
		FROM funnel_content_assignments a
		JOIN sales_funnels f ON f.id = a.funnel_id
		WHERE a.channel = ? AND a.message_id IN (?)
	`, ch, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build assignment query: %w", err)
	}

	var assignments []domain.FunnelAssignment
	if err := r.db.SelectContext(ctx, &assignments, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get funnel assignments: %w", err)
	}

	return assignments, nil
}
