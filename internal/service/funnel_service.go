package service

import (
	"context"

	"github.com/rentkit/outreach-console/internal/domain"
)

type funnelRepository interface {
	GetAllFunnels(ctx context.Context) ([]domain.SalesFunnel, error)
	GetAssignments(ctx context.Context, ch domain.Channel, messageIDs []int64) ([]domain.FunnelAssignment, error)
}

// FunnelService exposes the read-only funnel side of the model.
type FunnelService struct {
	repo funnelRepository
}

func NewFunnelService(repo funnelRepository) *FunnelService {
	return &FunnelService{repo: repo}
}

func (s *FunnelService) List(ctx context.Context) ([]domain.SalesFunnel, error) {
	return s.repo.GetAllFunnels(ctx)
}

func (s *FunnelService) Assignments(ctx context.Context, ch domain.Channel, messageIDs []int64) ([]domain.FunnelAssignment, error) {
	return s.repo.GetAssignments(ctx, ch, messageIDs)
}
