package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rentkit/outreach-console/internal/domain"
)

type categoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, name string, description *string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string, description *string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService struct {
	repo categoryRepository
}

func NewCategoryService(repo categoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	name, desc, err := normalizeCategory(name, description)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, name, desc)
}

func (s *CategoryService) Update(ctx context.Context, id int64, name, description string) (*domain.Category, error) {
	name, desc, err := normalizeCategory(name, description)
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, name, desc)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// normalizeCategory trims both fields, requires a name, and stores a blank
// description as NULL.
func normalizeCategory(name, description string) (string, *string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("category name is required: %w", domain.ErrValidation)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return name, nil, nil
	}

	return name, &description, nil
}
