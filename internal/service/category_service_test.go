package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rentkit/outreach-console/internal/domain"
)

type fakeCategoryRepo struct {
	categories []domain.Category
	nextID     int64

	createdName *string
	createdDesc *string
}

func (r *fakeCategoryRepo) GetAll(ctx context.Context) ([]domain.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
}

func (r *fakeCategoryRepo) Create(ctx context.Context, name string, description *string) (*domain.Category, error) {
	r.createdName = &name
	r.createdDesc = description

	r.nextID++
	created := domain.Category{ID: r.nextID, Name: name, Description: description}
	r.categories = append(r.categories, created)

	return &created, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, id int64, name string, description *string) (*domain.Category, error) {
	for i, c := range r.categories {
		if c.ID == id {
			r.categories[i].Name = name
			r.categories[i].Description = description
			return &r.categories[i], nil
		}
	}
	return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
}

func TestCategoryCreate_RequiresName(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{})

	_, err := svc.Create(context.Background(), "   ", "desc")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestCategoryCreate_TrimsAndNullsEmptyDescription(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewCategoryService(repo)

	created, err := svc.Create(context.Background(), "  Welcome  ", "   ")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.Name != "Welcome" {
		t.Errorf("expected trimmed name Welcome, got %q", created.Name)
	}
	if repo.createdDesc != nil {
		t.Errorf("expected blank description stored as nil, got %q", *repo.createdDesc)
	}
}

func TestCategoryUpdate_KeepsDescriptionWhenPresent(t *testing.T) {
	repo := &fakeCategoryRepo{
		categories: []domain.Category{{ID: 1, Name: "Old"}},
	}
	svc := NewCategoryService(repo)

	updated, err := svc.Update(context.Background(), 1, "New Name", " note ")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Name != "New Name" {
		t.Errorf("expected renamed category, got %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "note" {
		t.Errorf("expected trimmed description 'note', got %v", updated.Description)
	}
}

func TestCategoryDelete_NotFound(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{})

	err := svc.Delete(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
