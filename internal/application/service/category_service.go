package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/pkg/apperror"
	"github.com/scentworks/scentworks-api/pkg/utils"
)

// CategoryService handles the durable purchase category registry
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
}

// CreateCategory adds a category label. Names are unique by slug; a
// duplicate is rejected rather than silently merged.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError("Category name is required")
	}

	slug := utils.Slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		UserID: input.UserID,
		Name:   name,
		Slug:   slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories returns every category label
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// UpdateCategory renames a category. Orders keep the label they were
// created with; renaming the registry entry does not rewrite history.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError("Category name is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	slug := utils.Slugify(name)
	if slug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
	}

	category.Name = name
	category.Slug = slug
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category label from the registry
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	return s.categoryRepo.Delete(ctx, id)
}
