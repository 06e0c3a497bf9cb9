package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
)

// CategoryRepository defines the interface for the durable category registry
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
