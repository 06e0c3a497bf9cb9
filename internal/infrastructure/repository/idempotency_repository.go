package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	domainRepo "github.com/scentworks/scentworks-api/internal/domain/repository"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	var record entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		First(&record, "key = ? AND user_id = ?", key, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Delete(&entity.IdempotencyKey{}, "expires_at < ?", time.Now()).Error
}
