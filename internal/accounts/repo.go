package accounts

import (
	"context"

	"github.com/gatherly/gatherly-backend/internal/repo"
	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 50

// Repository persists the account action audit trail.
type Repository struct {
	repo.Base
}

// NewRepository constructs an account action repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ProfileExists reports whether a profile row exists for the user.
func (r *Repository) ProfileExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.Exists(ctx, &models.Profile{}, "id = ?", userID)
}

// Record inserts an audit row.
func (r *Repository) Record(ctx context.Context, action *models.AccountAction) error {
	return r.DB(ctx).Create(action).Error
}

// ListForUser returns the newest actions recorded against a user.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.AccountAction, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	var rows []models.AccountAction
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
