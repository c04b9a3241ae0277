package activity

import (
	"context"
	"time"

	"github.com/maisonvelour/storefront-backend/pkg/db/models"
	"github.com/maisonvelour/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists the admin activity trail.
type Repository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, params listParams) ([]models.ActivityLog, *pagination.Cursor, error)
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an activity repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listParams struct {
	Limit   int
	Cursor  *pagination.Cursor
	ActorID string
}

func (r *repositoryImpl) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listParams) ([]models.ActivityLog, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})
	if params.ActorID != "" {
		query = query.Where("actor_id = ?", params.ActorID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.ActivityLog
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		last := rows[normalized-1]
		return rows[:normalized], &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}

// DeleteOlderThan removes entries recorded before cutoff. A nil tx uses the
// repository connection.
func (r *repositoryImpl) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	res := conn.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	return res.RowsAffected, res.Error
}
