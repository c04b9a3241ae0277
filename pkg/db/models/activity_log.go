package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/maisonvelour/storefront-backend/pkg/db/types"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
)

// ActivityLog is an append-only record of an admin request.
type ActivityLog struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ActorID   string          `gorm:"column:actor_id;not null;index"`
	ActorRole enums.AdminRole `gorm:"column:actor_role;type:text;not null"`
	Action    string          `gorm:"column:action;not null"`
	Method    string          `gorm:"column:method;not null"`
	Path      string          `gorm:"column:path;not null"`
	Status    int             `gorm:"column:status;not null"`
	Metadata  dbtypes.JSONMap `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;index"`
}
