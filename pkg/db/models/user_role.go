package models

import (
	"time"

	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserRole links a profile to one platform role.
type UserRole struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Role      enums.UserRole `gorm:"column:role;type:text;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (UserRole) TableName() string { return "user_roles" }
