package models

import (
	"time"

	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/google/uuid"
)

// AccountAction is the audit trail of admin lifecycle requests.
type AccountAction struct {
	ID        uuid.UUID                  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID                  `gorm:"column:user_id;type:uuid;not null;index"`
	ActorID   uuid.UUID                  `gorm:"column:actor_id;type:uuid;not null"`
	Action    enums.AccountAction        `gorm:"column:action;type:text;not null"`
	Reason    *string                    `gorm:"column:reason"`
	Outcome   enums.AccountActionOutcome `gorm:"column:outcome;type:text;not null"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime"`
}

func (AccountAction) TableName() string { return "account_actions" }
