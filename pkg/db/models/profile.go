package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the base account record every user owns.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      *string   `gorm:"column:name"`
	Surname   *string   `gorm:"column:surname"`
	Email     string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Profile) TableName() string { return "profiles" }
