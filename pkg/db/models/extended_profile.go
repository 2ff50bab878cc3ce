package models

import (
	"time"

	"github.com/google/uuid"
)

// FetchmanProfile holds verification state for delivery partners.
type FetchmanProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	VerificationStatus string    `gorm:"column:verification_status;type:text;not null;default:pending"`
	IsSuspended        bool      `gorm:"column:is_suspended;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (FetchmanProfile) TableName() string { return "fetchman_profiles" }

// VendorProfile is shared by vendors and merchants.
type VendorProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	VerificationStatus string    `gorm:"column:verification_status;type:text;not null;default:pending"`
	IsSuspended        bool      `gorm:"column:is_suspended;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (VendorProfile) TableName() string { return "vendor_profiles" }

// HostProfile holds verification state for event hosts.
type HostProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	VerificationStatus string    `gorm:"column:verification_status;type:text;not null;default:pending"`
	IsSuspended        bool      `gorm:"column:is_suspended;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (HostProfile) TableName() string { return "host_profiles" }
