package db

import (
	"errors"

	"gorm.io/gorm"
)

// IsRecordNotFound reports whether err wraps gorm's missing-row sentinel.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
