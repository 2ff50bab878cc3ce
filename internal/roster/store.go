package roster

import (
	"context"

	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/google/uuid"
)

// ProfileKind names one of the extended profile tables.
type ProfileKind string

const (
	ProfileKindFetchman ProfileKind = "fetchman"
	ProfileKindVendor   ProfileKind = "vendor"
	ProfileKindHost     ProfileKind = "host"
)

// ProfileKindFor maps a role onto the extended profile table that carries its status.
// Vendors and merchants share a table. Roles without extended profiles report false.
func ProfileKindFor(role enums.UserRole) (ProfileKind, bool) {
	switch role {
	case enums.UserRoleFetchman:
		return ProfileKindFetchman, true
	case enums.UserRoleVendor, enums.UserRoleMerchant:
		return ProfileKindVendor, true
	case enums.UserRoleHost:
		return ProfileKindHost, true
	default:
		return "", false
	}
}

// RoleLookup returns every role row for a user, oldest first.
type RoleLookup interface {
	FetchRoles(ctx context.Context, userID uuid.UUID) ([]enums.UserRole, error)
}

// ExtendedProfileLookup returns the extended profile of the given kind, or nil when none exists.
type ExtendedProfileLookup interface {
	FetchExtendedProfile(ctx context.Context, kind ProfileKind, userID uuid.UUID) (*ExtendedProfile, error)
}

// Store is the read surface the roster needs from the backing database.
type Store interface {
	RoleLookup
	ExtendedProfileLookup
	FetchProfilePage(ctx context.Context, q PageQuery) ([]models.Profile, error)
	CountProfiles(ctx context.Context) (int64, error)
}
