package roster

import (
	"context"

	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/google/uuid"
)

// ResolveRole returns the first role row for the user, or the unassigned sentinel.
// All rows are returned as well so callers can surface users holding several roles.
// On lookup failure the role is unassigned and the error is returned for logging.
func ResolveRole(ctx context.Context, store RoleLookup, userID uuid.UUID) (enums.UserRole, []enums.UserRole, error) {
	roles, err := store.FetchRoles(ctx, userID)
	if err != nil {
		return enums.UserRoleUnassigned, nil, err
	}
	if len(roles) == 0 || roles[0] == "" {
		return enums.UserRoleUnassigned, roles, nil
	}
	return roles[0], roles, nil
}

// ResolveStatus looks up the role's extended profile and derives the display status.
// On lookup failure the status is pending and the error is returned for logging.
func ResolveStatus(ctx context.Context, store ExtendedProfileLookup, userID uuid.UUID, role enums.UserRole) (enums.DisplayStatus, error) {
	kind, ok := ProfileKindFor(role)
	if !ok {
		return enums.DisplayStatusActive, nil
	}
	profile, err := store.FetchExtendedProfile(ctx, kind, userID)
	if err != nil {
		return enums.DisplayStatusPending, err
	}
	return DeriveStatus(role, profile), nil
}

// DeriveStatus applies the display status rules to an already fetched extended profile.
func DeriveStatus(role enums.UserRole, profile *ExtendedProfile) enums.DisplayStatus {
	if _, ok := ProfileKindFor(role); !ok {
		return enums.DisplayStatusActive
	}
	if profile == nil {
		return enums.DisplayStatusPending
	}
	if profile.IsSuspended {
		return enums.DisplayStatusSuspended
	}
	if profile.VerificationStatus == "" {
		return enums.DisplayStatusPending
	}
	return enums.DisplayStatus(profile.VerificationStatus)
}
