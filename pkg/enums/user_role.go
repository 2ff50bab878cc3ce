package enums

import "fmt"

// UserRole is the platform-level role assigned to an account.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleFetchman UserRole = "fetchman"
	UserRoleVendor   UserRole = "vendor"
	UserRoleMerchant UserRole = "merchant"
	UserRoleHost     UserRole = "host"
	UserRoleCustomer UserRole = "customer"
	UserRoleAttendee UserRole = "attendee"

	// UserRoleUnassigned marks an account without any role row. It is never stored.
	UserRoleUnassigned UserRole = "unassigned"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleFetchman,
	UserRoleVendor,
	UserRoleMerchant,
	UserRoleHost,
	UserRoleCustomer,
	UserRoleAttendee,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a storable role. The unassigned sentinel is not.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
