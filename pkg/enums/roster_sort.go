package enums

import (
	"fmt"
	"strings"
)

// RosterSortField names a column the admin roster can be ordered by.
type RosterSortField string

const (
	RosterSortName      RosterSortField = "name"
	RosterSortSurname   RosterSortField = "surname"
	RosterSortEmail     RosterSortField = "email"
	RosterSortRole      RosterSortField = "role"
	RosterSortStatus    RosterSortField = "status"
	RosterSortCreatedAt RosterSortField = "created_at"
)

var validRosterSortFields = []RosterSortField{
	RosterSortName,
	RosterSortSurname,
	RosterSortEmail,
	RosterSortRole,
	RosterSortStatus,
	RosterSortCreatedAt,
}

func (f RosterSortField) String() string {
	return string(f)
}

func (f RosterSortField) IsValid() bool {
	for _, candidate := range validRosterSortFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// IsDerived reports whether the field is computed per row rather than stored on profiles.
func (f RosterSortField) IsDerived() bool {
	return f == RosterSortRole || f == RosterSortStatus
}

// ParseRosterSortField converts raw query input into a RosterSortField.
func ParseRosterSortField(value string) (RosterSortField, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validRosterSortFields {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort field %q", value)
}

// SortOrder is the direction of an ordering.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

func (o SortOrder) String() string {
	return string(o)
}

func (o SortOrder) IsValid() bool {
	return o == SortOrderAsc || o == SortOrderDesc
}

// ParseSortOrder converts raw query input into a SortOrder.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case SortOrderAsc:
		return SortOrderAsc, nil
	case SortOrderDesc:
		return SortOrderDesc, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
