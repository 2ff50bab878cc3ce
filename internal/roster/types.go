package roster

import (
	"time"

	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/google/uuid"
)

// Query selects one roster page.
type Query struct {
	Page      int
	SortField enums.RosterSortField
	SortOrder enums.SortOrder
}

// Request is a Query plus the free-text search applied to the fetched page.
type Request struct {
	Query
	Search string
}

// PageQuery is what the store is asked for. SortField is never a derived field.
type PageQuery struct {
	Page      int
	PageSize  int
	SortField enums.RosterSortField
	SortOrder enums.SortOrder
}

// Offset returns the index of the first row in the requested page.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ExtendedProfile is the verification state shared by the fetchman, vendor and host tables.
type ExtendedProfile struct {
	VerificationStatus string
	IsSuspended        bool
}

// Row is a profile merged with its resolved role and display status.
type Row struct {
	ID        uuid.UUID           `json:"id"`
	Name      *string             `json:"name"`
	Surname   *string             `json:"surname"`
	Email     string              `json:"email"`
	CreatedAt time.Time           `json:"created_at"`
	Role      enums.UserRole      `json:"role"`
	Status    enums.DisplayStatus `json:"status"`
}

// Result is an assembled roster page.
type Result struct {
	Rows       []Row `json:"rows"`
	TotalPages int   `json:"total_pages"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}
