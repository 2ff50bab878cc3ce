package roster

import (
	"sort"
	"strings"

	"github.com/gatherly/gatherly-backend/pkg/enums"
)

// Filter keeps the rows whose name, surname, email or role contains term,
// ignoring case. Status is not searched. A blank term returns rows unchanged.
func Filter(rows []Row, term string) []Row {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matches(row, needle) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row Row, needle string) bool {
	fields := []string{deref(row.Name), deref(row.Surname), row.Email, row.Role.String()}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// sortDerived orders an assembled page by role or status. Ties keep page order.
func sortDerived(rows []Row, field enums.RosterSortField, order enums.SortOrder) {
	key := func(r Row) string { return r.Role.String() }
	if field == enums.RosterSortStatus {
		key = func(r Row) string { return r.Status.String() }
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if order == enums.SortOrderDesc {
			return key(rows[i]) > key(rows[j])
		}
		return key(rows[i]) < key(rows[j])
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
