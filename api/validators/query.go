package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
)

const maxSearchLength = 200

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// RosterQuery is the raw admin roster listing query.
type RosterQuery struct {
	Page   int    `json:"page" validate:"min=1"`
	Sort   string `json:"sort" validate:"roster_sort"`
	Order  string `json:"order" validate:"oneof=asc desc"`
	Search string `json:"search"`
}

// ParseRosterQuery reads page, sort, order and search, applying defaults
// (page 1, created_at, desc) for missing values.
func ParseRosterQuery(r *http.Request) (RosterQuery, error) {
	page, err := ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return RosterQuery{}, err
	}
	q := r.URL.Query()
	out := RosterQuery{
		Page:   page,
		Sort:   strings.ToLower(strings.TrimSpace(q.Get("sort"))),
		Order:  strings.ToLower(strings.TrimSpace(q.Get("order"))),
		Search: SanitizeString(q.Get("search"), maxSearchLength),
	}
	if out.Sort == "" {
		out.Sort = "created_at"
	}
	if out.Order == "" {
		out.Order = "desc"
	}
	if err := ValidateStruct(out); err != nil {
		return RosterQuery{}, err
	}
	return out, nil
}
