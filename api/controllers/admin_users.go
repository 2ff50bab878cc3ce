package controllers

import (
	"context"
	"net/http"

	"github.com/gatherly/gatherly-backend/internal/roster"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
	"github.com/gatherly/gatherly-backend/pkg/logger"

	"github.com/gatherly/gatherly-backend/api/middleware"
	"github.com/gatherly/gatherly-backend/api/responses"
	"github.com/gatherly/gatherly-backend/api/validators"
)

type rosterLister interface {
	List(ctx context.Context, caller string, req roster.Request) (*roster.Result, error)
}

// AdminListUsers returns one page of the user roster with resolved roles and statuses.
func AdminListUsers(svc rosterLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "roster service unavailable"))
			return
		}

		q, err := validators.ParseRosterQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := roster.Request{
			Query: roster.Query{
				Page:      q.Page,
				SortField: enums.RosterSortField(q.Sort),
				SortOrder: enums.SortOrder(q.Order),
			},
			Search: q.Search,
		}

		result, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
