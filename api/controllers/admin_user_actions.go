package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gatherly/gatherly-backend/internal/accounts"
	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
	"github.com/gatherly/gatherly-backend/pkg/logger"

	"github.com/gatherly/gatherly-backend/api/middleware"
	"github.com/gatherly/gatherly-backend/api/responses"
	"github.com/gatherly/gatherly-backend/api/validators"
)

type accountLifecycle interface {
	Apply(ctx context.Context, req accounts.ActionRequest) (*accounts.ActionResult, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.AccountAction, error)
}

type userActionRequest struct {
	Action string `json:"action" validate:"required,account_action"`
	Reason string `json:"reason" validate:"max=500"`
}

type userActionEntry struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Action    string    `json:"action"`
	Reason    *string   `json:"reason,omitempty"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminApplyUserAction records a lifecycle action requested by the calling admin.
func AdminApplyUserAction(lc accountLifecycle, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account lifecycle unavailable"))
			return
		}

		userID, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid actor"))
			return
		}

		var body userActionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := lc.Apply(r.Context(), accounts.ActionRequest{
			UserID:  userID,
			ActorID: actorID,
			Action:  enums.AccountAction(strings.ToLower(strings.TrimSpace(body.Action))),
			Reason:  body.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminUserActionHistory lists the most recent lifecycle actions recorded for a user.
func AdminUserActionHistory(lc accountLifecycle, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account lifecycle unavailable"))
			return
		}
		userID, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := lc.History(r.Context(), userID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries := make([]userActionEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, userActionEntry{
				ID:        row.ID,
				ActorID:   row.ActorID,
				Action:    row.Action.String(),
				Reason:    row.Reason,
				Outcome:   string(row.Outcome),
				CreatedAt: row.CreatedAt.UTC(),
			})
		}
		responses.WriteSuccess(w, map[string]any{"actions": entries})
	}
}

func userIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "userId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}
