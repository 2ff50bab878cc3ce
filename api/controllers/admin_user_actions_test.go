package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gatherly/gatherly-backend/internal/accounts"
	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
)

type stubLifecycle struct {
	applyFn   func(ctx context.Context, req accounts.ActionRequest) (*accounts.ActionResult, error)
	historyFn func(ctx context.Context, userID uuid.UUID, limit int) ([]models.AccountAction, error)
}

func (s stubLifecycle) Apply(ctx context.Context, req accounts.ActionRequest) (*accounts.ActionResult, error) {
	return s.applyFn(ctx, req)
}

func (s stubLifecycle) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.AccountAction, error) {
	return s.historyFn(ctx, userID, limit)
}

func withUserParam(r *http.Request, userID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminApplyUserAction(t *testing.T) {
	userID := uuid.New()
	actorID := uuid.New()
	lc := stubLifecycle{applyFn: func(ctx context.Context, req accounts.ActionRequest) (*accounts.ActionResult, error) {
		if req.UserID != userID || req.ActorID != actorID || req.Action != enums.AccountActionBlacklist || req.Reason != "fraud" {
			t.Fatalf("unexpected request %+v", req)
		}
		return &accounts.ActionResult{
			ActionID: uuid.New(),
			UserID:   userID,
			Action:   req.Action,
			Outcome:  enums.AccountActionOutcomeAcknowledged,
		}, nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"action":"Blacklist","reason":"fraud"}`))
	req = withActor(withUserParam(req, userID.String()), actorID.String())
	resp := httptest.NewRecorder()
	AdminApplyUserAction(lc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data accounts.ActionResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Outcome != enums.AccountActionOutcomeAcknowledged {
		t.Fatalf("unexpected outcome %s", envelope.Data.Outcome)
	}
}

func TestAdminApplyUserActionRejectsBadInput(t *testing.T) {
	lc := stubLifecycle{applyFn: func(context.Context, accounts.ActionRequest) (*accounts.ActionResult, error) {
		t.Fatal("lifecycle must not be called")
		return nil, nil
	}}
	actor := uuid.NewString()

	cases := map[string]struct {
		userID string
		actor  string
		body   string
		want   int
	}{
		"bad user id":    {userID: "nope", actor: actor, body: `{"action":"flag"}`, want: http.StatusBadRequest},
		"missing action": {userID: uuid.NewString(), actor: actor, body: `{}`, want: http.StatusBadRequest},
		"unknown field":  {userID: uuid.NewString(), actor: actor, body: `{"action":"flag","force":true}`, want: http.StatusBadRequest},
		"no actor":       {userID: uuid.NewString(), actor: "", body: `{"action":"flag"}`, want: http.StatusUnauthorized},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req = withActor(withUserParam(req, tc.userID), tc.actor)
			resp := httptest.NewRecorder()
			AdminApplyUserAction(lc, nil).ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestAdminApplyUserActionNotFound(t *testing.T) {
	lc := stubLifecycle{applyFn: func(context.Context, accounts.ActionRequest) (*accounts.ActionResult, error) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"action":"flag"}`))
	req = withActor(withUserParam(req, uuid.NewString()), uuid.NewString())
	resp := httptest.NewRecorder()
	AdminApplyUserAction(lc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminUserActionHistory(t *testing.T) {
	userID := uuid.New()
	reason := "spam"
	lc := stubLifecycle{historyFn: func(ctx context.Context, id uuid.UUID, limit int) ([]models.AccountAction, error) {
		if id != userID || limit != 5 {
			t.Fatalf("unexpected args %s %d", id, limit)
		}
		return []models.AccountAction{{
			ID:        uuid.New(),
			UserID:    userID,
			ActorID:   uuid.New(),
			Action:    enums.AccountActionFlag,
			Reason:    &reason,
			Outcome:   enums.AccountActionOutcomeAcknowledged,
			CreatedAt: time.Now(),
		}}, nil
	}}

	req := withUserParam(httptest.NewRequest(http.MethodGet, "/?limit=5", nil), userID.String())
	resp := httptest.NewRecorder()
	AdminUserActionHistory(lc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Actions []struct {
				Action string  `json:"action"`
				Reason *string `json:"reason"`
			} `json:"actions"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Actions) != 1 || envelope.Data.Actions[0].Action != "flag" {
		t.Fatalf("unexpected actions %+v", envelope.Data.Actions)
	}
}
