package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
	"github.com/gatherly/gatherly-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubActionRepo struct {
	exists    bool
	existsErr error
	recordErr error
	recorded  []*models.AccountAction
	history   []models.AccountAction
}

func (s *stubActionRepo) ProfileExists(context.Context, uuid.UUID) (bool, error) {
	return s.exists, s.existsErr
}

func (s *stubActionRepo) Record(_ context.Context, action *models.AccountAction) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, action)
	return nil
}

func (s *stubActionRepo) ListForUser(context.Context, uuid.UUID, int) ([]models.AccountAction, error) {
	return s.history, nil
}

func newTestLifecycle(t *testing.T, repo *stubActionRepo) Lifecycle {
	t.Helper()
	lc, err := NewLifecycle(repo, logger.Nop(), nil)
	if err != nil {
		t.Fatalf("new lifecycle: %v", err)
	}
	lc.(*lifecycle).now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return lc
}

func TestNewLifecycleRequiresRepo(t *testing.T) {
	if _, err := NewLifecycle(nil, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestApplyAcknowledgesEveryAction(t *testing.T) {
	actions := []enums.AccountAction{
		enums.AccountActionResetPassword,
		enums.AccountActionDeactivate,
		enums.AccountActionBlacklist,
		enums.AccountActionFlag,
		enums.AccountActionViewTransactions,
		enums.AccountActionViewRevenue,
		enums.AccountActionMessage,
	}
	for _, action := range actions {
		t.Run(action.String(), func(t *testing.T) {
			repo := &stubActionRepo{exists: true}
			lc := newTestLifecycle(t, repo)
			userID, actorID := uuid.New(), uuid.New()

			res, err := lc.Apply(context.Background(), ActionRequest{UserID: userID, ActorID: actorID, Action: action, Reason: " please review "})
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if res.Outcome != enums.AccountActionOutcomeAcknowledged || res.Action != action || res.UserID != userID {
				t.Fatalf("unexpected result %+v", res)
			}
			if len(repo.recorded) != 1 {
				t.Fatalf("expected one audit row, got %d", len(repo.recorded))
			}
			row := repo.recorded[0]
			if row.ActorID != actorID || row.Reason == nil || *row.Reason != "please review" {
				t.Fatalf("unexpected audit row %+v", row)
			}
			if !res.RecordedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected recorded_at %v", res.RecordedAt)
			}
		})
	}
}

func TestApplyValidation(t *testing.T) {
	repo := &stubActionRepo{exists: true}
	lc := newTestLifecycle(t, repo)
	self := uuid.New()

	cases := map[string]ActionRequest{
		"unknown action": {UserID: uuid.New(), ActorID: uuid.New(), Action: "delete"},
		"missing user":   {ActorID: uuid.New(), Action: enums.AccountActionFlag},
		"missing actor":  {UserID: uuid.New(), Action: enums.AccountActionFlag},
		"self action":    {UserID: self, ActorID: self, Action: enums.AccountActionDeactivate},
		"empty message":  {UserID: uuid.New(), ActorID: uuid.New(), Action: enums.AccountActionMessage, Reason: "   "},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := lc.Apply(context.Background(), req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(repo.recorded) != 0 {
		t.Fatal("rejected actions must not be recorded")
	}
}

func TestApplyCollectsAllValidationProblems(t *testing.T) {
	lc := newTestLifecycle(t, &stubActionRepo{exists: true})
	_, err := lc.Apply(context.Background(), ActionRequest{Action: "nope"})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().([]string)
	if !ok || len(details) != 3 {
		t.Fatalf("expected three problems, got %#v", typed.Details())
	}
}

func TestApplyUnknownUser(t *testing.T) {
	lc := newTestLifecycle(t, &stubActionRepo{exists: false})
	_, err := lc.Apply(context.Background(), ActionRequest{UserID: uuid.New(), ActorID: uuid.New(), Action: enums.AccountActionFlag})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplyRepositoryFailures(t *testing.T) {
	cases := map[string]*stubActionRepo{
		"lookup": {existsErr: errors.New("db down")},
		"record": {exists: true, recordErr: errors.New("insert failed")},
	}
	for name, repo := range cases {
		t.Run(name, func(t *testing.T) {
			lc := newTestLifecycle(t, repo)
			_, err := lc.Apply(context.Background(), ActionRequest{UserID: uuid.New(), ActorID: uuid.New(), Action: enums.AccountActionBlacklist})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeDependency {
				t.Fatalf("expected dependency error, got %v", err)
			}
		})
	}
}

func TestApplyUserDeletedBeforeInsert(t *testing.T) {
	repo := &stubActionRepo{exists: true, recordErr: &pgconn.PgError{Code: "23503", ConstraintName: "account_actions_user_id_fkey"}}
	lc := newTestLifecycle(t, repo)
	_, err := lc.Apply(context.Background(), ActionRequest{UserID: uuid.New(), ActorID: uuid.New(), Action: enums.AccountActionDeactivate})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after fk violation, got %v", err)
	}
}

func TestHistory(t *testing.T) {
	repo := &stubActionRepo{history: []models.AccountAction{{Action: enums.AccountActionFlag}}}
	lc := newTestLifecycle(t, repo)

	if _, err := lc.History(context.Background(), uuid.Nil, 10); err == nil {
		t.Fatal("expected validation error for nil user")
	}
	rows, err := lc.History(context.Background(), uuid.New(), 10)
	if err != nil || len(rows) != 1 {
		t.Fatalf("unexpected history %v %v", rows, err)
	}
}
