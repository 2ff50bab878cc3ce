package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
	"github.com/gatherly/gatherly-backend/pkg/logger"
	"github.com/gatherly/gatherly-backend/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

const maxReasonLength = 500

// ActionRequest asks for one lifecycle action on a user account.
type ActionRequest struct {
	UserID  uuid.UUID
	ActorID uuid.UUID
	Action  enums.AccountAction
	Reason  string
}

// ActionResult reports what happened to an ActionRequest.
type ActionResult struct {
	ActionID   uuid.UUID                  `json:"action_id"`
	UserID     uuid.UUID                  `json:"user_id"`
	Action     enums.AccountAction        `json:"action"`
	Outcome    enums.AccountActionOutcome `json:"outcome"`
	RecordedAt time.Time                  `json:"recorded_at"`
}

// Lifecycle applies admin account actions.
type Lifecycle interface {
	Apply(ctx context.Context, req ActionRequest) (*ActionResult, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.AccountAction, error)
}

type actionRepository interface {
	ProfileExists(ctx context.Context, userID uuid.UUID) (bool, error)
	Record(ctx context.Context, action *models.AccountAction) error
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.AccountAction, error)
}

type lifecycle struct {
	repo    actionRepository
	logg    *logger.Logger
	metrics *metrics.AccountActionMetrics
	now     func() time.Time
}

// NewLifecycle builds the acknowledging lifecycle: each action is validated and
// written to the audit log, and the user account itself is left untouched.
func NewLifecycle(repo actionRepository, logg *logger.Logger, m *metrics.AccountActionMetrics) (Lifecycle, error) {
	if repo == nil {
		return nil, fmt.Errorf("account action repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &lifecycle{
		repo:    repo,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

func (l *lifecycle) Apply(ctx context.Context, req ActionRequest) (*ActionResult, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := validate(req); err != nil {
		l.metrics.Inc(req.Action.String(), "rejected")
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid account action").WithDetails(problems(err))
	}

	exists, err := l.repo.ProfileExists(ctx, req.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !exists {
		l.metrics.Inc(req.Action.String(), "not_found")
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	row := &models.AccountAction{
		ID:        uuid.New(),
		UserID:    req.UserID,
		ActorID:   req.ActorID,
		Action:    req.Action,
		Outcome:   enums.AccountActionOutcomeAcknowledged,
		CreatedAt: l.now().UTC(),
	}
	if req.Reason != "" {
		reason := req.Reason
		row.Reason = &reason
	}
	if err := l.repo.Record(ctx, row); err != nil {
		// the profile can disappear between the existence check and the insert
		if pkgerrors.IsForeignKeyViolation(err) {
			l.metrics.Inc(req.Action.String(), "not_found")
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record account action")
	}

	l.metrics.Inc(req.Action.String(), string(row.Outcome))
	l.logg.Info(l.logg.WithFields(ctx, map[string]any{
		"target_user_id": req.UserID.String(),
		"action":         req.Action.String(),
		"action_id":      row.ID.String(),
	}), "account.action.acknowledged")

	return &ActionResult{
		ActionID:   row.ID,
		UserID:     row.UserID,
		Action:     row.Action,
		Outcome:    row.Outcome,
		RecordedAt: row.CreatedAt,
	}, nil
}

func (l *lifecycle) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.AccountAction, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := l.repo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list account actions")
	}
	return rows, nil
}

func validate(req ActionRequest) error {
	var err error
	if req.UserID == uuid.Nil {
		err = multierr.Append(err, errors.New("user_id is required"))
	}
	if req.ActorID == uuid.Nil {
		err = multierr.Append(err, errors.New("actor_id is required"))
	}
	if req.UserID != uuid.Nil && req.UserID == req.ActorID {
		err = multierr.Append(err, errors.New("admins cannot act on their own account"))
	}
	if !req.Action.IsValid() {
		err = multierr.Append(err, fmt.Errorf("unknown action %q", req.Action))
	}
	if req.Action == enums.AccountActionMessage && req.Reason == "" {
		err = multierr.Append(err, errors.New("message body is required"))
	}
	if len(req.Reason) > maxReasonLength {
		err = multierr.Append(err, fmt.Errorf("reason exceeds %d characters", maxReasonLength))
	}
	return err
}

func problems(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
