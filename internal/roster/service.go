package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherly/gatherly-backend/pkg/config"
	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	pkgerrors "github.com/gatherly/gatherly-backend/pkg/errors"
	"github.com/gatherly/gatherly-backend/pkg/logger"
	"github.com/gatherly/gatherly-backend/pkg/metrics"
	"github.com/gatherly/gatherly-backend/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

// Service resolves admin roster pages.
type Service struct {
	store         Store
	guard         *Guard
	pageSize      int
	lookupTimeout time.Duration
	logg          *logger.Logger
	metrics       *metrics.RosterMetrics
}

// NewService builds a roster service over the provided store.
func NewService(store Store, cfg config.RosterConfig, logg *logger.Logger, m *metrics.RosterMetrics) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("roster store required")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("roster page size must be positive")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		store:         store,
		guard:         NewGuard(),
		pageSize:      pagination.NormalizeSize(cfg.PageSize),
		lookupTimeout: cfg.LookupTimeout,
		logg:          logg,
		metrics:       m,
	}, nil
}

// PageSize reports the fixed number of rows per page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// List loads a page on behalf of caller and applies the search term to it.
// A newer List from the same caller cancels this one, which then fails with ErrSuperseded.
func (s *Service) List(ctx context.Context, caller string, req Request) (*Result, error) {
	res, err := s.guard.Run(ctx, caller, req, func(ctx context.Context) (*Result, error) {
		return s.Load(ctx, req.Query)
	})
	if errors.Is(err, ErrSuperseded) {
		s.logg.Info(ctx, "roster.load.superseded")
		return nil, pkgerrors.Wrap(pkgerrors.CodeSuperseded, err, "roster request superseded")
	}
	if err != nil {
		return nil, err
	}
	res.Rows = Filter(res.Rows, req.Search)
	return res, nil
}

// Load fetches one page of profiles and resolves the role and status of every row.
// Rows keep the page order. Per-row lookup failures fall back to default values;
// only the page and count fetches can fail the load.
func (s *Service) Load(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	result, err := s.load(ctx, q)
	switch {
	case err == nil:
		s.metrics.ObserveLoad(metrics.OutcomeOK, time.Since(start))
	case ctx.Err() != nil:
		s.metrics.ObserveLoad(metrics.OutcomeSuperseded, time.Since(start))
	default:
		s.metrics.ObserveLoad(metrics.OutcomeError, time.Since(start))
	}
	return result, err
}

func (s *Service) load(ctx context.Context, q Query) (*Result, error) {
	page := pagination.New(q.Page, s.pageSize)
	pq := s.storeQuery(page, q)

	var (
		profiles []models.Profile
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.store.FetchProfilePage(gctx, pq)
		if err != nil {
			return fmt.Errorf("fetch profile page: %w", err)
		}
		profiles = rows
		return nil
	})
	g.Go(func() error {
		n, err := s.store.CountProfiles(gctx)
		if err != nil {
			return fmt.Errorf("count profiles: %w", err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load roster page").WithDetails(err.Error())
	}

	rows := make([]Row, len(profiles))
	var fan errgroup.Group
	fan.SetLimit(page.Size)
	for i := range profiles {
		fan.Go(func() error {
			rows[i] = s.resolveRow(ctx, profiles[i])
			return nil
		})
	}
	_ = fan.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if q.SortField.IsDerived() {
		sortDerived(rows, q.SortField, q.SortOrder)
	}
	s.metrics.AddRows(len(rows))

	return &Result{
		Rows:       rows,
		TotalPages: pagination.TotalPages(total, page.Size),
		TotalCount: total,
		Page:       page.Number,
		PageSize:   page.Size,
	}, nil
}

func (s *Service) storeQuery(page pagination.Page, q Query) PageQuery {
	field := q.SortField
	if field == "" || field.IsDerived() {
		field = enums.RosterSortCreatedAt
	}
	order := q.SortOrder
	if !order.IsValid() {
		order = enums.SortOrderDesc
	}
	return PageQuery{Page: page.Number, PageSize: page.Size, SortField: field, SortOrder: order}
}

func (s *Service) resolveRow(ctx context.Context, p models.Profile) Row {
	row := Row{
		ID:        p.ID,
		Name:      p.Name,
		Surname:   p.Surname,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
	rowCtx := s.logg.WithField(ctx, "user_id", p.ID.String())

	lookupCtx, cancel := s.lookupContext(ctx)
	role, all, err := ResolveRole(lookupCtx, s.store, p.ID)
	cancel()
	if err != nil {
		s.logg.WarnErr(rowCtx, "roster.role_lookup.failed", err)
		s.metrics.IncDegraded(metrics.LookupRole)
	} else if len(all) > 1 {
		s.logg.Info(s.logg.WithFields(rowCtx, map[string]any{
			"roles":        all,
			"primary_role": role.String(),
		}), "roster.role_lookup.multiple_roles")
	}
	row.Role = role

	lookupCtx, cancel = s.lookupContext(ctx)
	status, err := ResolveStatus(lookupCtx, s.store, p.ID, role)
	cancel()
	if err != nil {
		s.logg.WarnErr(s.logg.WithField(rowCtx, "role", role.String()), "roster.status_lookup.failed", err)
		s.metrics.IncDegraded(metrics.LookupStatus)
	}
	row.Status = status
	return row
}

func (s *Service) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.lookupTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.lookupTimeout)
}
