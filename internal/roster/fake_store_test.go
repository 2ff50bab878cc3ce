package roster

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gatherly/gatherly-backend/pkg/db/models"
	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/google/uuid"
)

// fakeStore is an in-memory Store. Profiles are served in slice order.
type fakeStore struct {
	mu sync.Mutex

	profiles  []models.Profile
	roles     map[uuid.UUID][]enums.UserRole
	extended  map[ProfileKind]map[uuid.UUID]*ExtendedProfile
	roleErr   map[uuid.UUID]error
	statusErr map[uuid.UUID]error

	pageErr    error
	countErr   error
	countDelta int64
	maxLatency time.Duration
	pageHook   func(ctx context.Context) error

	lastQuery     PageQuery
	extendedCalls map[ProfileKind]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		roles: make(map[uuid.UUID][]enums.UserRole),
		extended: map[ProfileKind]map[uuid.UUID]*ExtendedProfile{
			ProfileKindFetchman: {},
			ProfileKindVendor:   {},
			ProfileKindHost:     {},
		},
		roleErr:       make(map[uuid.UUID]error),
		statusErr:     make(map[uuid.UUID]error),
		extendedCalls: make(map[ProfileKind]int),
	}
}

func (f *fakeStore) addProfile(name, email string, roles ...enums.UserRole) uuid.UUID {
	id := uuid.New()
	n := name
	f.profiles = append(f.profiles, models.Profile{
		ID:        id,
		Name:      &n,
		Email:     email,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, len(f.profiles), 0, time.UTC),
	})
	if len(roles) > 0 {
		f.roles[id] = roles
	}
	return id
}

func (f *fakeStore) addProfiles(n int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, f.addProfile(fmt.Sprintf("user-%02d", i), fmt.Sprintf("user%02d@example.com", i)))
	}
	return ids
}

func (f *fakeStore) setExtended(kind ProfileKind, id uuid.UUID, status string, suspended bool) {
	f.extended[kind][id] = &ExtendedProfile{VerificationStatus: status, IsSuspended: suspended}
}

func (f *fakeStore) sleep(ctx context.Context) error {
	if f.maxLatency <= 0 {
		return nil
	}
	t := time.NewTimer(rand.N(f.maxLatency))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (f *fakeStore) FetchProfilePage(ctx context.Context, q PageQuery) ([]models.Profile, error) {
	f.mu.Lock()
	f.lastQuery = q
	hook := f.pageHook
	f.mu.Unlock()

	if hook != nil {
		if err := hook(ctx); err != nil {
			return nil, err
		}
	}
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	start := q.Offset()
	if start >= len(f.profiles) {
		return []models.Profile{}, nil
	}
	end := start + q.PageSize
	if end > len(f.profiles) {
		end = len(f.profiles)
	}
	out := make([]models.Profile, end-start)
	copy(out, f.profiles[start:end])
	return out, nil
}

func (f *fakeStore) CountProfiles(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.profiles)) + f.countDelta, nil
}

func (f *fakeStore) FetchRoles(ctx context.Context, userID uuid.UUID) ([]enums.UserRole, error) {
	if err := f.sleep(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.roleErr[userID]; err != nil {
		return nil, err
	}
	return f.roles[userID], nil
}

func (f *fakeStore) FetchExtendedProfile(ctx context.Context, kind ProfileKind, userID uuid.UUID) (*ExtendedProfile, error) {
	if err := f.sleep(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extendedCalls[kind]++
	if err := f.statusErr[userID]; err != nil {
		return nil, err
	}
	return f.extended[kind][userID], nil
}
