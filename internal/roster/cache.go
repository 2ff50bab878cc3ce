package roster

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gatherly/gatherly-backend/pkg/enums"
	"github.com/gatherly/gatherly-backend/pkg/logger"
	"github.com/gatherly/gatherly-backend/pkg/redis"
	"github.com/google/uuid"
)

type roleCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	RoleCacheKey(userID string) string
}

// CachedStore serves role lookups from Redis before falling through to the wrapped Store.
// Cache failures are treated as misses.
type CachedStore struct {
	Store
	cache roleCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedStore decorates store with a role cache. A zero ttl disables caching.
func NewCachedStore(store Store, cache roleCache, ttl time.Duration, logg *logger.Logger) *CachedStore {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedStore{Store: store, cache: cache, ttl: ttl, logg: logg}
}

func (c *CachedStore) FetchRoles(ctx context.Context, userID uuid.UUID) ([]enums.UserRole, error) {
	if c.cache == nil || c.ttl <= 0 {
		return c.Store.FetchRoles(ctx, userID)
	}
	key := c.cache.RoleCacheKey(userID.String())

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var roles []enums.UserRole
		if jsonErr := json.Unmarshal([]byte(raw), &roles); jsonErr == nil {
			return roles, nil
		}
		c.logg.Warn(c.logg.WithField(ctx, "key", key), "roster.role_cache.corrupt_entry")
	case errors.Is(err, redis.ErrNil):
	default:
		c.logg.WarnErr(c.logg.WithField(ctx, "key", key), "roster.role_cache.read_failed", err)
	}

	roles, err := c.Store.FetchRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []enums.UserRole{}
	}
	payload, err := json.Marshal(roles)
	if err == nil {
		err = c.cache.Set(ctx, key, string(payload), c.ttl)
	}
	if err != nil {
		c.logg.WarnErr(c.logg.WithField(ctx, "key", key), "roster.role_cache.write_failed", err)
	}
	return roles, nil
}

// InvalidateRoles drops the cached roles of a user.
func (c *CachedStore) InvalidateRoles(ctx context.Context, userID uuid.UUID) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Del(ctx, c.cache.RoleCacheKey(userID.String()))
}
