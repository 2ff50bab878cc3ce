package config

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Roster       RosterConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

// Load reads the environment and reports every invalid section at once.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	err := multierr.Combine(
		cfg.DB.ensureDSN(),
		cfg.JWT.validate(),
		cfg.Roster.validate(),
		cfg.RateLimit.validate(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GATHERLY_APP_ENV" required:"true"`
	Port         string `envconfig:"GATHERLY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GATHERLY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GATHERLY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"GATHERLY_DB_DSN"`

	LegacyHost     string `envconfig:"GATHERLY_DB_HOST"`
	LegacyPort     int    `envconfig:"GATHERLY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GATHERLY_DB_USER"`
	LegacyPassword string `envconfig:"GATHERLY_DB_PASSWORD"`
	LegacyName     string `envconfig:"GATHERLY_DB_NAME"`
	LegacySSLMode  string `envconfig:"GATHERLY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GATHERLY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GATHERLY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GATHERLY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GATHERLY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GATHERLY_REDIS_URL"`
	Address      string        `envconfig:"GATHERLY_REDIS_ADDR"`
	Password     string        `envconfig:"GATHERLY_REDIS_PASSWORD"`
	DB           int           `envconfig:"GATHERLY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GATHERLY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GATHERLY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GATHERLY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GATHERLY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GATHERLY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret    string        `envconfig:"GATHERLY_JWT_SECRET" required:"true"`
	Issuer    string        `envconfig:"GATHERLY_JWT_ISSUER" required:"true"`
	AccessTTL time.Duration `envconfig:"GATHERLY_JWT_ACCESS_TTL" default:"15m"`
}

func (j JWTConfig) validate() error {
	if j.AccessTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvJWTAccessTTL)
	}
	return nil
}

// RosterConfig tunes the admin user roster.
type RosterConfig struct {
	PageSize      int           `envconfig:"GATHERLY_ROSTER_PAGE_SIZE" default:"10"`
	RoleCacheTTL  time.Duration `envconfig:"GATHERLY_ROSTER_ROLE_CACHE_TTL" default:"30s"`
	LookupTimeout time.Duration `envconfig:"GATHERLY_ROSTER_LOOKUP_TIMEOUT" default:"3s"`
}

func (r RosterConfig) validate() error {
	var err error
	if r.PageSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvRosterPageSize))
	}
	if r.RoleCacheTTL < 0 {
		err = multierr.Append(err, fmt.Errorf("%s must not be negative", EnvRosterRoleCacheTTL))
	}
	if r.LookupTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("%s must not be negative", EnvRosterLookupTimeout))
	}
	return err
}

// RateLimitConfig throttles admin account actions per actor.
type RateLimitConfig struct {
	ActionWindow time.Duration `envconfig:"GATHERLY_ACTION_RATE_LIMIT_WINDOW" default:"1m"`
	ActionLimit  int           `envconfig:"GATHERLY_ACTION_RATE_LIMIT" default:"30"`
}

// validate allows zero values, which turn the throttle off.
func (r RateLimitConfig) validate() error {
	if r.ActionWindow < 0 || r.ActionLimit < 0 {
		return fmt.Errorf("%s and %s must not be negative", EnvActionRateWindow, EnvActionRateLimit)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GATHERLY_AUTO_MIGRATE" default:"false"`
}

// ensureDSN fills DSN from the discrete host/user/name variables when it is unset.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	var missing []string
	for env, val := range map[string]string{EnvDBHost: db.LegacyHost, EnvDBUser: db.LegacyUser, EnvDBName: db.LegacyName} {
		if val == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	user := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		user = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}
	dsn := url.URL{
		Scheme: "postgres",
		User:   user,
		Host:   net.JoinHostPort(db.LegacyHost, strconv.Itoa(db.LegacyPort)),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {db.LegacySSLMode}}.Encode()
	}
	db.DSN = dsn.String()
	return nil
}
