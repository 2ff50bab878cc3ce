package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pressly/goose/v3"
)

const (
	DefaultDir = "pkg/migrate/migrations"
	dialect    = "postgres"
)

var (
	errNoDB      = errors.New("migrate: db handle is nil")
	errNoDir     = errors.New("migrate: migrations dir is empty")
	errNoVersion = errors.New("migrate: target version is empty")
)

// Run executes a goose command against db, e.g. "up", "down" or "status".
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if err := useDialect(db, dir); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion walks the schema up or down to target.
// Versions are goose timestamps (YYYYMMDDHHMMSS).
func MigrateToVersion(ctx context.Context, db *sql.DB, dir string, target string) error {
	want, err := parseVersion(target)
	if err != nil {
		return err
	}
	if err := useDialect(db, dir); err != nil {
		return err
	}

	have, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if have < want {
		err = goose.UpToContext(ctx, db, dir, want)
	} else if have > want {
		err = goose.DownToContext(ctx, db, dir, want)
	}
	if err != nil {
		return fmt.Errorf("migrate %d -> %d: %w", have, want, err)
	}
	return nil
}

func useDialect(db *sql.DB, dir string) error {
	switch {
	case db == nil:
		return errNoDB
	case dir == "":
		return errNoDir
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

func parseVersion(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errNoVersion
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("migrate: version %q is not a goose timestamp", raw)
	}
	return v, nil
}
