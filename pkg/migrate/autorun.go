package migrate

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/gatherly/gatherly-backend/pkg/config"
	"github.com/gatherly/gatherly-backend/pkg/db"
	"github.com/gatherly/gatherly-backend/pkg/logger"
)

// ShouldAutoRun reports whether the api binary migrates on boot: dev only, behind the feature flag.
func ShouldAutoRun(cfg *config.Config) bool {
	return cfg != nil && cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate
}

// MaybeRunDev applies pending migrations from DefaultDir when ShouldAutoRun allows it.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !ShouldAutoRun(cfg) {
		return nil
	}
	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "migrate.autorun.start")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("dev auto-migrate: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		logg.WarnErr(ctx, "migrate.autorun.version_unknown", err)
		return nil
	}
	logg.Info(logg.WithField(ctx, "version", version), "migrate.autorun.done")
	return nil
}
