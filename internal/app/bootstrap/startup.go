// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	auditstore "github.com/dalemusser/bloodhub/internal/app/store/audit"
	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/bloodhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// auditPruner is started by Startup and stopped by Shutdown.
var auditPruner *workers.AuditRetention

// Startup runs one-time initialization after the schema is in place and
// before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	t := timeouts.Current()
	logger.Info("store deadlines",
		zap.Duration("short", t.Short),
		zap.Duration("medium", t.Medium),
		zap.Duration("long", t.Long),
		zap.Bool("enforce_roles", appCfg.EnforceRoles),
		zap.Bool("strict_status_transitions", appCfg.StrictStatusTransitions))

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	if appCfg.AuditRetention > 0 {
		auditPruner = workers.NewAuditRetention(auditstore.New(deps.MongoDatabase), logger,
			appCfg.AuditPruneInterval, appCfg.AuditRetention)
		auditPruner.Start()
	}
	return nil
}

// ensureAdmin creates or promotes the configured admin. A newly created
// admin has no password until one is set with bloodhubctl create-admin.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	created, err := userstore.New(deps.MongoDatabase).EnsureAdmin(ctx, email, "", "")
	if err != nil {
		logger.Error("admin bootstrap failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if created {
		logger.Warn("created admin without a password; set one with bloodhubctl create-admin",
			zap.String("email", email))
	} else {
		logger.Info("admin ensured", zap.String("email", email))
	}
	return nil
}
