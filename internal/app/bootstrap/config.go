// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dalemusser/bloodhub/internal/app/system/auditlog"
	"github.com/dalemusser/bloodhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minSessionKeyLen is the shortest session key accepted outside dev.
const minSessionKeyLen = 32

// appConfigKeys defines the configuration keys for BloodHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: BLOODHUB_MONGO_URI, BLOODHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "bloodhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session and token signing key (must be strong in production)"},
	{Name: "session_name", Default: "bloodhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie and bearer token lifetime (e.g., 24h, 30m)"},

	// Access control
	{Name: "enforce_roles", Default: false, Desc: "Require the admin role for user management, blog publishing and statistics"},
	{Name: "strict_status_transitions", Default: false, Desc: "Only allow inprogress donation requests to become done or canceled"},
	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts allowed per minute per client IP"},

	// HTTP surface
	{Name: "page_limit_max", Default: 100, Desc: "Largest page size accepted by list endpoints"},
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated origins allowed by CORS"},

	// Store deadlines
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for paginated list queries"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for aggregations and schema setup"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_retention", Default: "2160h", Desc: "Age after which audit events are pruned; 0 keeps them forever"},
	{Name: "audit_prune_interval", Default: "1h", Desc: "How often the audit retention worker runs"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of a user to create or promote to admin on startup"},
}

// LoadConfig loads WAFFLE core config and BloodHub's app config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// BLOODHUB_* environment variables and flags with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BLOODHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		EnforceRoles:            appValues.Bool("enforce_roles"),
		StrictStatusTransitions: appValues.Bool("strict_status_transitions"),
		LoginRateLimit:          appValues.Int("login_rate_limit"),

		PageLimitMax:       appValues.Int("page_limit_max"),
		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),

		AuditLogAuth:  strings.ToLower(appValues.String("audit_log_auth")),
		AuditLogAdmin: strings.ToLower(appValues.String("audit_log_admin")),

		AuditRetention:     appValues.Duration("audit_retention", 90*24*time.Hour),
		AuditPruneInterval: appValues.Duration("audit_prune_interval", time.Hour),

		AdminEmail: appValues.String("admin_email"),
	}

	// Deadlines are needed by ConnectDB and EnsureSchema, which run before Startup.
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// BloodHub validates the MongoDB URI format before attempting to connect,
// and refuses short signing keys outside dev.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must be set")
	}
	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must be set")
	}
	if coreCfg != nil && coreCfg.Env != "dev" && len(appCfg.SessionKey) < minSessionKeyLen {
		return fmt.Errorf("session_key must be at least %d characters outside dev", minSessionKeyLen)
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	for key, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if mode != "" && !slices.Contains(auditlog.Modes, mode) {
			return fmt.Errorf("%s must be one of %v, got %q", key, auditlog.Modes, mode)
		}
	}
	if appCfg.AuditRetention < 0 {
		return fmt.Errorf("audit_retention must not be negative")
	}
	if appCfg.AuditRetention > 0 && appCfg.AuditPruneInterval <= 0 {
		return fmt.Errorf("audit_prune_interval must be positive when audit_retention is set")
	}
	if appCfg.PageLimitMax < 1 {
		return fmt.Errorf("page_limit_max must be positive")
	}
	return nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
