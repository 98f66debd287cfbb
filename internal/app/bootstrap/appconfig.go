// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds BloodHub's service-specific configuration.
//
// WAFFLE's CoreConfig covers the framework-level settings (ports, TLS,
// logging level, request limits). Everything here is loaded by LoadConfig
// from config files, BLOODHUB_* environment variables or flags, and is
// passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session and bearer token configuration
	SessionKey    string        // Secret key for signing session cookies and tokens
	SessionName   string        // Cookie name for sessions (default: bloodhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Lifetime of both the cookie and issued tokens

	// Access control
	EnforceRoles            bool // Require the admin role on admin surfaces
	StrictStatusTransitions bool // Only inprogress requests may become done/canceled
	LoginRateLimit          int  // Login attempts per minute per client IP

	// HTTP surface
	PageLimitMax       int      // Largest page size list endpoints accept
	CORSAllowedOrigins []string // Origins allowed to call the API from a browser

	// Per-operation store deadlines
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// Audit destinations per category: all, db, log or off
	AuditLogAuth  string
	AuditLogAdmin string

	// Audit events older than AuditRetention are pruned every
	// AuditPruneInterval. Zero retention disables pruning.
	AuditRetention     time.Duration
	AuditPruneInterval time.Duration

	// AdminEmail, when set, is created or promoted to an active admin at startup.
	AdminEmail string
}
