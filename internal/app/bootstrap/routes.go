// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"slices"

	auditlogfeature "github.com/dalemusser/bloodhub/internal/app/features/auditlog"
	blogsfeature "github.com/dalemusser/bloodhub/internal/app/features/blogs"
	dashboardfeature "github.com/dalemusser/bloodhub/internal/app/features/dashboard"
	donationrequestsfeature "github.com/dalemusser/bloodhub/internal/app/features/donationrequests"
	healthfeature "github.com/dalemusser/bloodhub/internal/app/features/health"
	homefeature "github.com/dalemusser/bloodhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/bloodhub/internal/app/features/login"
	userinfofeature "github.com/dalemusser/bloodhub/internal/app/features/userinfo"
	usersfeature "github.com/dalemusser/bloodhub/internal/app/features/users"
	"github.com/dalemusser/bloodhub/internal/app/policy/donationpolicy"
	auditstore "github.com/dalemusser/bloodhub/internal/app/store/audit"
	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/auditlog"
	"github.com/dalemusser/bloodhub/internal/app/system/auth"
	"github.com/dalemusser/bloodhub/internal/app/system/metrics"
	"github.com/dalemusser/bloodhub/internal/app/system/ratelimit"
	"github.com/dalemusser/bloodhub/internal/app/system/reqlog"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// loginLimiter is created by BuildHandler and closed by Shutdown.
var loginLimiter *ratelimit.LoginLimiter

// BuildHandler constructs the root HTTP handler for BloodHub.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. The router carries request ids, access logging,
// Prometheus metrics, CORS and the session/bearer actor loader; feature
// routers are mounted at the paths the API has always used.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Reload the user on each request so role and status changes apply immediately.
	sessionMgr.SetActorFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	loginLimiter = ratelimit.NewLoginLimiter(appCfg.LoginRateLimit)

	admin := auth.Guard(appCfg.EnforceRoles, "admin")
	audit := auditlog.New(auditstore.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	policy := donationpolicy.StatusPolicy{Strict: appCfg.StrictStatusTransitions}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(reqlog.RequestID)
	r.Use(reqlog.AccessLog(logger))
	r.Use(metrics.Middleware)
	r.Use(corsHandler(appCfg.CORSAllowedOrigins))
	r.Use(sessionMgr.LoadActor)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, logger, apperr.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Liveness and operations
	homeHandler := homefeature.NewHandler()
	r.Mount("/", homefeature.Routes(homeHandler))

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", metrics.Handler())

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, loginLimiter, audit, logger)
	loginfeature.MountRoutes(r, loginHandler)
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// Users
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, appCfg.PageLimitMax, audit, logger)
	usersfeature.MountRoutes(r, usersHandler, admin)

	// Donation requests
	requestsHandler := donationrequestsfeature.NewHandler(deps.MongoDatabase, policy, appCfg.PageLimitMax, audit, logger)
	donationrequestsfeature.MountRoutes(r, requestsHandler)

	// Blog content management
	blogsHandler := blogsfeature.NewHandler(deps.MongoDatabase, audit, logger)
	r.Mount("/content-management", blogsfeature.Routes(blogsHandler, admin))

	// Statistics
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, logger)
	dashboardfeature.MountRoutes(r, dashboardHandler, admin)

	// Audit trail
	auditHandler := auditlogfeature.NewHandler(deps.MongoDatabase, appCfg.PageLimitMax, logger)
	auditlogfeature.MountRoutes(r, auditHandler, admin)

	return r, nil
}

// corsHandler allows the configured origins. Credentials are only allowed
// when the origins are listed explicitly.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", reqlog.Header},
		ExposedHeaders:   []string{reqlog.Header},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	})
}
