// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/bloodhub/internal/app/store/audit"
	"github.com/dalemusser/bloodhub/internal/app/system/auth"
	"github.com/dalemusser/bloodhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Modes lists the accepted destination settings.
var Modes = []string{All, DB, Log, Off}

// Config holds audit logging configuration.
type Config struct {
	// Auth controls login and logout events.
	Auth string
	// Admin controls user, donation request and blog moderation events.
	Admin string
}

// Recorder persists events; *audit.Store satisfies it.
type Recorder interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger records audit events to MongoDB and to zap, per Config.
// A nil *Logger is valid and records nothing.
type Logger struct {
	store  Recorder
	zapLog *zap.Logger
	config Config
}

func New(store Recorder, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.TargetID != nil {
		fields = append(fields, zap.String("target_id", event.TargetID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Record writes event to the destinations configured for its category.
// Store failures are logged, never returned: auditing does not fail a request.
func (l *Logger) Record(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if setting == All || setting == DB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

// base fills the request context shared by every event.
func base(r *http.Request, category, eventType string, success bool) audit.Event {
	e := audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
	if a, ok := auth.CurrentActor(r); ok {
		if id, err := primitive.ObjectIDFromHex(a.ID); err == nil {
			e.ActorID = &id
		}
	}
	return e
}

/*─────────────────────────────────────────────────────────────────────────────*
| Authentication events                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	if l == nil {
		return
	}
	e := base(r, audit.CategoryAuth, audit.EventLoginSuccess, true)
	e.UserID = &userID
	e.Details = map[string]string{"email": email}
	l.Record(ctx, e)
}

// LoginFailed logs a rejected login. userID is nil when no account matched.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, eventType string, userID *primitive.ObjectID, email, reason string) {
	if l == nil {
		return
	}
	e := base(r, audit.CategoryAuth, eventType, false)
	e.UserID = userID
	e.FailureReason = reason
	e.Details = map[string]string{"attempted_email": email}
	l.Record(ctx, e)
}

// Logout logs a sign-out by the current actor.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	if l == nil {
		return
	}
	e := base(r, audit.CategoryAuth, audit.EventLogout, true)
	e.UserID = e.ActorID
	l.Record(ctx, e)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Admin events                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// UserStatusChanged logs a user being blocked or unblocked.
func (l *Logger) UserStatusChanged(ctx context.Context, r *http.Request, userID primitive.ObjectID, status string) {
	l.userChange(ctx, r, audit.EventUserStatusChanged, userID, "status", status)
}

// UserRoleChanged logs a role assignment.
func (l *Logger) UserRoleChanged(ctx context.Context, r *http.Request, userID primitive.ObjectID, role string) {
	l.userChange(ctx, r, audit.EventUserRoleChanged, userID, "role", role)
}

func (l *Logger) userChange(ctx context.Context, r *http.Request, eventType string, userID primitive.ObjectID, key, value string) {
	if l == nil {
		return
	}
	e := base(r, audit.CategoryAdmin, eventType, true)
	e.UserID = &userID
	e.Details = map[string]string{key: value}
	l.Record(ctx, e)
}

// DonationStatusChanged logs a donation request status update.
func (l *Logger) DonationStatusChanged(ctx context.Context, r *http.Request, requestID primitive.ObjectID, status string) {
	l.targetChange(ctx, r, audit.EventDonationStatusChanged, requestID, map[string]string{"status": status})
}

// DonationDeleted logs the removal of a donation request.
func (l *Logger) DonationDeleted(ctx context.Context, r *http.Request, requestID primitive.ObjectID) {
	l.targetChange(ctx, r, audit.EventDonationDeleted, requestID, nil)
}

// BlogChanged logs a publish, unpublish or delete. eventType is one of the
// audit.EventBlog* constants.
func (l *Logger) BlogChanged(ctx context.Context, r *http.Request, eventType string, blogID primitive.ObjectID) {
	l.targetChange(ctx, r, eventType, blogID, nil)
}

func (l *Logger) targetChange(ctx context.Context, r *http.Request, eventType string, id primitive.ObjectID, details map[string]string) {
	if l == nil {
		return
	}
	e := base(r, audit.CategoryAdmin, eventType, true)
	e.TargetID = &id
	e.Details = details
	l.Record(ctx, e)
}
