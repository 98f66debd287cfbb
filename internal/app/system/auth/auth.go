package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/respond"
)

// Actor is the verified caller of a request, reloaded from the users
// collection on every request so role and status changes apply immediately.
type Actor struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool { return a != nil && strings.EqualFold(a.Role, "admin") }

type ctxKey string

const currentActorKey ctxKey = "currentActor"

// CurrentActor returns the actor loaded by LoadActor and whether one exists.
func CurrentActor(r *http.Request) (*Actor, bool) {
	a, ok := r.Context().Value(currentActorKey).(*Actor)
	return a, ok && a != nil
}

// WithActor returns r carrying a. LoadActor uses it; handler tests call it
// directly to simulate a signed-in caller.
func WithActor(r *http.Request, a *Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentActorKey, a))
}

// RequireSignedIn answers 401 when no actor was loaded.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentActor(r); !ok {
			respond.Error(w, r, nil, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 401 without an actor and 403 when the actor's role is
// not one of allowed. Role comparison is case-insensitive.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := CurrentActor(r)
			if !ok {
				respond.Error(w, r, nil, apperr.Unauthorized("Authentication required"))
				return
			}
			if _, has := set[strings.ToLower(a.Role)]; !has {
				respond.Error(w, r, nil, apperr.Forbidden("You do not have permission to perform this action"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guard returns RequireRole(allowed...) when enforce is true and a
// pass-through middleware otherwise.
func Guard(enforce bool, allowed ...string) func(http.Handler) http.Handler {
	if !enforce {
		return func(next http.Handler) http.Handler { return next }
	}
	return RequireRole(allowed...)
}
