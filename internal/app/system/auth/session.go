package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionUserIDKey = "user_id"
	tokenName        = "bloodhub-token"
)

// ActorFetcher loads the current state of a user by id. It returns nil when
// the user does not exist, is blocked, or cannot be loaded.
type ActorFetcher interface {
	FetchActor(ctx context.Context, userID string) *Actor
}

// SessionManager issues bearer tokens and browser session cookies and turns
// either back into an Actor.
type SessionManager struct {
	store   *sessions.CookieStore
	codec   *securecookie.SecureCookie
	name    string
	maxAge  time.Duration
	fetcher ActorFetcher
	log     *zap.Logger
}

// tokenClaim is the signed payload of a bearer token.
type tokenClaim struct {
	UserID   string `json:"uid"`
	IssuedAt int64  `json:"iat"`
}

// NewSessionManager builds the cookie store and token codec from one signing
// key. secure marks cookies Secure with SameSite=None (production over HTTPS).
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "bloodhub-session"
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}
	store.MaxAge(int(maxAge.Seconds()))

	codec := securecookie.New([]byte(sessionKey), nil)
	codec.MaxAge(int(maxAge.Seconds()))
	codec.SetSerializer(securecookie.JSONEncoder{})

	logger.Info("session manager initialized",
		zap.String("cookie", name),
		zap.Bool("secure", secure),
		zap.Duration("max_age", maxAge))

	return &SessionManager{
		store:  store,
		codec:  codec,
		name:   name,
		maxAge: maxAge,
		log:    logger,
	}, nil
}

// SetActorFetcher installs the lookup LoadActor uses. Without one, LoadActor
// is a no-op.
func (sm *SessionManager) SetActorFetcher(f ActorFetcher) {
	sm.fetcher = f
}

// MaxAge is how long tokens and session cookies stay valid.
func (sm *SessionManager) MaxAge() time.Duration { return sm.maxAge }

// IssueToken returns a signed bearer token for userID.
func (sm *SessionManager) IssueToken(userID string) (string, error) {
	return sm.codec.Encode(tokenName, tokenClaim{UserID: userID, IssuedAt: time.Now().Unix()})
}

// ParseToken verifies a bearer token and returns the user id it names.
func (sm *SessionManager) ParseToken(token string) (string, error) {
	var claim tokenClaim
	if err := sm.codec.Decode(tokenName, token, &claim); err != nil {
		return "", err
	}
	if claim.UserID == "" {
		return "", errors.New("token has no subject")
	}
	return claim.UserID, nil
}

// SignIn stores userID in the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[sessionUserIDKey] = userID
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	delete(sess.Values, sessionUserIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadActor resolves the caller from an Authorization bearer token, falling
// back to the session cookie, and stores the Actor in the request context.
// Invalid credentials are ignored: the request continues anonymously and
// guards decide what to do with it.
func (sm *SessionManager) LoadActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		userID := sm.userIDFromRequest(r)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		if a := sm.fetcher.FetchActor(r.Context(), userID); a != nil {
			r = WithActor(r, a)
		}
		next.ServeHTTP(w, r)
	})
}

func (sm *SessionManager) userIDFromRequest(r *http.Request) string {
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		id, err := sm.ParseToken(strings.TrimSpace(token))
		if err != nil {
			sm.log.Debug("bearer token rejected", zap.Error(err))
			return ""
		}
		return id
	}

	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return ""
	}
	id, _ := sess.Values[sessionUserIDKey].(string)
	return id
}
