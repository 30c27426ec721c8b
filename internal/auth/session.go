package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nhw-erp/nhw-erp/internal/platform/httpx"
)

// CookieName identifies the session cookie.
const CookieName = "nhw_session"

type sessionPayload struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionManager stores login sessions in Redis, addressed by an
// opaque cookie token. Reads slide the expiry forward.
type SessionManager struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

func NewSessionManager(client *redis.Client, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{client: client, ttl: ttl, secure: secure}
}

// Create opens a session for the user and writes the cookie.
func (sm *SessionManager) Create(ctx context.Context, w http.ResponseWriter, user *User) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(sessionPayload{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	if err := sm.client.Set(ctx, sm.redisKey(token), payload, sm.ttl).Err(); err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(sm.ttl),
	})
	return token, nil
}

// Resolve returns the session behind the request cookie, refreshing
// its TTL. A missing or expired session yields ErrNoSession.
func (sm *SessionManager) Resolve(ctx context.Context, r *http.Request) (sessionPayload, string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return sessionPayload{}, "", ErrNoSession
	}
	raw, err := sm.client.Get(ctx, sm.redisKey(cookie.Value)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sessionPayload{}, "", ErrNoSession
	}
	if err != nil {
		return sessionPayload{}, "", err
	}
	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return sessionPayload{}, "", err
	}
	_ = sm.client.Expire(ctx, sm.redisKey(cookie.Value), sm.ttl).Err()
	return payload, cookie.Value, nil
}

// Destroy deletes the session and expires the cookie.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, token string) error {
	if token != "" {
		if err := sm.client.Del(ctx, sm.redisKey(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func (sm *SessionManager) redisKey(token string) string {
	return "session:" + token
}

// ErrNoSession indicates the request carries no live session.
var ErrNoSession = errors.New("auth: no active session")

type contextKey struct{}

// UserID returns the authenticated user id from the request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKey{}).(int64)
	return id, ok
}

// Middleware rejects requests without a live session and stores the
// user id in the request context for handlers downstream.
func (sm *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _, err := sm.Resolve(r.Context(), r)
		if errors.Is(err, ErrNoSession) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "login required")
			return
		}
		if err != nil {
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, payload.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
