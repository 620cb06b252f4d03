package http

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

const (
	accessTokenCookie = "access_token"
	guestTokenCookie  = "guest_token"
	guestTokenMaxAge  = 365 * 24 * 60 * 60
)

type contextKey string

const sessionKey contextKey = "session"

// CookieConfig holds the attributes shared by every cookie the API sets.
type CookieConfig struct {
	Domain   string
	SameSite http.SameSite
	Secure   bool
}

func withSession(ctx context.Context, s domain.UserSession) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the caller set by SessionMiddleware.
func SessionFromContext(ctx context.Context) (domain.UserSession, bool) {
	s, ok := ctx.Value(sessionKey).(domain.UserSession)
	return s, ok
}

// SessionMiddleware identifies the caller. Signed-in users carry an access
// token cookie. Everyone else gets a guest session, issued on the first
// request and kept in a long-lived cookie.
type SessionMiddleware struct {
	auth    ports.AuthService
	cookies CookieConfig
}

func NewSessionMiddleware(auth ports.AuthService, cookies CookieConfig) *SessionMiddleware {
	return &SessionMiddleware{auth: auth, cookies: cookies}
}

func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.fromCookie(r, accessTokenCookie)
		if !ok {
			session, ok = m.fromCookie(r, guestTokenCookie)
		}
		if !ok {
			var err error
			if session, err = m.issueGuest(w); err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("failed to issue guest session")
				writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Error())
				return
			}
		}

		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("session", session.ID)
		})
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

func (m *SessionMiddleware) fromCookie(r *http.Request, name string) (domain.UserSession, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return domain.UserSession{}, false
	}
	session, err := m.auth.ParseAccessToken(cookie.Value)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("cookie", name).Msg("ignoring session cookie")
		return domain.UserSession{}, false
	}
	return session, true
}

func (m *SessionMiddleware) issueGuest(w http.ResponseWriter) (domain.UserSession, error) {
	session := domain.NewGuestSession()
	token, err := m.auth.GuestToken(session)
	if err != nil {
		return domain.UserSession{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     guestTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   m.cookies.Domain,
		HttpOnly: true,
		Secure:   m.cookies.Secure,
		SameSite: m.cookies.SameSite,
		MaxAge:   guestTokenMaxAge,
	})
	return session, nil
}

// accessLog writes one line per request to the request logger.
func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
