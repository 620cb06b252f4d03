package http

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

const (
	refreshTokenCookie = "refresh_token"
	accessTokenMaxAge  = 15 * 60
	refreshTokenMaxAge = 7 * 24 * 60 * 60
)

type AuthHandler struct {
	authService ports.AuthService
	redirectURL string
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, redirectURL string, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		redirectURL: redirectURL,
		cookies:     cookies,
	}
}

// GoogleCallback receives the Google Identity Services form post, signs the
// user in and redirects back to the front end.
//
// @Summary      Signs the user in with Google
// @Description  Verifies the Google ID token posted as `credential`, sets the access and refresh token cookies and redirects to the front end.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        credential  formData  string  true  "Google ID token"
// @Success      303
// @Failure      400
// @Failure      401
// @Router       /auth/google/callback [post]
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to parse form")
		return
	}

	credential := r.FormValue("credential")
	if credential == "" {
		writeError(w, r, http.StatusBadRequest, "missing credential")
		return
	}

	accessToken, refreshToken, err := h.authService.LoginWithGoogle(r.Context(), credential)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("google login failed")
		writeError(w, r, http.StatusUnauthorized, "authentication failed")
		return
	}

	h.setCookie(w, accessTokenCookie, accessToken, accessTokenMaxAge)
	h.setCookie(w, refreshTokenCookie, refreshToken, refreshTokenMaxAge)

	http.Redirect(w, r, h.redirectURL, http.StatusSeeOther)
}

// @Summary      Refreshes the authenticated user
// @Description  Creates a new access token cookie based on the refresh token. This cookie is used as authentication for `/api` calls.
// @Tags         auth
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "missing refresh token")
		return
	}

	accessToken, refreshToken, err := h.authService.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		h.expireCookies(w)
		writeError(w, r, http.StatusUnauthorized, "refresh failed: "+err.Error())
		return
	}

	h.setCookie(w, accessTokenCookie, accessToken, accessTokenMaxAge)
	if refreshToken != "" && refreshToken != cookie.Value {
		h.setCookie(w, refreshTokenCookie, refreshToken, refreshTokenMaxAge)
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// @Summary      Logs the authenticated user out
// @Description  Revokes the refresh token and clears the session cookies. The guest cookie is kept.
// @Tags         auth
// @Accept       json
// @Success      200
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err == nil && cookie.Value != "" {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("failed to revoke refresh token")
		}
	}

	h.expireCookies(w)
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
		MaxAge:   maxAge,
	})
}

func (h *AuthHandler) expireCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, MaxAge: -1, Path: "/", Domain: h.cookies.Domain})
	http.SetCookie(w, &http.Cookie{Name: refreshTokenCookie, MaxAge: -1, Path: "/", Domain: h.cookies.Domain})
}
