package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/mbolis/interview-survey/httpx"
	"github.com/mbolis/interview-survey/log"
	"github.com/pkg/errors"
)

// Admin checks for the admin role in an OAuth token signed with secret.
func Admin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), admin).Handler(next)
	}
}

func admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)

		isAdmin := false
		for _, role := range strings.Split(claims["roles"], ",") {
			if strings.TrimSpace(role) == httpx.RoleAdmin {
				isAdmin = true
				break
			}
		}

		if !isAdmin {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "auth.admin_role")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CookieAuth lets browsers authenticate with session cookies. An expired
// access token is refreshed on the fly; without a usable refresh token the
// request is sent to the login page.
func CookieAuth(bearerServer *oauth.BearerServer) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := r.Cookie(httpx.AccessTokenCookie)
			if err == nil && token.Value != "" {
				r.Header.Set("authorization", "Bearer "+token.Value)
				buf := httpx.NewResponseBuffer()
				h.ServeHTTP(buf, r)
				if buf.Status() != http.StatusUnauthorized {
					if err = buf.Flush(w); err != nil {
						log.Debugf("auth.cookie.flush: %s", err)
					}
					return
				}
			}

			loginLocation := "/login?goto=" + url.QueryEscape(gotoAfterLogin(r))

			refreshToken, err := r.Cookie(httpx.RefreshTokenCookie)
			if errors.Is(err, http.ErrNoCookie) || (err == nil && refreshToken.Value == "") {
				httpx.Redirect(w, r, "auth.cookie.no_refresh", loginLocation)
				return
			}
			if err != nil {
				httpx.LogInternalError(w, "auth.cookie.refresh_token", err)
				return
			}

			resp := httpx.RefreshGrant(r.Context(), bearerServer, refreshToken.Value)
			if resp.Status() == http.StatusUnauthorized {
				httpx.ClearSessionCookies(w)
				httpx.Redirect(w, r, "auth.cookie.refresh_rejected", loginLocation)
				return
			}
			if resp.Status() != http.StatusOK {
				httpx.LogStatus(w, resp.Status(), log.WarnLevel, "auth.cookie.refresh")
				return
			}

			var tokens httpx.Tokens
			if err = resp.DecodeJSON(&tokens); err != nil {
				httpx.LogInternalError(w, "auth.cookie.decode_tokens", err)
				return
			}
			httpx.SetSessionCookies(w, tokens)

			r.Header.Set("authorization", "Bearer "+tokens.AccessToken)
			h.ServeHTTP(w, r)
		})
	}
}

// Only pages can be returned to; form posts land back on the report.
func gotoAfterLogin(r *http.Request) string {
	if r.Method == http.MethodGet {
		return r.URL.RequestURI()
	}
	return "/admin/report"
}
