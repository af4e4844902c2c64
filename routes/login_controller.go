package routes

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/mbolis/interview-survey/app"
	"github.com/mbolis/interview-survey/httpx"
	"github.com/mbolis/interview-survey/i18n"
	"github.com/mbolis/interview-survey/log"
	"github.com/mbolis/interview-survey/views"
)

var refreshAuth = regexp.MustCompile(`(?i)^refresh\s+(.*)`)

// Login issues a token pair for the credentials in the basic auth header.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		resp := httpx.PasswordGrant(r.Context(), app.BearerServer, user, pass)
		if err := resp.Flush(w); err != nil {
			log.Debugf("login.flush: %s", err)
		}
	}
}

// Refresh redeems the token in an "Authorization: Refresh <token>" header.
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := refreshAuth.FindStringSubmatch(r.Header.Get("authorization"))
		if len(match) == 0 {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}

		resp := httpx.RefreshGrant(r.Context(), app.BearerServer, match[1])
		if err := resp.Flush(w); err != nil {
			log.Debugf("refresh.flush: %s", err)
		}
	}
}

// safeGoto keeps post-login redirects inside the admin area.
func safeGoto(raw string) string {
	if strings.HasPrefix(raw, "/admin") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return reportPath
}

func renderLogin(app app.App, w http.ResponseWriter, status int, lang i18n.Lang, gotoPath, errMsg string) {
	err := app.Views.Render(w, status, views.PageLogin, views.LoginData{
		Common: views.Common{
			L:           app.Catalog.For(lang),
			SurveyTitle: app.Tr(app.Survey.Title, lang),
			LangURLs:    langURLs("/login", "goto", gotoPath),
		},
		Goto:  gotoPath,
		Error: errMsg,
	})
	if err != nil {
		httpx.LogInternalError(w, "views.login", err)
	}
}

func LoginPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)
		setLangCookie(w, lang)
		renderLogin(app, w, http.StatusOK, lang, safeGoto(r.URL.Query().Get("goto")), "")
	}
}

// LoginSubmit turns the login form into session cookies.
func LoginSubmit(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_form")
			return
		}
		lang := requestLang(r)
		gotoPath := safeGoto(r.PostFormValue("goto"))
		user := strings.TrimSpace(r.PostFormValue("username"))

		resp := httpx.PasswordGrant(r.Context(), app.BearerServer, user, r.PostFormValue("password"))
		if resp.Status() != http.StatusOK {
			log.WithFields(log.Fields{"username": user, "status": resp.Status()}).Info("login: rejected")
			renderLogin(app, w, http.StatusUnauthorized, lang, gotoPath, app.Tr("login_failed", lang))
			return
		}

		var tokens httpx.Tokens
		if err := resp.DecodeJSON(&tokens); err != nil {
			httpx.LogInternalError(w, "login.decode_tokens", err)
			return
		}
		httpx.SetSessionCookies(w, tokens)
		setLangCookie(w, lang)
		log.WithFields(log.Fields{"username": user}).Info("login: ok")

		httpx.Redirect(w, r, "login", gotoPath)
	}
}

func Logout(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.ClearSessionCookies(w)
		httpx.Redirect(w, r, "logout", withQuery("/login", "lang", string(requestLang(r))))
	}
}
