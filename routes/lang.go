package routes

import (
	"net/http"
	"net/url"

	"github.com/mbolis/interview-survey/i18n"
)

const (
	langCookie    = "survey_lang"
	langCookieAge = 60 * 60 * 24 * 365
)

// requestLang picks the language of a request: the lang query parameter,
// then the language cookie, then Accept-Language.
func requestLang(r *http.Request) i18n.Lang {
	if raw := r.URL.Query().Get("lang"); raw != "" {
		return i18n.Normalize(raw)
	}
	if raw := r.PostFormValue("lang"); raw != "" {
		return i18n.Normalize(raw)
	}
	if c, err := r.Cookie(langCookie); err == nil && c.Value != "" {
		return i18n.Normalize(c.Value)
	}
	if lang, ok := i18n.Negotiate(r.Header.Get("Accept-Language")); ok {
		return lang
	}
	return i18n.Default
}

func setLangCookie(w http.ResponseWriter, lang i18n.Lang) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     langCookie,
		Value:    string(lang),
		MaxAge:   langCookieAge,
		SameSite: http.SameSiteLaxMode,
	})
}

// withQuery builds path?query from key, value pairs.
func withQuery(path string, pairs ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(pairs[i], pairs[i+1])
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// langURLs links the current page in every supported language.
func langURLs(path string, pairs ...string) map[string]string {
	urls := map[string]string{}
	for _, lang := range i18n.Supported {
		urls[string(lang)] = withQuery(path, append([]string{"lang", string(lang)}, pairs...)...)
	}
	return urls
}
