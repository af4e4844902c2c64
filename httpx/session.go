package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/oauth"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Tokens is the body of a successful grant.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// PasswordGrant runs the oauth password grant outside of its own endpoint.
func PasswordGrant(ctx context.Context, bs *oauth.BearerServer, username, password string) ResponseBuffer {
	return grant(ctx, bs, url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	})
}

// RefreshGrant redeems a refresh token.
func RefreshGrant(ctx context.Context, bs *oauth.BearerServer, refreshToken string) ResponseBuffer {
	return grant(ctx, bs, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	})
}

// oauth.BearerServer only speaks HTTP, so a form request is made up for it.
func grant(ctx context.Context, bs *oauth.BearerServer, body url.Values) ResponseBuffer {
	resp := NewResponseBuffer()

	encoded := body.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/", strings.NewReader(encoded))
	if err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		return resp
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	req.Header.Set("content-length", strconv.Itoa(len(encoded)))

	bs.UserCredentials(resp, req)
	return resp
}

func SetSessionCookies(w http.ResponseWriter, tokens Tokens) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AccessTokenCookie,
		Value:    tokens.AccessToken,
		MaxAge:   int(tokens.ExpiresIn),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		MaxAge:   int(RefreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Path:     "/",
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
