package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/oauth"
	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withClaims(claims map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin/report", nil)
	if claims == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), oauth.ClaimsContext, claims))
}

func TestAdminRole(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]string
		status int
	}{
		{"admin", map[string]string{"roles": "admin"}, http.StatusNoContent},
		{"among others", map[string]string{"roles": "viewer, admin"}, http.StatusNoContent},
		{"other role", map[string]string{"roles": "viewer"}, http.StatusForbidden},
		{"no roles", map[string]string{}, http.StatusForbidden},
		{"no claims", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			admin(ok).ServeHTTP(rec, withClaims(tt.claims))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAdminWithoutToken(t *testing.T) {
	rec := httptest.NewRecorder()
	Admin("secret")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGotoAfterLogin(t *testing.T) {
	assert.Equal(t, "/admin/report?page=2", gotoAfterLogin(httptest.NewRequest(http.MethodGet, "/admin/report?page=2", nil)))
	assert.Equal(t, "/admin/report", gotoAfterLogin(httptest.NewRequest(http.MethodPost, "/admin/report/delete/3", nil)))
}
