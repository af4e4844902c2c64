package httpx

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/oauth"
	"github.com/mbolis/interview-survey/config"
	"github.com/mbolis/interview-survey/log"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role there is: every user is an admin.
const RoleAdmin = "admin"

// RefreshTTL is how long a refresh token can be redeemed. An admin who
// comes back after that has to log in again.
const RefreshTTL = 7 * 24 * time.Hour

var errRefresh = errors.New("could not refresh")

type credentialsVerifier struct {
	db  *sql.DB
	now func() time.Time
}

func CredentialsVerifier(db *sql.DB) oauth.CredentialsVerifier {
	return &credentialsVerifier{db, time.Now}
}

// NewBearerServer issues admin tokens. Access tokens live for the
// configured session timeout.
func NewBearerServer(db *sql.DB, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, CredentialsVerifier(db), nil)
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	var hash []byte
	err := cs.db.
		QueryRowContext(r.Context(), "SELECT password_hash FROM user WHERE username=?", username).
		Scan(&hash)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Errorf("db.validate_user: %s", err)
		}
		return errors.Wrap(err, "validate user")
	}

	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	_, err := cs.db.Exec(
		"INSERT INTO token (username, token_id, refresh_token_id, expiration) VALUES (?, ?, ?, ?)",
		credential,
		tokenID,
		refreshTokenID,
		cs.now().Add(RefreshTTL),
	)
	return errors.Wrap(err, "db.store_token")
}

// ValidateTokenID redeems a refresh token: it is deleted whether or not it
// is still valid, so each one works once.
func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	var expiration time.Time
	var ok bool

	err := cs.db.
		QueryRow(`
			DELETE FROM token
			WHERE username = ?
				AND token_id = ?
				AND refresh_token_id = ?
			RETURNING expiration, 1`,
			credential,
			tokenID,
			refreshTokenID,
		).
		Scan(&expiration, &ok)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Errorf("db.validate_token: %s", err)
	}
	if !ok {
		return errRefresh
	}

	if expiration.Before(cs.now()) {
		return errRefresh
	}
	return nil
}
func (*credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": RoleAdmin}, nil
}
func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}
func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}
