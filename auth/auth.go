// Package auth issues and verifies the bearer tokens used by the REST
// API, and provides the middleware that resolves a request's token to
// a database user.
package auth

import (
	"context"
	"time"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/model/user"
	jwt "github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
)

// UserManager issues signed tokens for users and resolves tokens back
// to their user documents.
type UserManager struct {
	secret []byte
	ttl    time.Duration
}

// NewUserManager builds a UserManager from the auth settings.
func NewUserManager(config campdir.AuthConfig) (*UserManager, error) {
	if config.JWTSecret == "" {
		return nil, errors.New("cannot construct user manager without a signing secret")
	}

	return &UserManager{
		secret: []byte(config.JWTSecret),
		ttl:    config.TokenTTL(),
	}, nil
}

// CreateUserToken signs a token identifying the given user.
func (m *UserManager) CreateUserToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.ttl).Unix(),
	})

	signed, err := token.SignedString(m.secret)
	return signed, errors.Wrap(err, "signing token")
}

// parseToken verifies a token's signature and expiry and returns the
// user ID it identifies.
func (m *UserManager) parseToken(token string) (string, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method '%v'", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", errors.Wrap(err, "parsing token")
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}

	return claims.Subject, nil
}

// GetUserByToken resolves a token to its user document.
func (m *UserManager) GetUserByToken(ctx context.Context, token string) (*user.DBUser, error) {
	userID, err := m.parseToken(token)
	if err != nil {
		return nil, err
	}

	u, err := user.FindOneById(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "finding user for token")
	}
	if u == nil {
		return nil, errors.New("token references a user that no longer exists")
	}

	return u, nil
}
