package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/campdir/campdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager, err := NewUserManager(campdir.AuthConfig{
		JWTSecret:       "sekrit",
		TokenTTLMinutes: 30,
	})
	require.NoError(t, err)

	token, err := manager.CreateUserToken("user-id")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-id", userID)
}

func TestTokenRejection(t *testing.T) {
	manager, err := NewUserManager(campdir.AuthConfig{JWTSecret: "sekrit"})
	require.NoError(t, err)

	t.Run("Garbage", func(t *testing.T) {
		_, err := manager.parseToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, err := NewUserManager(campdir.AuthConfig{JWTSecret: "different"})
		require.NoError(t, err)
		token, err := other.CreateUserToken("user-id")
		require.NoError(t, err)

		_, err = manager.parseToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := &UserManager{secret: []byte("sekrit"), ttl: -time.Minute}
		token, err := expired.CreateUserToken("user-id")
		require.NoError(t, err)

		_, err = manager.parseToken(token)
		assert.Error(t, err)
	})
}

func TestNewUserManagerRequiresSecret(t *testing.T) {
	_, err := NewUserManager(campdir.AuthConfig{})
	assert.Error(t, err)
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("BearerHeader", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc123")
		assert.Equal(t, "abc123", tokenFromRequest(r, "token"))
	})

	t.Run("Cookie", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "token", Value: "abc123"})
		assert.Equal(t, "abc123", tokenFromRequest(r, "token"))
	})

	t.Run("HeaderWinsOverCookie", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer fromheader")
		r.AddCookie(&http.Cookie{Name: "token", Value: "fromcookie"})
		assert.Equal(t, "fromheader", tokenFromRequest(r, "token"))
	})

	t.Run("Absent", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, tokenFromRequest(r, "token"))
	})
}
