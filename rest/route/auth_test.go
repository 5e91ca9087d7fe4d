package route

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestAuthAPI(t *testing.T) *authAPI {
	config := campdir.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 30}
	manager, err := auth.NewUserManager(config)
	require.NoError(t, err)
	return newAuthAPI(manager, config)
}

func TestSelfAssignableRoles(t *testing.T) {
	assert.True(t, selfAssignable(campdir.RoleUser))
	assert.True(t, selfAssignable(campdir.RolePublisher))
	assert.False(t, selfAssignable(campdir.RoleAdmin))
	assert.False(t, selfAssignable("superuser"))
}

func TestRegisterRejectsBadInput(t *testing.T) {
	a := makeTestAuthAPI(t)

	t.Run("AdminRole", func(t *testing.T) {
		rw := httptest.NewRecorder()
		body := `{"name": "n", "email": "e@example.com", "password": "hunter22", "role": "admin"}`
		r := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		a.register(rw, r)
		assert.Equal(t, http.StatusBadRequest, rw.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		rw := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{`))
		a.register(rw, r)
		assert.Equal(t, http.StatusBadRequest, rw.Code)
	})
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	a := makeTestAuthAPI(t)

	for name, body := range map[string]string{
		"MissingEmail":    `{"password": "hunter22"}`,
		"MissingPassword": `{"email": "e@example.com"}`,
		"EmptyBody":       `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			rw := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
			a.login(rw, r)
			assert.Equal(t, http.StatusBadRequest, rw.Code)
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	a := makeTestAuthAPI(t)

	rw := httptest.NewRecorder()
	a.logout(rw, httptest.NewRequest(http.MethodGet, "/auth/logout", nil))
	require.Equal(t, http.StatusOK, rw.Code)

	cookies := rw.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}
