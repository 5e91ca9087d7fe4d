package route

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campdir/campdir/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHandler(t *testing.T) {
	env := testutil.NewEnvironment(testutil.TestSettings())
	handler, err := GetHandler(env)
	require.NoError(t, err)
	require.NotNil(t, handler)

	t.Run("RoutesMountedUnderVersionedPrefix", func(t *testing.T) {
		rw := httptest.NewRecorder()
		handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/v2/auth/logout", nil))
		assert.Equal(t, http.StatusOK, rw.Code)
	})

	t.Run("UnknownRouteIs404", func(t *testing.T) {
		rw := httptest.NewRecorder()
		handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/v2/nonsense", nil))
		assert.Equal(t, http.StatusNotFound, rw.Code)
	})

	t.Run("AuthenticatedRouteRejectsAnonymous", func(t *testing.T) {
		rw := httptest.NewRecorder()
		handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/v2/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rw.Code)
	})
}
