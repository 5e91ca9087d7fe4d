package route

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/model/user"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRequiredMiddleware(t *testing.T) {
	mw := NewRoleRequiredMiddleware(campdir.RolePublisher, campdir.RoleAdmin)

	makeRequest := func(u *user.DBUser) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/bootcamps", nil)
		if u != nil {
			r = r.WithContext(gimlet.AttachUser(r.Context(), u))
		}
		return r
	}

	t.Run("NoUser", func(t *testing.T) {
		rw := httptest.NewRecorder()
		called := false
		mw.ServeHTTP(rw, makeRequest(nil), func(http.ResponseWriter, *http.Request) { called = true })
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rw.Code)
	})

	t.Run("WrongRole", func(t *testing.T) {
		rw := httptest.NewRecorder()
		called := false
		u := &user.DBUser{Id: "u1", Role: campdir.RoleUser}
		mw.ServeHTTP(rw, makeRequest(u), func(http.ResponseWriter, *http.Request) { called = true })
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rw.Code)
	})

	t.Run("MatchingRole", func(t *testing.T) {
		rw := httptest.NewRecorder()
		called := false
		u := &user.DBUser{Id: "u1", Role: campdir.RolePublisher}
		mw.ServeHTTP(rw, makeRequest(u), func(http.ResponseWriter, *http.Request) { called = true })
		assert.True(t, called)
	})

	t.Run("Admin", func(t *testing.T) {
		rw := httptest.NewRecorder()
		called := false
		u := &user.DBUser{Id: "u1", Role: campdir.RoleAdmin}
		mw.ServeHTTP(rw, makeRequest(u), func(http.ResponseWriter, *http.Request) { called = true })
		assert.True(t, called)
	})
}

func TestMakeErrorResponder(t *testing.T) {
	t.Run("PropagatesErrorResponseStatus", func(t *testing.T) {
		resp := makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    "bootcamp 'abc' not found",
		})
		assert.Equal(t, http.StatusNotFound, resp.Status())
	})

	t.Run("UnwrapsWrappedErrorResponse", func(t *testing.T) {
		err := errors.Wrap(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "nope",
		}, "checking ownership")
		resp := makeErrorResponder(err)
		assert.Equal(t, http.StatusForbidden, resp.Status())
	})

	t.Run("DefaultsToInternalError", func(t *testing.T) {
		resp := makeErrorResponder(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, resp.Status())
	})
}

func TestMustHaveUserPanicsWithoutUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	require.Panics(t, func() { MustHaveUser(r.Context()) })
}
