package route

import (
	"context"
	"net/http"

	"github.com/campdir/campdir/model/user"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
)

// MustHaveUser returns the user attached to the request context. It
// panics if there is none, so it must only be called behind the
// authentication middleware.
func MustHaveUser(ctx context.Context) *user.DBUser {
	u := gimlet.GetUser(ctx)
	if u == nil {
		panic("no user attached to request")
	}
	usr, ok := u.(*user.DBUser)
	if !ok {
		panic("malformed user attached to request")
	}

	return usr
}

// NewRoleRequiredMiddleware restricts a route to users holding one of
// the given roles. Unauthenticated requests get a 401; authenticated
// requests with the wrong role get a 403.
func NewRoleRequiredMiddleware(roles ...string) gimlet.Middleware {
	allowed := map[string]bool{}
	for _, role := range roles {
		allowed[role] = true
	}
	return &roleRequired{allowed: allowed}
}

type roleRequired struct {
	allowed map[string]bool
}

func (m *roleRequired) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	u := gimlet.GetUser(r.Context())
	if u == nil {
		writeAPIError(rw, http.StatusUnauthorized, "authentication required")
		return
	}

	usr, ok := u.(*user.DBUser)
	if !ok {
		writeAPIError(rw, http.StatusUnauthorized, "authentication required")
		return
	}

	for _, role := range usr.Roles() {
		if m.allowed[role] {
			next(rw, r)
			return
		}
	}

	writeAPIError(rw, http.StatusForbidden, "user's role may not access this resource")
}

// apiError is the error body every route returns.
type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeAPIError(rw http.ResponseWriter, status int, message string) {
	gimlet.WriteJSONResponse(rw, status, apiError{Error: message})
}

// makeErrorResponder converts an error into the standard error body,
// propagating the status of a gimlet ErrorResponse and treating
// anything else as a 500.
func makeErrorResponder(err error) gimlet.Responder {
	status := http.StatusInternalServerError
	message := err.Error()
	if errResp, ok := errors.Cause(err).(gimlet.ErrorResponse); ok {
		status = errResp.StatusCode
		message = errResp.Message
	}

	resp := gimlet.NewJSONResponse(apiError{Error: message})
	if err := resp.SetStatus(status); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(err)
	}
	return resp
}
