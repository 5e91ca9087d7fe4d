package auth

import (
	"net/http"
	"strings"

	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// NewUserMiddleware returns middleware that resolves a request's
// bearer token (or token cookie) to a user and attaches it to the
// request context. Requests without a usable token pass through
// anonymously; route-level guards decide whether that is acceptable.
func NewUserMiddleware(manager *UserManager, cookieName string) gimlet.Middleware {
	return &userMiddleware{manager: manager, cookieName: cookieName}
}

type userMiddleware struct {
	manager    *UserManager
	cookieName string
}

func (m *userMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	token := tokenFromRequest(r, m.cookieName)
	if token == "" {
		next(rw, r)
		return
	}

	usr, err := m.manager.GetUserByToken(r.Context(), token)
	if err != nil {
		grip.Debug(message.WrapError(err, message.Fields{
			"message": "could not resolve request token to a user",
			"path":    r.URL.Path,
		}))
		next(rw, r)
		return
	}

	r = r.WithContext(gimlet.AttachUser(r.Context(), usr))
	next(rw, r)
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}

	return ""
}
