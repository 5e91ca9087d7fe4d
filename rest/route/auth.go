package route

import (
	"context"
	"net/http"
	"time"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/auth"
	"github.com/campdir/campdir/model/user"
	"github.com/campdir/campdir/rest/data"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// authAPI implements the credential-handling routes. These are plain
// handlers rather than RouteHandlers because issuing a session means
// writing a cookie, which the responder framework does not expose.
type authAPI struct {
	manager    *auth.UserManager
	cookieName string
	tokenTTL   time.Duration
}

func newAuthAPI(manager *auth.UserManager, config campdir.AuthConfig) *authAPI {
	return &authAPI{
		manager:    manager,
		cookieName: config.Cookie(),
		tokenTTL:   config.TokenTTL(),
	}
}

// POST /auth/register
func (a *authAPI) register(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{}
	if err := gimlet.GetJSON(r.Body, &body); err != nil {
		writeAPIError(w, http.StatusBadRequest, errors.Wrap(err, "reading registration from request").Error())
		return
	}

	if body.Role == "" {
		body.Role = campdir.RoleUser
	}
	if !selfAssignable(body.Role) {
		writeAPIError(w, http.StatusBadRequest, "may not register with that role")
		return
	}

	u := &user.DBUser{
		Name:         body.Name,
		EmailAddress: body.Email,
		Role:         body.Role,
	}
	if err := data.CreateUser(r.Context(), u, body.Password); err != nil {
		writeDataError(w, err)
		return
	}

	a.sendToken(w, u.Id, http.StatusCreated)
}

// POST /auth/login
func (a *authAPI) login(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := gimlet.GetJSON(r.Body, &body); err != nil {
		writeAPIError(w, http.StatusBadRequest, errors.Wrap(err, "reading credentials from request").Error())
		return
	}
	if body.Email == "" || body.Password == "" {
		writeAPIError(w, http.StatusBadRequest, "must provide an email and password")
		return
	}

	u, err := user.FindOne(r.Context(), user.ByEmail(body.Email))
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if u == nil || !u.CheckPassword(body.Password) {
		writeAPIError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	a.sendToken(w, u.Id, http.StatusOK)
}

// GET /auth/logout
func (a *authAPI) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
	})
	gimlet.WriteJSONResponse(w, http.StatusOK, restmodel.NewDataResponse(struct{}{}))
}

// PUT /auth/updatepassword
func (a *authAPI) updatePassword(w http.ResponseWriter, r *http.Request) {
	usr, ok := gimlet.GetUser(r.Context()).(*user.DBUser)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	body := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{}
	if err := gimlet.GetJSON(r.Body, &body); err != nil {
		writeAPIError(w, http.StatusBadRequest, errors.Wrap(err, "reading passwords from request").Error())
		return
	}

	if !usr.CheckPassword(body.CurrentPassword) {
		writeAPIError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}
	if err := usr.SetPassword(body.NewPassword); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := user.SetPasswordHash(r.Context(), usr.Id, usr.Password); err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.sendToken(w, usr.Id, http.StatusOK)
}

// PUT /auth/resetpassword/{token}
func (a *authAPI) resetPassword(w http.ResponseWriter, r *http.Request) {
	token := gimlet.GetVars(r)["token"]

	body := struct {
		Password string `json:"password"`
	}{}
	if err := gimlet.GetJSON(r.Body, &body); err != nil {
		writeAPIError(w, http.StatusBadRequest, errors.Wrap(err, "reading password from request").Error())
		return
	}

	u, err := user.FindOne(r.Context(), user.ByResetToken(token))
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if u == nil {
		writeAPIError(w, http.StatusBadRequest, "reset token is invalid or expired")
		return
	}

	if err := u.SetPassword(body.Password); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := user.SetPasswordHash(r.Context(), u.Id, u.Password); err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.sendToken(w, u.Id, http.StatusOK)
}

// sendToken issues a signed token for the user, both as the response
// body and as a session cookie.
func (a *authAPI) sendToken(w http.ResponseWriter, userID string, status int) {
	token, err := a.manager.CreateUserToken(userID)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, errors.Wrap(err, "issuing token").Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.tokenTTL),
		HttpOnly: true,
	})
	gimlet.WriteJSONResponse(w, status, restmodel.TokenResponse{Success: true, Token: token})
}

// writeDataError unwraps a data-layer error into the standard error body.
func writeDataError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	if errResp, ok := errors.Cause(err).(gimlet.ErrorResponse); ok {
		status = errResp.StatusCode
		message = errResp.Message
	}
	writeAPIError(w, status, message)
}

func selfAssignable(role string) bool {
	for _, r := range campdir.SelfAssignableRoles() {
		if r == role {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////////////
//
// GET /auth/me

type authMeHandler struct{}

func makeFetchCurrentUser() gimlet.RouteHandler {
	return &authMeHandler{}
}

func (h *authMeHandler) Factory() gimlet.RouteHandler { return &authMeHandler{} }

func (h *authMeHandler) Parse(ctx context.Context, r *http.Request) error { return nil }

func (h *authMeHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	api := restmodel.APIUser{}
	api.BuildFromService(*usr)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// PUT /auth/updatedetails

type authUpdateDetailsHandler struct {
	name  string
	email string
}

func makeUpdateUserDetails() gimlet.RouteHandler {
	return &authUpdateDetailsHandler{}
}

func (h *authUpdateDetailsHandler) Factory() gimlet.RouteHandler { return &authUpdateDetailsHandler{} }

func (h *authUpdateDetailsHandler) Parse(ctx context.Context, r *http.Request) error {
	body := struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{}
	if err := gimlet.GetJSON(r.Body, &body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading details from request").Error(),
		}
	}
	if body.Name == "" || body.Email == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "must provide a name and email",
		}
	}

	h.name = body.Name
	h.email = body.Email
	return nil
}

func (h *authUpdateDetailsHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	if err := user.SetDetails(ctx, usr.Id, h.name, h.email); err != nil {
		return makeErrorResponder(errors.Wrap(err, "updating user details"))
	}

	updated, err := data.FindUserById(ctx, usr.Id)
	if err != nil {
		return makeErrorResponder(err)
	}
	api := restmodel.APIUser{}
	api.BuildFromService(*updated)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// POST /auth/forgotpassword

type authForgotPasswordHandler struct {
	email string
}

func makeForgotPassword() gimlet.RouteHandler {
	return &authForgotPasswordHandler{}
}

func (h *authForgotPasswordHandler) Factory() gimlet.RouteHandler { return &authForgotPasswordHandler{} }

func (h *authForgotPasswordHandler) Parse(ctx context.Context, r *http.Request) error {
	body := struct {
		Email string `json:"email"`
	}{}
	if err := gimlet.GetJSON(r.Body, &body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading email from request").Error(),
		}
	}
	if body.Email == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "must provide an email",
		}
	}

	h.email = body.Email
	return nil
}

func (h *authForgotPasswordHandler) Run(ctx context.Context) gimlet.Responder {
	u, err := user.FindOne(ctx, user.ByEmail(h.email))
	if err != nil {
		return makeErrorResponder(errors.Wrap(err, "finding user by email"))
	}
	if u == nil {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    "no user with that email",
		})
	}

	token := u.CreateResetToken()
	update := bson.M{"$set": bson.M{
		user.ResetPasswordTokenKey: u.ResetPasswordToken,
		user.ResetPasswordUntilKey: u.ResetPasswordUntil,
	}}
	if err := user.UpdateOne(ctx, u.Id, update); err != nil {
		return makeErrorResponder(errors.Wrap(err, "storing reset token"))
	}

	// mail delivery is an external collaborator; hand the token off to
	// the log until a sender is wired up
	grip.Info(message.Fields{
		"message": "password reset requested",
		"user":    u.Id,
		"path":    "/auth/resetpassword/" + token,
		"expires": u.ResetPasswordUntil,
	})

	return gimlet.NewJSONResponse(restmodel.NewDataResponse("reset token issued"))
}
