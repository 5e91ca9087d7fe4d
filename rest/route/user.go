package route

import (
	"context"
	"net/http"

	"github.com/campdir/campdir/rest/data"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/campdir/campdir/rest/query"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// Admin-only account management. Role restriction is applied by the
// middleware wrapping these routes.

////////////////////////////////////////////////////////////////////////
//
// GET /users

type userGetAllHandler struct {
	opts query.Options
}

func makeFetchUsers() gimlet.RouteHandler {
	return &userGetAllHandler{}
}

func (h *userGetAllHandler) Factory() gimlet.RouteHandler { return &userGetAllHandler{} }

func (h *userGetAllHandler) Parse(ctx context.Context, r *http.Request) error {
	h.opts = query.Parse(r.URL.Query())
	return nil
}

func (h *userGetAllHandler) Run(ctx context.Context) gimlet.Responder {
	resp, err := data.FindUsers(ctx, h.opts)
	if err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(resp)
}

////////////////////////////////////////////////////////////////////////
//
// GET /users/{user_id}

type userGetByIdHandler struct {
	userID string
}

func makeFetchUserById() gimlet.RouteHandler {
	return &userGetByIdHandler{}
}

func (h *userGetByIdHandler) Factory() gimlet.RouteHandler { return &userGetByIdHandler{} }

func (h *userGetByIdHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]
	return nil
}

func (h *userGetByIdHandler) Run(ctx context.Context) gimlet.Responder {
	u, err := data.FindUserById(ctx, h.userID)
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIUser{}
	api.BuildFromService(*u)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// POST /users

type userPostHandler struct {
	body     restmodel.APIUser
	password string
}

func makeCreateUser() gimlet.RouteHandler {
	return &userPostHandler{}
}

func (h *userPostHandler) Factory() gimlet.RouteHandler { return &userPostHandler{} }

func (h *userPostHandler) Parse(ctx context.Context, r *http.Request) error {
	body := struct {
		restmodel.APIUser
		Password *string `json:"password"`
	}{}
	if err := gimlet.GetJSON(r.Body, &body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading user from request").Error(),
		}
	}

	h.body = body.APIUser
	h.password = utility.FromStringPtr(body.Password)
	if utility.FromStringPtr(h.body.EmailAddress) == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "user email must not be empty",
		}
	}
	return nil
}

func (h *userPostHandler) Run(ctx context.Context) gimlet.Responder {
	u := h.body.ToService()
	if err := data.CreateUser(ctx, &u, h.password); err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIUser{}
	api.BuildFromService(u)
	resp := gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
	if err := resp.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(err)
	}
	return resp
}

////////////////////////////////////////////////////////////////////////
//
// PUT /users/{user_id}

type userPutHandler struct {
	userID string
	body   restmodel.APIUser
}

func makeUpdateUser() gimlet.RouteHandler {
	return &userPutHandler{}
}

func (h *userPutHandler) Factory() gimlet.RouteHandler { return &userPutHandler{} }

func (h *userPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]
	if err := gimlet.GetJSON(r.Body, &h.body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading user from request").Error(),
		}
	}
	return nil
}

func (h *userPutHandler) Run(ctx context.Context) gimlet.Responder {
	if _, err := data.FindUserById(ctx, h.userID); err != nil {
		return makeErrorResponder(err)
	}

	updated, err := data.UpdateUser(ctx, h.userID, h.body.ToService())
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIUser{}
	api.BuildFromService(*updated)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /users/{user_id}

type userDeleteHandler struct {
	userID string
}

func makeDeleteUser() gimlet.RouteHandler {
	return &userDeleteHandler{}
}

func (h *userDeleteHandler) Factory() gimlet.RouteHandler { return &userDeleteHandler{} }

func (h *userDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]
	return nil
}

func (h *userDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	if _, err := data.FindUserById(ctx, h.userID); err != nil {
		return makeErrorResponder(err)
	}

	if err := data.DeleteUser(ctx, h.userID); err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(struct{}{}))
}
