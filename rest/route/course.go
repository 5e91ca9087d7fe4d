package route

import (
	"context"
	"net/http"

	"github.com/campdir/campdir/rest/data"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/campdir/campdir/rest/query"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////
//
// GET /courses
// GET /bootcamps/{bootcamp_id}/courses

type courseGetAllHandler struct {
	opts       query.Options
	bootcampID string
}

func makeFetchCourses() gimlet.RouteHandler {
	return &courseGetAllHandler{}
}

func (h *courseGetAllHandler) Factory() gimlet.RouteHandler { return &courseGetAllHandler{} }

func (h *courseGetAllHandler) Parse(ctx context.Context, r *http.Request) error {
	h.opts = query.Parse(r.URL.Query())
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	return nil
}

func (h *courseGetAllHandler) Run(ctx context.Context) gimlet.Responder {
	resp, err := data.FindCourses(ctx, h.opts, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(resp)
}

////////////////////////////////////////////////////////////////////////
//
// GET /courses/{course_id}

type courseGetByIdHandler struct {
	courseID string
}

func makeFetchCourseById() gimlet.RouteHandler {
	return &courseGetByIdHandler{}
}

func (h *courseGetByIdHandler) Factory() gimlet.RouteHandler { return &courseGetByIdHandler{} }

func (h *courseGetByIdHandler) Parse(ctx context.Context, r *http.Request) error {
	h.courseID = gimlet.GetVars(r)["course_id"]
	return nil
}

func (h *courseGetByIdHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := data.FindCourseById(ctx, h.courseID)
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APICourse{}
	api.BuildFromService(*c)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// POST /bootcamps/{bootcamp_id}/courses

type coursePostHandler struct {
	bootcampID string
	body       restmodel.APICourse
}

func makeCreateCourse() gimlet.RouteHandler {
	return &coursePostHandler{}
}

func (h *coursePostHandler) Factory() gimlet.RouteHandler { return &coursePostHandler{} }

func (h *coursePostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	if err := gimlet.GetJSON(r.Body, &h.body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading course from request").Error(),
		}
	}
	if h.body.Title == nil || *h.body.Title == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "course title must not be empty",
		}
	}
	return nil
}

func (h *coursePostHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	parent, err := data.FindBootcampById(ctx, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(parent.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not add courses to this bootcamp",
		})
	}

	c := h.body.ToService()
	c.BootcampId = parent.Id
	c.OwnerId = usr.Id
	if err := data.CreateCourse(ctx, &c); err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APICourse{}
	api.BuildFromService(c)
	resp := gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
	if err := resp.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(err)
	}
	return resp
}

////////////////////////////////////////////////////////////////////////
//
// PUT /courses/{course_id}

type coursePutHandler struct {
	courseID string
	body     restmodel.APICourse
}

func makeUpdateCourse() gimlet.RouteHandler {
	return &coursePutHandler{}
}

func (h *coursePutHandler) Factory() gimlet.RouteHandler { return &coursePutHandler{} }

func (h *coursePutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.courseID = gimlet.GetVars(r)["course_id"]
	if err := gimlet.GetJSON(r.Body, &h.body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading course from request").Error(),
		}
	}
	return nil
}

func (h *coursePutHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	existing, err := data.FindCourseById(ctx, h.courseID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(existing.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not modify this course",
		})
	}

	updated, err := data.UpdateCourse(ctx, existing, h.body.ToService())
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APICourse{}
	api.BuildFromService(*updated)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /courses/{course_id}

type courseDeleteHandler struct {
	courseID string
}

func makeDeleteCourse() gimlet.RouteHandler {
	return &courseDeleteHandler{}
}

func (h *courseDeleteHandler) Factory() gimlet.RouteHandler { return &courseDeleteHandler{} }

func (h *courseDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.courseID = gimlet.GetVars(r)["course_id"]
	return nil
}

func (h *courseDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	existing, err := data.FindCourseById(ctx, h.courseID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(existing.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not modify this course",
		})
	}

	if err := data.DeleteCourse(ctx, existing); err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(struct{}{}))
}
