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
// GET /reviews
// GET /bootcamps/{bootcamp_id}/reviews

type reviewGetAllHandler struct {
	opts       query.Options
	bootcampID string
}

func makeFetchReviews() gimlet.RouteHandler {
	return &reviewGetAllHandler{}
}

func (h *reviewGetAllHandler) Factory() gimlet.RouteHandler { return &reviewGetAllHandler{} }

func (h *reviewGetAllHandler) Parse(ctx context.Context, r *http.Request) error {
	h.opts = query.Parse(r.URL.Query())
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	return nil
}

func (h *reviewGetAllHandler) Run(ctx context.Context) gimlet.Responder {
	resp, err := data.FindReviews(ctx, h.opts, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(resp)
}

////////////////////////////////////////////////////////////////////////
//
// GET /reviews/{review_id}

type reviewGetByIdHandler struct {
	reviewID string
}

func makeFetchReviewById() gimlet.RouteHandler {
	return &reviewGetByIdHandler{}
}

func (h *reviewGetByIdHandler) Factory() gimlet.RouteHandler { return &reviewGetByIdHandler{} }

func (h *reviewGetByIdHandler) Parse(ctx context.Context, r *http.Request) error {
	h.reviewID = gimlet.GetVars(r)["review_id"]
	return nil
}

func (h *reviewGetByIdHandler) Run(ctx context.Context) gimlet.Responder {
	r, err := data.FindReviewById(ctx, h.reviewID)
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIReview{}
	api.BuildFromService(*r)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// POST /bootcamps/{bootcamp_id}/reviews

type reviewPostHandler struct {
	bootcampID string
	body       restmodel.APIReview
}

func makeCreateReview() gimlet.RouteHandler {
	return &reviewPostHandler{}
}

func (h *reviewPostHandler) Factory() gimlet.RouteHandler { return &reviewPostHandler{} }

func (h *reviewPostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	if err := gimlet.GetJSON(r.Body, &h.body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading review from request").Error(),
		}
	}
	return nil
}

func (h *reviewPostHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	parent, err := data.FindBootcampById(ctx, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}

	r := h.body.ToService()
	r.BootcampId = parent.Id
	r.OwnerId = usr.Id
	if err := data.CreateReview(ctx, &r); err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIReview{}
	api.BuildFromService(r)
	resp := gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
	if err := resp.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(err)
	}
	return resp
}

////////////////////////////////////////////////////////////////////////
//
// PUT /reviews/{review_id}

type reviewPutHandler struct {
	reviewID string
	body     restmodel.APIReview
}

func makeUpdateReview() gimlet.RouteHandler {
	return &reviewPutHandler{}
}

func (h *reviewPutHandler) Factory() gimlet.RouteHandler { return &reviewPutHandler{} }

func (h *reviewPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.reviewID = gimlet.GetVars(r)["review_id"]
	if err := gimlet.GetJSON(r.Body, &h.body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading review from request").Error(),
		}
	}
	return nil
}

func (h *reviewPutHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	existing, err := data.FindReviewById(ctx, h.reviewID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(existing.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not modify this review",
		})
	}

	updated, err := data.UpdateReview(ctx, existing, h.body.ToService())
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIReview{}
	api.BuildFromService(*updated)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /reviews/{review_id}

type reviewDeleteHandler struct {
	reviewID string
}

func makeDeleteReview() gimlet.RouteHandler {
	return &reviewDeleteHandler{}
}

func (h *reviewDeleteHandler) Factory() gimlet.RouteHandler { return &reviewDeleteHandler{} }

func (h *reviewDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.reviewID = gimlet.GetVars(r)["review_id"]
	return nil
}

func (h *reviewDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	existing, err := data.FindReviewById(ctx, h.reviewID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(existing.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not modify this review",
		})
	}

	if err := data.DeleteReview(ctx, existing); err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(struct{}{}))
}
