package route

import (
	"context"
	"net/http"
	"strconv"

	"github.com/campdir/campdir/model/bootcamp"
	"github.com/campdir/campdir/rest/data"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/campdir/campdir/rest/query"
	"github.com/campdir/campdir/thirdparty"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

////////////////////////////////////////////////////////////////////////
//
// GET /bootcamps

type bootcampGetAllHandler struct {
	opts query.Options
}

func makeFetchBootcamps() gimlet.RouteHandler {
	return &bootcampGetAllHandler{}
}

func (h *bootcampGetAllHandler) Factory() gimlet.RouteHandler { return &bootcampGetAllHandler{} }

func (h *bootcampGetAllHandler) Parse(ctx context.Context, r *http.Request) error {
	h.opts = query.Parse(r.URL.Query())
	return nil
}

func (h *bootcampGetAllHandler) Run(ctx context.Context) gimlet.Responder {
	resp, err := data.FindBootcamps(ctx, h.opts)
	if err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(resp)
}

////////////////////////////////////////////////////////////////////////
//
// GET /bootcamps/{bootcamp_id}

type bootcampGetByIdHandler struct {
	bootcampID string
}

func makeFetchBootcampById() gimlet.RouteHandler {
	return &bootcampGetByIdHandler{}
}

func (h *bootcampGetByIdHandler) Factory() gimlet.RouteHandler { return &bootcampGetByIdHandler{} }

func (h *bootcampGetByIdHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	if h.bootcampID == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "must provide bootcamp ID",
		}
	}
	return nil
}

func (h *bootcampGetByIdHandler) Run(ctx context.Context) gimlet.Responder {
	b, err := data.FindBootcampById(ctx, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIBootcamp{}
	api.BuildFromService(*b)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// POST /bootcamps

type bootcampPostHandler struct {
	body restmodel.APIBootcamp

	geocoder *thirdparty.Geocoder
}

func makeCreateBootcamp(geocoder *thirdparty.Geocoder) gimlet.RouteHandler {
	return &bootcampPostHandler{geocoder: geocoder}
}

func (h *bootcampPostHandler) Factory() gimlet.RouteHandler {
	return &bootcampPostHandler{geocoder: h.geocoder}
}

func (h *bootcampPostHandler) Parse(ctx context.Context, r *http.Request) error {
	if err := gimlet.GetJSON(r.Body, &h.body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading bootcamp from request").Error(),
		}
	}
	if h.body.Name == nil || *h.body.Name == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "bootcamp name must not be empty",
		}
	}
	if h.body.Address == nil || *h.body.Address == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "bootcamp address must not be empty",
		}
	}
	return nil
}

func (h *bootcampPostHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	b := h.body.ToService()
	loc, err := h.geocoder.Geocode(ctx, b.Address)
	if err != nil {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrapf(err, "geocoding address '%s'", b.Address).Error(),
		})
	}
	b.Location = geoPointFromLocation(loc)

	if err := data.CreateBootcamp(ctx, usr, &b); err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIBootcamp{}
	api.BuildFromService(b)
	resp := gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
	if err := resp.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(err)
	}
	return resp
}

////////////////////////////////////////////////////////////////////////
//
// PUT /bootcamps/{bootcamp_id}

type bootcampPutHandler struct {
	bootcampID string
	body       restmodel.APIBootcamp

	geocoder *thirdparty.Geocoder
}

func makeUpdateBootcamp(geocoder *thirdparty.Geocoder) gimlet.RouteHandler {
	return &bootcampPutHandler{geocoder: geocoder}
}

func (h *bootcampPutHandler) Factory() gimlet.RouteHandler {
	return &bootcampPutHandler{geocoder: h.geocoder}
}

func (h *bootcampPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	if err := gimlet.GetJSON(r.Body, &h.body); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading bootcamp from request").Error(),
		}
	}
	return nil
}

func (h *bootcampPutHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	existing, err := data.FindBootcampById(ctx, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(existing.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not modify this bootcamp",
		})
	}

	changes := h.body.ToService()
	if changes.Address != "" && changes.Address != existing.Address {
		loc, err := h.geocoder.Geocode(ctx, changes.Address)
		if err != nil {
			return makeErrorResponder(gimlet.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    errors.Wrapf(err, "geocoding address '%s'", changes.Address).Error(),
			})
		}
		update := bson.M{"$set": bson.M{bootcamp.LocationKey: geoPointFromLocation(loc)}}
		if err := bootcamp.UpdateOne(ctx, h.bootcampID, update); err != nil {
			return makeErrorResponder(errors.Wrap(err, "updating bootcamp location"))
		}
	}

	updated, err := data.UpdateBootcamp(ctx, h.bootcampID, changes)
	if err != nil {
		return makeErrorResponder(err)
	}

	api := restmodel.APIBootcamp{}
	api.BuildFromService(*updated)
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(api))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /bootcamps/{bootcamp_id}

type bootcampDeleteHandler struct {
	bootcampID string
}

func makeDeleteBootcamp() gimlet.RouteHandler {
	return &bootcampDeleteHandler{}
}

func (h *bootcampDeleteHandler) Factory() gimlet.RouteHandler { return &bootcampDeleteHandler{} }

func (h *bootcampDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	return nil
}

func (h *bootcampDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	existing, err := data.FindBootcampById(ctx, h.bootcampID)
	if err != nil {
		return makeErrorResponder(err)
	}
	if !usr.CanModify(existing.OwnerId) {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "user may not modify this bootcamp",
		})
	}

	if err := data.DeleteBootcamp(ctx, h.bootcampID); err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(restmodel.NewDataResponse(struct{}{}))
}

////////////////////////////////////////////////////////////////////////
//
// GET /bootcamps/radius/{zipcode}/{distance}

type bootcampRadiusHandler struct {
	zipcode  string
	distance float64

	geocoder *thirdparty.Geocoder
}

func makeFetchBootcampsInRadius(geocoder *thirdparty.Geocoder) gimlet.RouteHandler {
	return &bootcampRadiusHandler{geocoder: geocoder}
}

func (h *bootcampRadiusHandler) Factory() gimlet.RouteHandler {
	return &bootcampRadiusHandler{geocoder: h.geocoder}
}

func (h *bootcampRadiusHandler) Parse(ctx context.Context, r *http.Request) error {
	vars := gimlet.GetVars(r)
	h.zipcode = vars["zipcode"]
	if h.zipcode == "" {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "must provide a zipcode",
		}
	}

	distance, err := strconv.ParseFloat(vars["distance"], 64)
	if err != nil || distance <= 0 {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "distance must be a positive number of miles",
		}
	}
	h.distance = distance
	return nil
}

func (h *bootcampRadiusHandler) Run(ctx context.Context) gimlet.Responder {
	loc, err := h.geocoder.Geocode(ctx, h.zipcode)
	if err != nil {
		return makeErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrapf(err, "geocoding zipcode '%s'", h.zipcode).Error(),
		})
	}

	resp, err := data.FindBootcampsWithinRadius(ctx, loc.Longitude, loc.Latitude, h.distance)
	if err != nil {
		return makeErrorResponder(err)
	}
	return gimlet.NewJSONResponse(resp)
}

func geoPointFromLocation(loc *thirdparty.Location) bootcamp.GeoPoint {
	point := bootcamp.NewGeoPoint(loc.Longitude, loc.Latitude)
	point.FormattedAddress = loc.FormattedAddress
	point.Street = loc.Street
	point.City = loc.City
	point.State = loc.State
	point.Zipcode = loc.Zipcode
	point.Country = loc.Country
	return point
}
