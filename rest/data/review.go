package data

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campdir/campdir/model/review"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/campdir/campdir/rest/query"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// FindReviews returns the page of reviews selected by the translated
// query options. A non-empty bootcampID narrows the predicate to that
// bootcamp's reviews.
func FindReviews(ctx context.Context, opts query.Options, bootcampID string) (*restmodel.ListResponse, error) {
	if bootcampID != "" {
		opts.Filter[review.BootcampIdKey] = bootcampID
	}

	reviews, err := review.Find(ctx, opts.Query())
	if err != nil {
		return nil, errors.Wrap(err, "finding reviews")
	}
	total, err := review.Count(ctx, opts.CountQuery())
	if err != nil {
		return nil, errors.Wrap(err, "counting reviews")
	}

	apiReviews := make([]restmodel.APIReview, 0, len(reviews))
	for _, r := range reviews {
		api := restmodel.APIReview{}
		api.BuildFromService(r)
		apiReviews = append(apiReviews, api)
	}

	return restmodel.NewListResponse(apiReviews, len(apiReviews), opts.Envelope(total)), nil
}

// FindReviewById returns the review or a 404-shaped error.
func FindReviewById(ctx context.Context, id string) (*review.Review, error) {
	r, err := review.FindOneById(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "finding review '%s'", id)
	}
	if r == nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("review '%s' not found", id),
		}
	}
	return r, nil
}

// CreateReview inserts a review and refreshes the bootcamp's average
// rating. A second review by the same user is rejected by the unique
// index and surfaces as a 400.
func CreateReview(ctx context.Context, r *review.Review) error {
	if err := r.Validate(); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if err := r.Insert(ctx); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}
	return nil
}

// UpdateReview applies the writable fields of the request body to the
// stored review and returns the refreshed document.
func UpdateReview(ctx context.Context, existing *review.Review, changes review.Review) (*review.Review, error) {
	if err := changes.Validate(); err != nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	update := bson.M{"$set": bson.M{
		review.TitleKey:  changes.Title,
		review.TextKey:   changes.Text,
		review.RatingKey: changes.Rating,
	}}
	if err := review.UpdateOne(ctx, existing.Id, existing.BootcampId, update); err != nil {
		return nil, errors.Wrapf(err, "updating review '%s'", existing.Id)
	}

	return FindReviewById(ctx, existing.Id)
}

// DeleteReview removes the review and refreshes the bootcamp's average
// rating.
func DeleteReview(ctx context.Context, r *review.Review) error {
	return errors.Wrapf(review.RemoveOne(ctx, r.Id, r.BootcampId), "removing review '%s'", r.Id)
}
