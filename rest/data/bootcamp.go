// Package data implements the connectors between the REST routes and
// the database layer. Routes call these functions instead of touching
// model finders directly so that request-shaped errors (gimlet
// ErrorResponse values) are produced in one place.
package data

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/campdir/campdir/model/bootcamp"
	"github.com/campdir/campdir/model/course"
	"github.com/campdir/campdir/model/review"
	"github.com/campdir/campdir/model/user"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/campdir/campdir/rest/query"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/pail"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// FindBootcamps returns the page of bootcamps selected by the
// translated query options, wrapped in the standard list envelope.
func FindBootcamps(ctx context.Context, opts query.Options) (*restmodel.ListResponse, error) {
	bootcamps, err := bootcamp.Find(ctx, opts.Query())
	if err != nil {
		return nil, errors.Wrap(err, "finding bootcamps")
	}
	total, err := bootcamp.Count(ctx, opts.CountQuery())
	if err != nil {
		return nil, errors.Wrap(err, "counting bootcamps")
	}

	apiBootcamps := make([]restmodel.APIBootcamp, 0, len(bootcamps))
	for _, b := range bootcamps {
		api := restmodel.APIBootcamp{}
		api.BuildFromService(b)
		apiBootcamps = append(apiBootcamps, api)
	}

	return restmodel.NewListResponse(apiBootcamps, len(apiBootcamps), opts.Envelope(total)), nil
}

// FindBootcampById returns the bootcamp or a 404-shaped error.
func FindBootcampById(ctx context.Context, id string) (*bootcamp.Bootcamp, error) {
	b, err := bootcamp.FindOneById(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "finding bootcamp '%s'", id)
	}
	if b == nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("bootcamp '%s' not found", id),
		}
	}
	return b, nil
}

// CreateBootcamp inserts a bootcamp owned by the given user. A
// publisher who already owns a bootcamp may not create a second one;
// admins are exempt.
func CreateBootcamp(ctx context.Context, owner *user.DBUser, b *bootcamp.Bootcamp) error {
	if !owner.IsAdmin() {
		existing, err := bootcamp.FindOne(ctx, bootcamp.ByOwner(owner.Id))
		if err != nil {
			return errors.Wrap(err, "checking for existing bootcamp")
		}
		if existing != nil {
			return gimlet.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("user '%s' has already published a bootcamp", owner.Id),
			}
		}
	}

	b.OwnerId = owner.Id
	if err := b.Insert(ctx); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}
	return nil
}

// UpdateBootcamp applies the writable fields of the request body to the
// stored document, regenerating the slug when the name changes.
func UpdateBootcamp(ctx context.Context, id string, changes bootcamp.Bootcamp) (*bootcamp.Bootcamp, error) {
	changes.Id = id
	changes.SetSlug()

	update := bson.M{"$set": bson.M{
		bootcamp.NameKey:          changes.Name,
		bootcamp.SlugKey:          changes.Slug,
		bootcamp.DescriptionKey:   changes.Description,
		bootcamp.WebsiteKey:       changes.Website,
		bootcamp.PhoneKey:         changes.Phone,
		bootcamp.EmailKey:         changes.Email,
		bootcamp.AddressKey:       changes.Address,
		bootcamp.CareersKey:       changes.Careers,
		bootcamp.HousingKey:       changes.Housing,
		bootcamp.JobAssistanceKey: changes.JobAssistance,
		bootcamp.JobGuaranteeKey:  changes.JobGuarantee,
		bootcamp.AcceptGIKey:      changes.AcceptGI,
	}}
	if err := bootcamp.UpdateOne(ctx, id, update); err != nil {
		return nil, errors.Wrapf(err, "updating bootcamp '%s'", id)
	}

	return FindBootcampById(ctx, id)
}

// DeleteBootcamp removes the bootcamp and cascades to its courses and
// reviews.
func DeleteBootcamp(ctx context.Context, id string) error {
	if err := course.RemoveByBootcamp(ctx, id); err != nil {
		return errors.Wrapf(err, "removing courses of bootcamp '%s'", id)
	}
	if err := review.RemoveByBootcamp(ctx, id); err != nil {
		return errors.Wrapf(err, "removing reviews of bootcamp '%s'", id)
	}
	return errors.Wrapf(bootcamp.RemoveOne(ctx, id), "removing bootcamp '%s'", id)
}

// FindBootcampsWithinRadius returns every bootcamp inside the sphere
// centered on (lng, lat) with the given radius in miles.
func FindBootcampsWithinRadius(ctx context.Context, lng, lat, distanceMiles float64) (*restmodel.ListResponse, error) {
	bootcamps, err := bootcamp.Find(ctx, bootcamp.WithinRadius(lng, lat, distanceMiles))
	if err != nil {
		return nil, errors.Wrap(err, "finding bootcamps in radius")
	}

	apiBootcamps := make([]restmodel.APIBootcamp, 0, len(bootcamps))
	for _, b := range bootcamps {
		api := restmodel.APIBootcamp{}
		api.BuildFromService(b)
		apiBootcamps = append(apiBootcamps, api)
	}

	return &restmodel.ListResponse{
		Success: true,
		Count:   len(apiBootcamps),
		Data:    apiBootcamps,
	}, nil
}

// UploadBootcampPhoto stores the photo in the configured bucket under
// the canonical name and records that name on the bootcamp. Validation
// of the upload happens before this is called.
func UploadBootcampPhoto(ctx context.Context, uploadPath, bootcampID, extension string, body io.Reader) (string, error) {
	bucket, err := pail.NewLocalBucket(pail.LocalOptions{Path: uploadPath})
	if err != nil {
		return "", errors.Wrap(err, "opening photo bucket")
	}

	filename := fmt.Sprintf("photo_%s%s", bootcampID, extension)
	if err := bucket.Put(ctx, filename, body); err != nil {
		return "", errors.Wrapf(err, "storing photo '%s'", filename)
	}

	if err := bootcamp.SetPhoto(ctx, bootcampID, filename); err != nil {
		return "", errors.Wrapf(err, "recording photo on bootcamp '%s'", bootcampID)
	}
	return filename, nil
}
