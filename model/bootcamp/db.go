package bootcamp

import (
	"context"
	"time"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "bootcamps"

var (
	IdKey            = bsonutil.MustHaveTag(Bootcamp{}, "Id")
	NameKey          = bsonutil.MustHaveTag(Bootcamp{}, "Name")
	SlugKey          = bsonutil.MustHaveTag(Bootcamp{}, "Slug")
	DescriptionKey   = bsonutil.MustHaveTag(Bootcamp{}, "Description")
	WebsiteKey       = bsonutil.MustHaveTag(Bootcamp{}, "Website")
	PhoneKey         = bsonutil.MustHaveTag(Bootcamp{}, "Phone")
	EmailKey         = bsonutil.MustHaveTag(Bootcamp{}, "Email")
	AddressKey       = bsonutil.MustHaveTag(Bootcamp{}, "Address")
	LocationKey      = bsonutil.MustHaveTag(Bootcamp{}, "Location")
	CareersKey       = bsonutil.MustHaveTag(Bootcamp{}, "Careers")
	AverageRatingKey = bsonutil.MustHaveTag(Bootcamp{}, "AverageRating")
	AverageCostKey   = bsonutil.MustHaveTag(Bootcamp{}, "AverageCost")
	PhotoKey         = bsonutil.MustHaveTag(Bootcamp{}, "Photo")
	HousingKey       = bsonutil.MustHaveTag(Bootcamp{}, "Housing")
	JobAssistanceKey = bsonutil.MustHaveTag(Bootcamp{}, "JobAssistance")
	JobGuaranteeKey  = bsonutil.MustHaveTag(Bootcamp{}, "JobGuarantee")
	AcceptGIKey      = bsonutil.MustHaveTag(Bootcamp{}, "AcceptGI")
	OwnerIdKey       = bsonutil.MustHaveTag(Bootcamp{}, "OwnerId")
	CreatedAtKey     = bsonutil.MustHaveTag(Bootcamp{}, "CreatedAt")
)

// ById produces a query that returns the bootcamp with the given ID.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// ByOwner produces a query matching every bootcamp the user owns.
func ByOwner(ownerID string) db.Q {
	return db.Query(bson.M{OwnerIdKey: ownerID})
}

// WithinRadius matches bootcamps whose location falls inside the
// spherical region centered on (lng, lat). The radius is a linear
// distance in miles, converted to radians by dividing by the Earth's
// radius.
func WithinRadius(lng, lat, distanceMiles float64) db.Q {
	radius := distanceMiles / campdir.EarthRadiusMiles
	return db.Query(bson.M{
		LocationKey: bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": []any{[]float64{lng, lat}, radius},
			},
		},
	})
}

// FindOne gets one Bootcamp for the given query.
func FindOne(ctx context.Context, query db.Q) (*Bootcamp, error) {
	b := &Bootcamp{}
	err := db.FindOneQ(ctx, Collection, query, b)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return b, err
}

// FindOneById gets a Bootcamp by ID.
func FindOneById(ctx context.Context, id string) (*Bootcamp, error) {
	return FindOne(ctx, ById(id))
}

// Find gets every Bootcamp matching the given query.
func Find(ctx context.Context, query db.Q) ([]Bootcamp, error) {
	bootcamps := []Bootcamp{}
	err := db.FindAllQ(ctx, Collection, query, &bootcamps)
	return bootcamps, err
}

// Count returns the number of bootcamps matching the given query.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// Insert writes a new bootcamp, assigning an ID, slug, and creation
// time if unset.
func (b *Bootcamp) Insert(ctx context.Context) error {
	if b.Id == "" {
		b.Id = primitive.NewObjectID().Hex()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	b.SetSlug()

	err := db.Insert(ctx, Collection, b)
	if db.IsDuplicateKey(err) {
		return errors.Errorf("a bootcamp named '%s' already exists", b.Name)
	}
	return err
}

// UpdateOne applies the given update to the bootcamp's document.
func UpdateOne(ctx context.Context, id string, update any) error {
	return db.UpdateIdContext(ctx, Collection, id, update)
}

// SetAverageCost writes the aggregated course cost onto the bootcamp.
// A nil cost unsets the field, for when the last course is removed.
func SetAverageCost(ctx context.Context, id string, cost *float64) error {
	if cost == nil {
		return UpdateOne(ctx, id, bson.M{"$unset": bson.M{AverageCostKey: 1}})
	}
	return UpdateOne(ctx, id, bson.M{"$set": bson.M{AverageCostKey: *cost}})
}

// SetAverageRating writes the aggregated review rating onto the bootcamp.
func SetAverageRating(ctx context.Context, id string, rating *float64) error {
	if rating == nil {
		return UpdateOne(ctx, id, bson.M{"$unset": bson.M{AverageRatingKey: 1}})
	}
	return UpdateOne(ctx, id, bson.M{"$set": bson.M{AverageRatingKey: *rating}})
}

// SetPhoto records the stored filename of the bootcamp's photo.
func SetPhoto(ctx context.Context, id, filename string) error {
	return UpdateOne(ctx, id, bson.M{"$set": bson.M{PhotoKey: filename}})
}

// RemoveOne deletes the bootcamp with the given ID.
func RemoveOne(ctx context.Context, id string) error {
	return db.Remove(ctx, Collection, bson.M{IdKey: id})
}

// EnsureIndexes creates the geospatial and slug indexes.
func EnsureIndexes(ctx context.Context) error {
	if err := db.EnsureIndex(ctx, Collection, mongo.IndexModel{
		Keys: bson.D{{Key: LocationKey, Value: "2dsphere"}},
	}); err != nil {
		return errors.Wrap(err, "creating location index")
	}

	return errors.Wrap(db.EnsureIndex(ctx, Collection, mongo.IndexModel{
		Keys:    bson.D{{Key: SlugKey, Value: 1}},
		Options: options.Index().SetUnique(true),
	}), "creating slug index")
}
