package review

import (
	"context"
	"time"

	"github.com/campdir/campdir/db"
	"github.com/campdir/campdir/model/bootcamp"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "reviews"

var (
	IdKey         = bsonutil.MustHaveTag(Review{}, "Id")
	TitleKey      = bsonutil.MustHaveTag(Review{}, "Title")
	TextKey       = bsonutil.MustHaveTag(Review{}, "Text")
	RatingKey     = bsonutil.MustHaveTag(Review{}, "Rating")
	BootcampIdKey = bsonutil.MustHaveTag(Review{}, "BootcampId")
	OwnerIdKey    = bsonutil.MustHaveTag(Review{}, "OwnerId")
	CreatedAtKey  = bsonutil.MustHaveTag(Review{}, "CreatedAt")
)

// ById produces a query that returns the review with the given ID.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// ByBootcamp produces a query matching every review of a bootcamp.
func ByBootcamp(bootcampID string) db.Q {
	return db.Query(bson.M{BootcampIdKey: bootcampID})
}

// FindOne gets one Review for the given query.
func FindOne(ctx context.Context, query db.Q) (*Review, error) {
	r := &Review{}
	err := db.FindOneQ(ctx, Collection, query, r)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return r, err
}

// FindOneById gets a Review by ID.
func FindOneById(ctx context.Context, id string) (*Review, error) {
	return FindOne(ctx, ById(id))
}

// Find gets every Review matching the given query.
func Find(ctx context.Context, query db.Q) ([]Review, error) {
	reviews := []Review{}
	err := db.FindAllQ(ctx, Collection, query, &reviews)
	return reviews, err
}

// Count returns the number of reviews matching the given query.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// Insert writes a new review, assigning an ID and creation time if
// unset, and refreshes the bootcamp's average rating. A duplicate-key
// failure means the user already reviewed this bootcamp.
func (r *Review) Insert(ctx context.Context) error {
	if r.Id == "" {
		r.Id = primitive.NewObjectID().Hex()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	if err := db.Insert(ctx, Collection, r); err != nil {
		if db.IsDuplicateKey(err) {
			return errors.New("user has already reviewed this bootcamp")
		}
		return err
	}

	return UpdateAverageRating(ctx, r.BootcampId)
}

// UpdateOne applies the given update to the review's document and
// refreshes the bootcamp's average rating.
func UpdateOne(ctx context.Context, id, bootcampID string, update any) error {
	if err := db.UpdateIdContext(ctx, Collection, id, update); err != nil {
		return err
	}
	return UpdateAverageRating(ctx, bootcampID)
}

// RemoveOne deletes the review with the given ID and refreshes the
// bootcamp's average rating.
func RemoveOne(ctx context.Context, id, bootcampID string) error {
	if err := db.Remove(ctx, Collection, bson.M{IdKey: id}); err != nil {
		return err
	}
	return UpdateAverageRating(ctx, bootcampID)
}

// RemoveByBootcamp deletes every review of the bootcamp, for cascading
// a bootcamp delete.
func RemoveByBootcamp(ctx context.Context, bootcampID string) error {
	return db.RemoveAll(ctx, Collection, bson.M{BootcampIdKey: bootcampID})
}

// UpdateAverageRating recomputes the bootcamp's average review rating
// by aggregation and writes it back. With no reviews left, the field
// is unset.
func UpdateAverageRating(ctx context.Context, bootcampID string) error {
	pipeline := []bson.M{
		{"$match": bson.M{BootcampIdKey: bootcampID}},
		{"$group": bson.M{
			"_id":           "$" + BootcampIdKey,
			"averageRating": bson.M{"$avg": "$" + RatingKey},
		}},
	}

	out := []struct {
		AverageRating float64 `bson:"averageRating"`
	}{}
	if err := db.Aggregate(ctx, Collection, pipeline, &out); err != nil {
		return errors.Wrap(err, "aggregating review ratings")
	}

	if len(out) == 0 {
		return bootcamp.SetAverageRating(ctx, bootcampID, nil)
	}

	return bootcamp.SetAverageRating(ctx, bootcampID, &out[0].AverageRating)
}

// EnsureIndexes creates the index enforcing one review per user per
// bootcamp.
func EnsureIndexes(ctx context.Context) error {
	return db.EnsureIndex(ctx, Collection, mongo.IndexModel{
		Keys: bson.D{
			{Key: BootcampIdKey, Value: 1},
			{Key: OwnerIdKey, Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
}
