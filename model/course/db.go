package course

import (
	"context"
	"math"
	"time"

	"github.com/campdir/campdir/db"
	"github.com/campdir/campdir/model/bootcamp"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Collection = "courses"

var (
	IdKey                   = bsonutil.MustHaveTag(Course{}, "Id")
	TitleKey                = bsonutil.MustHaveTag(Course{}, "Title")
	DescriptionKey          = bsonutil.MustHaveTag(Course{}, "Description")
	WeeksKey                = bsonutil.MustHaveTag(Course{}, "Weeks")
	TuitionKey              = bsonutil.MustHaveTag(Course{}, "Tuition")
	MinimumSkillKey         = bsonutil.MustHaveTag(Course{}, "MinimumSkill")
	ScholarshipAvailableKey = bsonutil.MustHaveTag(Course{}, "ScholarshipAvailable")
	BootcampIdKey           = bsonutil.MustHaveTag(Course{}, "BootcampId")
	OwnerIdKey              = bsonutil.MustHaveTag(Course{}, "OwnerId")
	CreatedAtKey            = bsonutil.MustHaveTag(Course{}, "CreatedAt")
)

// ById produces a query that returns the course with the given ID.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// ByBootcamp produces a query matching every course of a bootcamp.
func ByBootcamp(bootcampID string) db.Q {
	return db.Query(bson.M{BootcampIdKey: bootcampID})
}

// FindOne gets one Course for the given query.
func FindOne(ctx context.Context, query db.Q) (*Course, error) {
	c := &Course{}
	err := db.FindOneQ(ctx, Collection, query, c)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return c, err
}

// FindOneById gets a Course by ID.
func FindOneById(ctx context.Context, id string) (*Course, error) {
	return FindOne(ctx, ById(id))
}

// Find gets every Course matching the given query.
func Find(ctx context.Context, query db.Q) ([]Course, error) {
	courses := []Course{}
	err := db.FindAllQ(ctx, Collection, query, &courses)
	return courses, err
}

// Count returns the number of courses matching the given query.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// Insert writes a new course, assigning an ID and creation time if
// unset, and refreshes the parent bootcamp's average cost.
func (c *Course) Insert(ctx context.Context) error {
	if c.Id == "" {
		c.Id = primitive.NewObjectID().Hex()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	if err := db.Insert(ctx, Collection, c); err != nil {
		return err
	}

	return UpdateAverageCost(ctx, c.BootcampId)
}

// UpdateOne applies the given update to the course's document and
// refreshes the parent bootcamp's average cost.
func UpdateOne(ctx context.Context, id, bootcampID string, update any) error {
	if err := db.UpdateIdContext(ctx, Collection, id, update); err != nil {
		return err
	}
	return UpdateAverageCost(ctx, bootcampID)
}

// RemoveOne deletes the course with the given ID and refreshes the
// parent bootcamp's average cost.
func RemoveOne(ctx context.Context, id, bootcampID string) error {
	if err := db.Remove(ctx, Collection, bson.M{IdKey: id}); err != nil {
		return err
	}
	return UpdateAverageCost(ctx, bootcampID)
}

// RemoveByBootcamp deletes every course belonging to the bootcamp, for
// cascading a bootcamp delete.
func RemoveByBootcamp(ctx context.Context, bootcampID string) error {
	return db.RemoveAll(ctx, Collection, bson.M{BootcampIdKey: bootcampID})
}

// UpdateAverageCost recomputes the average tuition of the bootcamp's
// courses by aggregation and writes it back to the bootcamp, rounded
// up to the nearest ten. With no courses left, the field is unset.
func UpdateAverageCost(ctx context.Context, bootcampID string) error {
	pipeline := []bson.M{
		{"$match": bson.M{BootcampIdKey: bootcampID}},
		{"$group": bson.M{
			"_id":          "$" + BootcampIdKey,
			"averageCost": bson.M{"$avg": "$" + TuitionKey},
		}},
	}

	out := []struct {
		AverageCost float64 `bson:"averageCost"`
	}{}
	if err := db.Aggregate(ctx, Collection, pipeline, &out); err != nil {
		return errors.Wrap(err, "aggregating course costs")
	}

	if len(out) == 0 {
		return bootcamp.SetAverageCost(ctx, bootcampID, nil)
	}

	cost := math.Ceil(out[0].AverageCost/10) * 10
	return bootcamp.SetAverageCost(ctx, bootcampID, &cost)
}
