package db

import (
	"context"

	"github.com/campdir/campdir"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeInfo describes the outcome of an update or upsert.
type ChangeInfo struct {
	Updated    int
	UpsertedId any
}

func collection(name string) *mongo.Collection {
	return campdir.GetEnvironment().DB().Collection(name)
}

// Insert inserts the specified item into the specified collection.
func Insert(ctx context.Context, coll string, item any) error {
	_, err := collection(coll).InsertOne(ctx, item)
	return errors.Wrap(err, "inserting document")
}

// InsertMany inserts all of the specified items into the specified collection.
func InsertMany(ctx context.Context, coll string, items ...any) error {
	if len(items) == 0 {
		return nil
	}

	_, err := collection(coll).InsertMany(ctx, items)
	return errors.Wrap(err, "inserting documents")
}

// FindOneQ runs a Q query against the given collection, applying the
// result to "out". Only reads one document from the DB.
func FindOneQ(ctx context.Context, coll string, q Q, out any) error {
	opts := options.FindOne()
	if q.projection != nil {
		opts = opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts = opts.SetSort(q.sortSpec())
	}
	if q.skip > 0 {
		opts = opts.SetSkip(int64(q.skip))
	}

	err := collection(coll).FindOne(ctx, q.filterOrEmpty(), opts).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

// FindAllQ runs a Q query against the given collection, applying the
// results to "out", which must be a pointer to a slice.
func FindAllQ(ctx context.Context, coll string, q Q, out any) error {
	opts := options.Find()
	if q.projection != nil {
		opts = opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts = opts.SetSort(q.sortSpec())
	}
	if q.skip > 0 {
		opts = opts.SetSkip(int64(q.skip))
	}
	if q.limit > 0 {
		opts = opts.SetLimit(int64(q.limit))
	}

	cursor, err := collection(coll).Find(ctx, q.filterOrEmpty(), opts)
	if err != nil {
		return errors.Wrap(err, "finding documents")
	}

	return errors.Wrap(cursor.All(ctx, out), "decoding documents")
}

// Count runs a count command with the specified query against the collection.
func Count(ctx context.Context, coll string, query any) (int, error) {
	if query == nil {
		query = bson.M{}
	}
	res, err := collection(coll).CountDocuments(ctx, query)
	return int(res), errors.WithStack(err)
}

// CountQ runs a Q count query against the given collection. The count
// ignores the query's projection, sort and skip/limit window so that
// it reflects the full matching set.
func CountQ(ctx context.Context, coll string, q Q) (int, error) {
	return Count(ctx, coll, q.filterOrEmpty())
}

// UpdateIdContext updates one _id-matching document in the collection.
func UpdateIdContext(ctx context.Context, coll string, id, update any) error {
	res, err := collection(coll).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
	)
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateContext updates one matching document in the collection.
func UpdateContext(ctx context.Context, coll string, query, update any) error {
	res, err := collection(coll).UpdateOne(ctx, query, update)
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateAllContext updates all matching documents in the collection.
func UpdateAllContext(ctx context.Context, coll string, query, update any) (*ChangeInfo, error) {
	res, err := collection(coll).UpdateMany(ctx, query, update)
	if err != nil {
		return nil, errors.Wrap(err, "updating documents")
	}

	return &ChangeInfo{Updated: int(res.ModifiedCount)}, nil
}

// Upsert runs the specified update against the collection as an upsert
// operation, returning the upserted ID if one was created.
func Upsert(ctx context.Context, coll string, query, update any) (*ChangeInfo, error) {
	res, err := collection(coll).UpdateOne(ctx,
		query,
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "upserting document")
	}

	return &ChangeInfo{
		Updated:    int(res.UpsertedCount) + int(res.ModifiedCount),
		UpsertedId: res.UpsertedID,
	}, nil
}

// Remove removes one item matching the query from the specified collection.
func Remove(ctx context.Context, coll string, query any) error {
	_, err := collection(coll).DeleteOne(ctx, query)
	return errors.Wrap(err, "deleting document")
}

// RemoveAll removes all items matching the query from the specified collection.
func RemoveAll(ctx context.Context, coll string, query any) error {
	_, err := collection(coll).DeleteMany(ctx, query)
	return errors.Wrap(err, "deleting documents")
}

// Aggregate runs an aggregation pipeline on a collection and
// unmarshals the results to the given "out" interface (usually a
// pointer to an array of structs/bson.M).
func Aggregate(ctx context.Context, coll string, pipeline, out any) error {
	cursor, err := collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return errors.Wrap(err, "running aggregation")
	}

	return errors.Wrap(cursor.All(ctx, out), "decoding aggregation results")
}

// EnsureIndex takes in a collection and ensures that the index is
// created if it does not already exist.
func EnsureIndex(ctx context.Context, coll string, index mongo.IndexModel) error {
	_, err := collection(coll).Indexes().CreateOne(ctx, index)
	return errors.WithStack(err)
}

// ClearCollections clears all documents from all the specified
// collections, returning an error immediately if clearing any one of
// them fails. For use in tests.
func ClearCollections(ctx context.Context, collections ...string) error {
	for _, coll := range collections {
		if _, err := collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			return errors.Wrapf(err, "clearing collection '%s'", coll)
		}
	}
	return nil
}
