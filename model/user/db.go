package user

import (
	"context"
	"time"

	"github.com/campdir/campdir/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "users"

var (
	IdKey                 = bsonutil.MustHaveTag(DBUser{}, "Id")
	NameKey               = bsonutil.MustHaveTag(DBUser{}, "Name")
	EmailAddressKey       = bsonutil.MustHaveTag(DBUser{}, "EmailAddress")
	RoleKey               = bsonutil.MustHaveTag(DBUser{}, "Role")
	PasswordKey           = bsonutil.MustHaveTag(DBUser{}, "Password")
	ResetPasswordTokenKey = bsonutil.MustHaveTag(DBUser{}, "ResetPasswordToken")
	ResetPasswordUntilKey = bsonutil.MustHaveTag(DBUser{}, "ResetPasswordUntil")
	CreatedAtKey          = bsonutil.MustHaveTag(DBUser{}, "CreatedAt")
)

// ById produces a query that returns the user with the given ID.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// ByEmail produces a query that returns the user with the given email.
func ByEmail(email string) db.Q {
	return db.Query(bson.M{EmailAddressKey: email})
}

// ByResetToken matches a user holding an unexpired reset token. The
// token argument is cleartext; the stored form is its hash.
func ByResetToken(token string) db.Q {
	return db.Query(bson.M{
		ResetPasswordTokenKey: HashToken(token),
		ResetPasswordUntilKey: bson.M{"$gt": time.Now()},
	})
}

// FindOne gets one DBUser for the given query.
func FindOne(ctx context.Context, query db.Q) (*DBUser, error) {
	u := &DBUser{}
	err := db.FindOneQ(ctx, Collection, query, u)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return u, err
}

// FindOneById gets a DBUser by ID.
func FindOneById(ctx context.Context, id string) (*DBUser, error) {
	return FindOne(ctx, ById(id))
}

// Find gets every DBUser matching the given query.
func Find(ctx context.Context, query db.Q) ([]DBUser, error) {
	users := []DBUser{}
	err := db.FindAllQ(ctx, Collection, query, &users)
	return users, err
}

// Count returns the number of users matching the given query.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// Insert writes a new user, assigning an ID and creation time if unset.
func (u *DBUser) Insert(ctx context.Context) error {
	if u.Id == "" {
		u.Id = primitive.NewObjectID().Hex()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	err := db.Insert(ctx, Collection, u)
	if db.IsDuplicateKey(err) {
		return errors.Errorf("a user already exists with email '%s'", u.EmailAddress)
	}
	return err
}

// UpdateOne applies the given update to the user's document.
func UpdateOne(ctx context.Context, id string, update any) error {
	return db.UpdateIdContext(ctx, Collection, id, update)
}

// SetDetails updates the user's mutable profile fields.
func SetDetails(ctx context.Context, id, name, email string) error {
	return UpdateOne(ctx, id, bson.M{
		"$set": bson.M{
			NameKey:         name,
			EmailAddressKey: email,
		},
	})
}

// SetPasswordHash persists a new password hash, clearing any
// outstanding reset token.
func SetPasswordHash(ctx context.Context, id, hash string) error {
	return UpdateOne(ctx, id, bson.M{
		"$set": bson.M{PasswordKey: hash},
		"$unset": bson.M{
			ResetPasswordTokenKey: 1,
			ResetPasswordUntilKey: 1,
		},
	})
}

// RemoveOne deletes the user with the given ID.
func RemoveOne(ctx context.Context, id string) error {
	return db.Remove(ctx, Collection, bson.M{IdKey: id})
}

// EnsureIndexes creates the unique email index.
func EnsureIndexes(ctx context.Context) error {
	return db.EnsureIndex(ctx, Collection, mongo.IndexModel{
		Keys:    bson.D{{Key: EmailAddressKey, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}
