package data

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/model/user"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/campdir/campdir/rest/query"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// FindUsers returns the page of users selected by the translated query
// options.
func FindUsers(ctx context.Context, opts query.Options) (*restmodel.ListResponse, error) {
	users, err := user.Find(ctx, opts.Query())
	if err != nil {
		return nil, errors.Wrap(err, "finding users")
	}
	total, err := user.Count(ctx, opts.CountQuery())
	if err != nil {
		return nil, errors.Wrap(err, "counting users")
	}

	apiUsers := make([]restmodel.APIUser, 0, len(users))
	for _, u := range users {
		api := restmodel.APIUser{}
		api.BuildFromService(u)
		apiUsers = append(apiUsers, api)
	}

	return restmodel.NewListResponse(apiUsers, len(apiUsers), opts.Envelope(total)), nil
}

// FindUserById returns the user or a 404-shaped error.
func FindUserById(ctx context.Context, id string) (*user.DBUser, error) {
	u, err := user.FindOneById(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "finding user '%s'", id)
	}
	if u == nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("user '%s' not found", id),
		}
	}
	return u, nil
}

// CreateUser inserts an account with the given cleartext password.
func CreateUser(ctx context.Context, u *user.DBUser, password string) error {
	if u.Role == "" {
		u.Role = campdir.RoleUser
	}
	if !campdir.IsValidRole(u.Role) {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("'%s' is not a recognized role", u.Role),
		}
	}

	if err := u.SetPassword(password); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if err := u.Insert(ctx); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}
	return nil
}

// UpdateUser applies the writable fields of the request body to the
// stored account and returns the refreshed document.
func UpdateUser(ctx context.Context, id string, changes user.DBUser) (*user.DBUser, error) {
	if changes.Role != "" && !campdir.IsValidRole(changes.Role) {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("'%s' is not a recognized role", changes.Role),
		}
	}

	set := bson.M{
		user.NameKey:         changes.Name,
		user.EmailAddressKey: changes.EmailAddress,
	}
	if changes.Role != "" {
		set[user.RoleKey] = changes.Role
	}
	if err := user.UpdateOne(ctx, id, bson.M{"$set": set}); err != nil {
		return nil, errors.Wrapf(err, "updating user '%s'", id)
	}

	return FindUserById(ctx, id)
}

// DeleteUser removes the account.
func DeleteUser(ctx context.Context, id string) error {
	return errors.Wrapf(user.RemoveOne(ctx, id), "removing user '%s'", id)
}
