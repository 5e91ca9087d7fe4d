package model

import (
	"time"

	"github.com/campdir/campdir/model/user"
	"github.com/evergreen-ci/utility"
)

// APIUser is the API representation of an account. Password material
// never appears here.
type APIUser struct {
	Id           *string    `json:"id"`
	Name         *string    `json:"name"`
	EmailAddress *string    `json:"email"`
	Role         *string    `json:"role"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

func (a *APIUser) BuildFromService(u user.DBUser) {
	a.Id = utility.ToStringPtr(u.Id)
	a.Name = utility.ToStringPtr(u.Name)
	a.EmailAddress = utility.ToStringPtr(u.EmailAddress)
	a.Role = utility.ToStringPtr(u.Role)
	a.CreatedAt = utility.ToTimePtr(u.CreatedAt)
}

func (a *APIUser) ToService() user.DBUser {
	return user.DBUser{
		Name:         utility.FromStringPtr(a.Name),
		EmailAddress: utility.FromStringPtr(a.EmailAddress),
		Role:         utility.FromStringPtr(a.Role),
	}
}
