// Package model defines the API-facing representations of the service's
// documents and the conversions between them and their database
// counterparts.
package model

import (
	"time"

	"github.com/campdir/campdir/model/bootcamp"
	"github.com/evergreen-ci/utility"
)

// APIBootcamp is the API representation of a bootcamp listing.
type APIBootcamp struct {
	Id            *string      `json:"id"`
	Name          *string      `json:"name"`
	Slug          *string      `json:"slug,omitempty"`
	Description   *string      `json:"description"`
	Website       *string      `json:"website,omitempty"`
	Phone         *string      `json:"phone,omitempty"`
	Email         *string      `json:"email,omitempty"`
	Address       *string      `json:"address,omitempty"`
	Location      *APIGeoPoint `json:"location,omitempty"`
	Careers       []string     `json:"careers"`
	AverageRating float64      `json:"average_rating,omitempty"`
	AverageCost   float64      `json:"average_cost,omitempty"`
	Photo         *string      `json:"photo,omitempty"`
	Housing       bool         `json:"housing"`
	JobAssistance bool         `json:"job_assistance"`
	JobGuarantee  bool         `json:"job_guarantee"`
	AcceptGI      bool         `json:"accept_gi"`
	OwnerId       *string      `json:"owner_id,omitempty"`
	CreatedAt     *time.Time   `json:"created_at,omitempty"`
}

// APIGeoPoint is the API representation of a geocoded location.
type APIGeoPoint struct {
	Type             *string   `json:"type"`
	Coordinates      []float64 `json:"coordinates"`
	FormattedAddress *string   `json:"formatted_address,omitempty"`
	Street           *string   `json:"street,omitempty"`
	City             *string   `json:"city,omitempty"`
	State            *string   `json:"state,omitempty"`
	Zipcode          *string   `json:"zipcode,omitempty"`
	Country          *string   `json:"country,omitempty"`
}

// BuildFromService converts a database bootcamp into its API
// representation.
func (a *APIBootcamp) BuildFromService(b bootcamp.Bootcamp) {
	a.Id = utility.ToStringPtr(b.Id)
	a.Name = utility.ToStringPtr(b.Name)
	a.Slug = utility.ToStringPtr(b.Slug)
	a.Description = utility.ToStringPtr(b.Description)
	a.Website = utility.ToStringPtr(b.Website)
	a.Phone = utility.ToStringPtr(b.Phone)
	a.Email = utility.ToStringPtr(b.Email)
	a.Address = utility.ToStringPtr(b.Address)
	a.Careers = b.Careers
	a.AverageRating = b.AverageRating
	a.AverageCost = b.AverageCost
	a.Photo = utility.ToStringPtr(b.Photo)
	a.Housing = b.Housing
	a.JobAssistance = b.JobAssistance
	a.JobGuarantee = b.JobGuarantee
	a.AcceptGI = b.AcceptGI
	a.OwnerId = utility.ToStringPtr(b.OwnerId)
	a.CreatedAt = utility.ToTimePtr(b.CreatedAt)

	if b.Location.Type != "" {
		loc := &APIGeoPoint{
			Type:             utility.ToStringPtr(b.Location.Type),
			Coordinates:      b.Location.Coordinates,
			FormattedAddress: utility.ToStringPtr(b.Location.FormattedAddress),
			Street:           utility.ToStringPtr(b.Location.Street),
			City:             utility.ToStringPtr(b.Location.City),
			State:            utility.ToStringPtr(b.Location.State),
			Zipcode:          utility.ToStringPtr(b.Location.Zipcode),
			Country:          utility.ToStringPtr(b.Location.Country),
		}
		a.Location = loc
	}
}

// ToService converts the writable API fields back into a database
// bootcamp. Server-managed fields (id, slug, location, averages, photo,
// owner, timestamps) are left for the data layer to fill.
func (a *APIBootcamp) ToService() bootcamp.Bootcamp {
	return bootcamp.Bootcamp{
		Name:          utility.FromStringPtr(a.Name),
		Description:   utility.FromStringPtr(a.Description),
		Website:       utility.FromStringPtr(a.Website),
		Phone:         utility.FromStringPtr(a.Phone),
		Email:         utility.FromStringPtr(a.Email),
		Address:       utility.FromStringPtr(a.Address),
		Careers:       a.Careers,
		Housing:       a.Housing,
		JobAssistance: a.JobAssistance,
		JobGuarantee:  a.JobGuarantee,
		AcceptGI:      a.AcceptGI,
	}
}
