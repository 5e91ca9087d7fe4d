package bootcamp

import (
	"time"

	"github.com/gosimple/slug"
)

// Bootcamp is the database representation of a bootcamp listing. The
// location is stored as a GeoJSON point so the store can answer
// spherical-region queries against it.
type Bootcamp struct {
	Id            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Slug          string    `bson:"slug"`
	Description   string    `bson:"description"`
	Website       string    `bson:"website,omitempty"`
	Phone         string    `bson:"phone,omitempty"`
	Email         string    `bson:"email,omitempty"`
	Address       string    `bson:"address"`
	Location      GeoPoint  `bson:"location,omitempty"`
	Careers       []string  `bson:"careers"`
	AverageRating float64   `bson:"average_rating,omitempty"`
	AverageCost   float64   `bson:"average_cost,omitempty"`
	Photo         string    `bson:"photo,omitempty"`
	Housing       bool      `bson:"housing"`
	JobAssistance bool      `bson:"job_assistance"`
	JobGuarantee  bool      `bson:"job_guarantee"`
	AcceptGI      bool      `bson:"accept_gi"`
	OwnerId       string    `bson:"owner_id"`
	CreatedAt     time.Time `bson:"created_at"`
}

// GeoPoint is a GeoJSON point plus the address parts the geocoder
// resolved. Coordinates are ordered longitude, latitude.
type GeoPoint struct {
	Type             string    `bson:"type"`
	Coordinates      []float64 `bson:"coordinates"`
	FormattedAddress string    `bson:"formatted_address,omitempty"`
	Street           string    `bson:"street,omitempty"`
	City             string    `bson:"city,omitempty"`
	State            string    `bson:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
}

// SetSlug derives the URL slug from the bootcamp's name.
func (b *Bootcamp) SetSlug() {
	b.Slug = slug.Make(b.Name)
}
