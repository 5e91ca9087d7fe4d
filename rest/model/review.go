package model

import (
	"time"

	"github.com/campdir/campdir/model/review"
	"github.com/evergreen-ci/utility"
)

// APIReview is the API representation of a bootcamp review.
type APIReview struct {
	Id         *string    `json:"id"`
	Title      *string    `json:"title"`
	Text       *string    `json:"text,omitempty"`
	Rating     int        `json:"rating"`
	BootcampId *string    `json:"bootcamp_id,omitempty"`
	OwnerId    *string    `json:"owner_id,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

func (a *APIReview) BuildFromService(r review.Review) {
	a.Id = utility.ToStringPtr(r.Id)
	a.Title = utility.ToStringPtr(r.Title)
	a.Text = utility.ToStringPtr(r.Text)
	a.Rating = r.Rating
	a.BootcampId = utility.ToStringPtr(r.BootcampId)
	a.OwnerId = utility.ToStringPtr(r.OwnerId)
	a.CreatedAt = utility.ToTimePtr(r.CreatedAt)
}

func (a *APIReview) ToService() review.Review {
	return review.Review{
		Title:  utility.FromStringPtr(a.Title),
		Text:   utility.FromStringPtr(a.Text),
		Rating: a.Rating,
	}
}
