package model

import (
	"time"

	"github.com/campdir/campdir/model/course"
	"github.com/evergreen-ci/utility"
)

// APICourse is the API representation of a course.
type APICourse struct {
	Id                   *string    `json:"id"`
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Weeks                int        `json:"weeks"`
	Tuition              float64    `json:"tuition"`
	MinimumSkill         *string    `json:"minimum_skill"`
	ScholarshipAvailable bool       `json:"scholarship_available"`
	BootcampId           *string    `json:"bootcamp_id,omitempty"`
	OwnerId              *string    `json:"owner_id,omitempty"`
	CreatedAt            *time.Time `json:"created_at,omitempty"`
}

func (a *APICourse) BuildFromService(c course.Course) {
	a.Id = utility.ToStringPtr(c.Id)
	a.Title = utility.ToStringPtr(c.Title)
	a.Description = utility.ToStringPtr(c.Description)
	a.Weeks = c.Weeks
	a.Tuition = c.Tuition
	a.MinimumSkill = utility.ToStringPtr(c.MinimumSkill)
	a.ScholarshipAvailable = c.ScholarshipAvailable
	a.BootcampId = utility.ToStringPtr(c.BootcampId)
	a.OwnerId = utility.ToStringPtr(c.OwnerId)
	a.CreatedAt = utility.ToTimePtr(c.CreatedAt)
}

func (a *APICourse) ToService() course.Course {
	return course.Course{
		Title:                utility.FromStringPtr(a.Title),
		Description:          utility.FromStringPtr(a.Description),
		Weeks:                a.Weeks,
		Tuition:              a.Tuition,
		MinimumSkill:         utility.FromStringPtr(a.MinimumSkill),
		ScholarshipAvailable: a.ScholarshipAvailable,
	}
}
