package review

import (
	"time"

	"github.com/pkg/errors"
)

// Review is the database representation of a user's review of a
// bootcamp. A user may review a given bootcamp at most once, enforced
// by a unique compound index.
type Review struct {
	Id         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Text       string    `bson:"text"`
	Rating     int       `bson:"rating"`
	BootcampId string    `bson:"bootcamp_id"`
	OwnerId    string    `bson:"owner_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 10
)

// Validate checks the review's user-supplied fields.
func (r *Review) Validate() error {
	if r.Title == "" {
		return errors.New("review title must not be empty")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return errors.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}
