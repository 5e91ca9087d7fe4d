package data

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campdir/campdir/model/course"
	restmodel "github.com/campdir/campdir/rest/model"
	"github.com/campdir/campdir/rest/query"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// FindCourses returns the page of courses selected by the translated
// query options. A non-empty bootcampID narrows the predicate to that
// bootcamp's courses, for the nested route form.
func FindCourses(ctx context.Context, opts query.Options, bootcampID string) (*restmodel.ListResponse, error) {
	if bootcampID != "" {
		opts.Filter[course.BootcampIdKey] = bootcampID
	}

	courses, err := course.Find(ctx, opts.Query())
	if err != nil {
		return nil, errors.Wrap(err, "finding courses")
	}
	total, err := course.Count(ctx, opts.CountQuery())
	if err != nil {
		return nil, errors.Wrap(err, "counting courses")
	}

	apiCourses := make([]restmodel.APICourse, 0, len(courses))
	for _, c := range courses {
		api := restmodel.APICourse{}
		api.BuildFromService(c)
		apiCourses = append(apiCourses, api)
	}

	return restmodel.NewListResponse(apiCourses, len(apiCourses), opts.Envelope(total)), nil
}

// FindCourseById returns the course or a 404-shaped error.
func FindCourseById(ctx context.Context, id string) (*course.Course, error) {
	c, err := course.FindOneById(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "finding course '%s'", id)
	}
	if c == nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("course '%s' not found", id),
		}
	}
	return c, nil
}

// CreateCourse inserts a course under its parent bootcamp. Ownership
// follows the bootcamp's owner, which the route has already checked.
func CreateCourse(ctx context.Context, c *course.Course) error {
	if !course.ValidSkill(c.MinimumSkill) {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("'%s' is not a recognized minimum skill level", c.MinimumSkill),
		}
	}
	return errors.Wrap(c.Insert(ctx), "inserting course")
}

// UpdateCourse applies the writable fields of the request body to the
// stored course and returns the refreshed document.
func UpdateCourse(ctx context.Context, existing *course.Course, changes course.Course) (*course.Course, error) {
	if changes.MinimumSkill != "" && !course.ValidSkill(changes.MinimumSkill) {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("'%s' is not a recognized minimum skill level", changes.MinimumSkill),
		}
	}

	update := bson.M{"$set": bson.M{
		course.TitleKey:                changes.Title,
		course.DescriptionKey:          changes.Description,
		course.WeeksKey:                changes.Weeks,
		course.TuitionKey:              changes.Tuition,
		course.MinimumSkillKey:         changes.MinimumSkill,
		course.ScholarshipAvailableKey: changes.ScholarshipAvailable,
	}}
	if err := course.UpdateOne(ctx, existing.Id, existing.BootcampId, update); err != nil {
		return nil, errors.Wrapf(err, "updating course '%s'", existing.Id)
	}

	return FindCourseById(ctx, existing.Id)
}

// DeleteCourse removes the course and refreshes the parent bootcamp's
// average cost.
func DeleteCourse(ctx context.Context, c *course.Course) error {
	return errors.Wrapf(course.RemoveOne(ctx, c.Id, c.BootcampId), "removing course '%s'", c.Id)
}
