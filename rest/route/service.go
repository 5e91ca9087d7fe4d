// Package route defines the REST API's endpoints and assembles them
// into an HTTP handler.
package route

import (
	"net/http"
	"time"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/auth"
	"github.com/campdir/campdir/thirdparty"
	"github.com/evergreen-ci/gimlet"
	"github.com/gorilla/mux"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// GetHandler assembles every route of the REST API onto a router,
// wired to the given environment's settings.
func GetHandler(env campdir.Environment) (http.Handler, error) {
	settings := env.Settings()

	manager, err := auth.NewUserManager(settings.Auth)
	if err != nil {
		return nil, errors.Wrap(err, "constructing user manager")
	}
	geocoder := thirdparty.NewGeocoder(settings.Geocoding.BaseURL, settings.Geocoding.APIKey)
	authRoutes := newAuthAPI(manager, settings.Auth)

	app := gimlet.NewApp()
	app.SetPrefix(campdir.RestRoutePrefix)
	app.AddMiddleware(gimlet.NewRecoveryLogger(grip.NewJournaler("campdir.rest")))
	app.AddMiddleware(gimlet.NewAppLogger())
	app.AddMiddleware(auth.NewUserMiddleware(manager, settings.Auth.Cookie()))

	requireAuth := gimlet.NewRequireAuthHandler()
	publisherOnly := NewRoleRequiredMiddleware(campdir.RolePublisher, campdir.RoleAdmin)
	reviewerOnly := NewRoleRequiredMiddleware(campdir.RoleUser, campdir.RoleAdmin)
	adminOnly := NewRoleRequiredMiddleware(campdir.RoleAdmin)

	version := campdir.APIVersion
	uploadPath := settings.FileStorage.UploadPath
	maxPhotoBytes := settings.FileStorage.MaxPhotoSize()

	// bootcamps
	app.AddRoute("/bootcamps").Version(version).Get().RouteHandler(makeFetchBootcamps())
	app.AddRoute("/bootcamps").Version(version).Post().Wrap(requireAuth).Wrap(publisherOnly).
		RouteHandler(makeCreateBootcamp(geocoder))
	app.AddRoute("/bootcamps/radius/{zipcode}/{distance}").Version(version).Get().
		RouteHandler(makeFetchBootcampsInRadius(geocoder))
	app.AddRoute("/bootcamps/{bootcamp_id}").Version(version).Get().RouteHandler(makeFetchBootcampById())
	app.AddRoute("/bootcamps/{bootcamp_id}").Version(version).Put().Wrap(requireAuth).Wrap(publisherOnly).
		RouteHandler(makeUpdateBootcamp(geocoder))
	app.AddRoute("/bootcamps/{bootcamp_id}").Version(version).Delete().Wrap(requireAuth).Wrap(publisherOnly).
		RouteHandler(makeDeleteBootcamp())
	app.AddRoute("/bootcamps/{bootcamp_id}/photo").Version(version).Put().Wrap(requireAuth).Wrap(publisherOnly).
		RouteHandler(makeUploadBootcampPhoto(uploadPath, maxPhotoBytes))

	// courses
	app.AddRoute("/bootcamps/{bootcamp_id}/courses").Version(version).Get().RouteHandler(makeFetchCourses())
	app.AddRoute("/bootcamps/{bootcamp_id}/courses").Version(version).Post().Wrap(requireAuth).Wrap(publisherOnly).
		RouteHandler(makeCreateCourse())
	app.AddRoute("/courses").Version(version).Get().RouteHandler(makeFetchCourses())
	app.AddRoute("/courses/{course_id}").Version(version).Get().RouteHandler(makeFetchCourseById())
	app.AddRoute("/courses/{course_id}").Version(version).Put().Wrap(requireAuth).Wrap(publisherOnly).
		RouteHandler(makeUpdateCourse())
	app.AddRoute("/courses/{course_id}").Version(version).Delete().Wrap(requireAuth).Wrap(publisherOnly).
		RouteHandler(makeDeleteCourse())

	// reviews
	app.AddRoute("/bootcamps/{bootcamp_id}/reviews").Version(version).Get().RouteHandler(makeFetchReviews())
	app.AddRoute("/bootcamps/{bootcamp_id}/reviews").Version(version).Post().Wrap(requireAuth).Wrap(reviewerOnly).
		RouteHandler(makeCreateReview())
	app.AddRoute("/reviews").Version(version).Get().RouteHandler(makeFetchReviews())
	app.AddRoute("/reviews/{review_id}").Version(version).Get().RouteHandler(makeFetchReviewById())
	app.AddRoute("/reviews/{review_id}").Version(version).Put().Wrap(requireAuth).Wrap(reviewerOnly).
		RouteHandler(makeUpdateReview())
	app.AddRoute("/reviews/{review_id}").Version(version).Delete().Wrap(requireAuth).Wrap(reviewerOnly).
		RouteHandler(makeDeleteReview())

	// users (admin only)
	app.AddRoute("/users").Version(version).Get().Wrap(requireAuth).Wrap(adminOnly).
		RouteHandler(makeFetchUsers())
	app.AddRoute("/users").Version(version).Post().Wrap(requireAuth).Wrap(adminOnly).
		RouteHandler(makeCreateUser())
	app.AddRoute("/users/{user_id}").Version(version).Get().Wrap(requireAuth).Wrap(adminOnly).
		RouteHandler(makeFetchUserById())
	app.AddRoute("/users/{user_id}").Version(version).Put().Wrap(requireAuth).Wrap(adminOnly).
		RouteHandler(makeUpdateUser())
	app.AddRoute("/users/{user_id}").Version(version).Delete().Wrap(requireAuth).Wrap(adminOnly).
		RouteHandler(makeDeleteUser())

	// auth
	app.AddRoute("/auth/register").Version(version).Post().Handler(authRoutes.register)
	app.AddRoute("/auth/login").Version(version).Post().Handler(authRoutes.login)
	app.AddRoute("/auth/logout").Version(version).Get().Handler(authRoutes.logout)
	app.AddRoute("/auth/me").Version(version).Get().Wrap(requireAuth).RouteHandler(makeFetchCurrentUser())
	app.AddRoute("/auth/updatedetails").Version(version).Put().Wrap(requireAuth).
		RouteHandler(makeUpdateUserDetails())
	app.AddRoute("/auth/updatepassword").Version(version).Put().Wrap(requireAuth).
		Handler(authRoutes.updatePassword)
	app.AddRoute("/auth/forgotpassword").Version(version).Post().RouteHandler(makeForgotPassword())
	app.AddRoute("/auth/resetpassword/{token}").Version(version).Put().Handler(authRoutes.resetPassword)

	return gimlet.AssembleHandler(mux.NewRouter(), app)
}

// GetServer produces the HTTP server instance for the assembled handler.
func GetServer(addr string, n http.Handler) *http.Server {
	grip.Notice(message.Fields{
		"action":  "starting service",
		"service": addr,
		"process": grip.Name(),
	})

	return &http.Server{
		Addr:              addr,
		Handler:           n,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      time.Minute,
	}
}
