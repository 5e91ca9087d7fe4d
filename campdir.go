package campdir

import "slices"

const (
	// User roles. Publishers may own bootcamps and courses; plain
	// users may leave reviews; admins bypass ownership checks.
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"

	// EarthRadiusMiles converts a linear search distance into the
	// radians expected by a spherical-region predicate.
	EarthRadiusMiles = 3963.0

	// RestRoutePrefix is the path prefix under which the REST API is
	// mounted; routes are versioned underneath it.
	RestRoutePrefix = "api"
	APIVersion      = 2

	// ResetTokenLifetime bounds how long a password reset token stays
	// usable, in minutes.
	ResetTokenLifetimeMinutes = 10
)

var validRoles = []string{RoleUser, RolePublisher, RoleAdmin}

// IsValidRole reports whether role names one of the recognized user roles.
func IsValidRole(role string) bool {
	return slices.Contains(validRoles, role)
}

// SelfAssignableRoles are the roles a user may register with. Admin is
// excluded; admins are created by other admins through the users API.
func SelfAssignableRoles() []string {
	return []string{RoleUser, RolePublisher}
}
