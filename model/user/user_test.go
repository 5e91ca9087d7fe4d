package user

import (
	"testing"
	"time"

	"github.com/campdir/campdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanModify(t *testing.T) {
	owner := &DBUser{Id: "owner", Role: campdir.RolePublisher}
	admin := &DBUser{Id: "admin", Role: campdir.RoleAdmin}
	other := &DBUser{Id: "other", Role: campdir.RolePublisher}

	assert.True(t, owner.CanModify("owner"))
	assert.True(t, admin.CanModify("owner"))
	assert.False(t, other.CanModify("owner"))

	var nilUser *DBUser
	assert.False(t, nilUser.CanModify("owner"))
}

func TestPasswordHashing(t *testing.T) {
	u := &DBUser{}
	require.NoError(t, u.SetPassword("hunter22"))
	assert.NotEqual(t, "hunter22", u.Password)
	assert.True(t, u.CheckPassword("hunter22"))
	assert.False(t, u.CheckPassword("hunter23"))

	assert.Error(t, u.SetPassword("short"))
}

func TestResetToken(t *testing.T) {
	u := &DBUser{}
	token := u.CreateResetToken()
	require.NotEmpty(t, token)

	assert.NotEqual(t, token, u.ResetPasswordToken)
	assert.Equal(t, HashToken(token), u.ResetPasswordToken)
	assert.True(t, u.ResetPasswordUntil.After(time.Now()))
	assert.True(t, u.ResetPasswordUntil.Before(time.Now().Add(11*time.Minute)))
}

func TestRoles(t *testing.T) {
	assert.Equal(t, []string{campdir.RoleUser}, (&DBUser{}).Roles())
	assert.Equal(t, []string{campdir.RoleAdmin}, (&DBUser{Role: campdir.RoleAdmin}).Roles())
	assert.True(t, (&DBUser{Role: campdir.RoleAdmin}).IsAdmin())
	assert.False(t, (&DBUser{Role: campdir.RolePublisher}).IsAdmin())
}
