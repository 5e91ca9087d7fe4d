package campdir_test

import (
	"testing"
	"time"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsValidate(t *testing.T) {
	t.Run("FillsDefaults", func(t *testing.T) {
		s := testutil.TestSettings()
		s.HTTPListenAddr = ""
		require.NoError(t, s.Validate())
		assert.Equal(t, ":3000", s.HTTPListenAddr)
		assert.Equal(t, "public/uploads", s.FileStorage.UploadPath)
	})

	t.Run("RequiresDatabase", func(t *testing.T) {
		s := testutil.TestSettings()
		s.Database.URL = ""
		assert.Error(t, s.Validate())
	})

	t.Run("RequiresSecret", func(t *testing.T) {
		s := testutil.TestSettings()
		s.Auth.JWTSecret = ""
		assert.Error(t, s.Validate())
	})
}

func TestAuthConfigDefaults(t *testing.T) {
	c := campdir.AuthConfig{}
	assert.Equal(t, 30*24*time.Hour, c.TokenTTL())
	assert.Equal(t, "token", c.Cookie())

	c = campdir.AuthConfig{TokenTTLMinutes: 90, CookieName: "session"}
	assert.Equal(t, 90*time.Minute, c.TokenTTL())
	assert.Equal(t, "session", c.Cookie())
}

func TestFileStorageDefaults(t *testing.T) {
	f := campdir.FileStorage{}
	assert.EqualValues(t, 1<<20, f.MaxPhotoSize())

	f.MaxPhotoBytes = 4096
	assert.EqualValues(t, 4096, f.MaxPhotoSize())
}

func TestRoles(t *testing.T) {
	assert.True(t, campdir.IsValidRole(campdir.RoleUser))
	assert.True(t, campdir.IsValidRole(campdir.RolePublisher))
	assert.True(t, campdir.IsValidRole(campdir.RoleAdmin))
	assert.False(t, campdir.IsValidRole("superuser"))

	assert.NotContains(t, campdir.SelfAssignableRoles(), campdir.RoleAdmin)
}
