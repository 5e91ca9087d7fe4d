package user

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/campdir/campdir"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// DBUser is the database representation of an account. The stored
// password is always a bcrypt hash; reset tokens are stored hashed so
// a leaked document cannot be replayed.
type DBUser struct {
	Id                 string    `bson:"_id"`
	Name               string    `bson:"name"`
	EmailAddress       string    `bson:"email"`
	Role               string    `bson:"role"`
	Password           string    `bson:"password"`
	ResetPasswordToken string    `bson:"reset_password_token,omitempty"`
	ResetPasswordUntil time.Time `bson:"reset_password_until,omitempty"`
	CreatedAt          time.Time `bson:"created_at"`
}

// gimlet.User implementation. The username is the document ID.

func (u *DBUser) Username() string       { return u.Id }
func (u *DBUser) DisplayName() string    { return u.Name }
func (u *DBUser) Email() string          { return u.EmailAddress }
func (u *DBUser) GetAPIKey() string      { return "" }
func (u *DBUser) GetAccessToken() string { return "" }
func (u *DBUser) GetRefreshToken() string {
	return ""
}
func (u *DBUser) IsNil() bool { return u == nil }

func (u *DBUser) Roles() []string {
	if u.Role == "" {
		return []string{campdir.RoleUser}
	}
	return []string{u.Role}
}

func (u *DBUser) HasPermission(_ gimlet.PermissionOpts) bool {
	return u.Role == campdir.RoleAdmin
}

// IsAdmin reports whether the user holds the admin role.
func (u *DBUser) IsAdmin() bool {
	return u.Role == campdir.RoleAdmin
}

// CanModify is the ownership gate applied by every mutating route: the
// requester must own the resource or be an admin.
func (u *DBUser) CanModify(ownerID string) bool {
	if u == nil {
		return false
	}
	return u.Id == ownerID || u.IsAdmin()
}

// SetPassword replaces the user's password hash in memory. Persist
// with UpsertPassword or an insert.
func (u *DBUser) SetPassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	u.Password = string(hash)

	return nil
}

// CheckPassword compares a candidate password against the stored hash.
func (u *DBUser) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// CreateResetToken generates a password reset token, storing its hash
// and expiry on the user and returning the cleartext token for
// delivery. The token expires after a fixed number of minutes.
func (u *DBUser) CreateResetToken() string {
	token := utility.RandomString()
	u.ResetPasswordToken = HashToken(token)
	u.ResetPasswordUntil = time.Now().Add(campdir.ResetTokenLifetimeMinutes * time.Minute)
	return token
}

// HashToken maps a cleartext reset token onto its stored form.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
