package campdir

import (
	"os"
	"time"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Settings contains all configuration for the service. It is read once
// from a yaml file at startup and passed through the Environment; no
// component reads configuration from process globals.
type Settings struct {
	HTTPListenAddr string          `yaml:"http_listen_addr"`
	Database       DBSettings      `yaml:"database"`
	Auth           AuthConfig      `yaml:"auth"`
	Geocoding      GeocodingConfig `yaml:"geocoding"`
	FileStorage    FileStorage     `yaml:"file_storage"`
	LogLevel       string          `yaml:"log_level"`
}

// DBSettings configures the connection to the document database.
type DBSettings struct {
	URL string `yaml:"url"`
	DB  string `yaml:"db"`
}

// AuthConfig configures token issuance for the auth routes.
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	CookieName      string `yaml:"cookie_name"`
}

// TokenTTL returns the configured token lifetime, defaulting to 30 days.
func (c AuthConfig) TokenTTL() time.Duration {
	if c.TokenTTLMinutes <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Cookie returns the cookie name tokens are also accepted from.
func (c AuthConfig) Cookie() string {
	if c.CookieName == "" {
		return "token"
	}
	return c.CookieName
}

// GeocodingConfig points at the external geocoding provider.
type GeocodingConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// FileStorage configures where uploaded bootcamp photos land and how
// large they may be.
type FileStorage struct {
	UploadPath    string `yaml:"upload_path"`
	MaxPhotoBytes int64  `yaml:"max_photo_bytes"`
}

// MaxPhotoSize returns the configured upload ceiling, defaulting to 1MB.
func (f FileStorage) MaxPhotoSize() int64 {
	if f.MaxPhotoBytes <= 0 {
		return 1 << 20
	}
	return f.MaxPhotoBytes
}

// NewSettings builds a Settings object from a yaml file on disk.
func NewSettings(filename string) (*Settings, error) {
	configData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings file '%s'", filename)
	}

	settings := &Settings{}
	if err = yaml.Unmarshal(configData, settings); err != nil {
		return nil, errors.Wrapf(err, "parsing settings file '%s'", filename)
	}

	return settings, nil
}

// Validate checks the settings for the fields the service cannot run
// without, filling in defaults where a zero value has a sane fallback.
func (s *Settings) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(s.Database.URL == "", "database url must not be empty")
	catcher.NewWhen(s.Database.DB == "", "database name must not be empty")
	catcher.NewWhen(s.Auth.JWTSecret == "", "auth jwt secret must not be empty")
	if catcher.HasErrors() {
		return errors.Wrap(catcher.Resolve(), "invalid settings")
	}

	if s.HTTPListenAddr == "" {
		s.HTTPListenAddr = ":3000"
	}
	if s.FileStorage.UploadPath == "" {
		s.FileStorage.UploadPath = "public/uploads"
	}

	return nil
}
