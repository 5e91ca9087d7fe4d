// Package testutil provides settings and environment fixtures for
// package tests.
package testutil

import (
	"context"

	"github.com/campdir/campdir"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestSettings returns a settings object suitable for tests that need
// configuration but no live services.
func TestSettings() *campdir.Settings {
	return &campdir.Settings{
		HTTPListenAddr: ":3999",
		Database: campdir.DBSettings{
			URL: "mongodb://localhost:27017",
			DB:  "campdir_test",
		},
		Auth: campdir.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 30,
		},
		Geocoding: campdir.GeocodingConfig{
			BaseURL: "http://localhost:0",
			APIKey:  "test-key",
		},
	}
}

// NewEnvironment returns an environment carrying the given settings
// with no live database connection, for tests exercising code that
// only reads configuration.
func NewEnvironment(settings *campdir.Settings) campdir.Environment {
	return &testEnv{settings: settings}
}

type testEnv struct {
	settings *campdir.Settings
}

func (e *testEnv) Settings() *campdir.Settings { return e.settings }
func (e *testEnv) Client() *mongo.Client       { return nil }
func (e *testEnv) DB() *mongo.Database         { return nil }

func (e *testEnv) Context() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

func (e *testEnv) Close(context.Context) error { return nil }
