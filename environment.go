package campdir

import (
	"context"
	"sync"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	globalEnv     Environment
	globalEnvLock sync.RWMutex
)

// GetEnvironment returns the global application level environment. It
// is thread safe, but must be configured with SetEnvironment before
// use. Construct it once per process and pass it through the
// application; the global accessor exists for the model layer, which
// uses it to reach the database.
func GetEnvironment() Environment {
	globalEnvLock.RLock()
	defer globalEnvLock.RUnlock()

	return globalEnv
}

func SetEnvironment(env Environment) {
	globalEnvLock.Lock()
	defer globalEnvLock.Unlock()

	globalEnv = env
}

// Environment provides application-level services: the settings object
// and handles on the document database.
type Environment interface {
	// Settings returns the application settings. The settings object
	// is read-only after startup.
	Settings() *Settings

	Client() *mongo.Client
	DB() *mongo.Database

	// Context returns a context and cancel function rooted in the
	// environment's lifetime, for operations without a request scope.
	Context() (context.Context, context.CancelFunc)

	// Close terminates the database connection.
	Close(context.Context) error
}

// NewEnvironment constructs an Environment connected to the configured
// database, verifying the connection before returning.
func NewEnvironment(ctx context.Context, settings *Settings) (Environment, error) {
	if settings == nil {
		return nil, errors.New("cannot construct environment without settings")
	}
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating settings")
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(settings.Database.URL).
		SetConnectTimeout(5*time.Second))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging database")
	}

	grip.Info(message.Fields{
		"message": "connected to database",
		"db":      settings.Database.DB,
	})

	return &envState{
		settings: settings,
		client:   client,
		ctx:      ctx,
	}, nil
}

type envState struct {
	settings *Settings
	client   *mongo.Client
	ctx      context.Context
}

func (e *envState) Settings() *Settings { return e.settings }

func (e *envState) Client() *mongo.Client { return e.client }

func (e *envState) DB() *mongo.Database {
	return e.client.Database(e.settings.Database.DB)
}

func (e *envState) Context() (context.Context, context.CancelFunc) {
	return context.WithCancel(e.ctx)
}

func (e *envState) Close(ctx context.Context) error {
	return errors.Wrap(e.client.Disconnect(ctx), "disconnecting from database")
}
