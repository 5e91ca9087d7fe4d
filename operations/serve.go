package operations

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/campdir/campdir"
	"github.com/campdir/campdir/model/bootcamp"
	"github.com/campdir/campdir/model/review"
	"github.com/campdir/campdir/model/user"
	"github.com/campdir/campdir/rest/route"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Serve returns the command that runs the REST API service.
func Serve() cli.Command {
	return cli.Command{
		Name:   "serve",
		Usage:  "run the bootcamp directory API service",
		Flags:  serviceConfigFlags(),
		Before: requireFileExists(confFlagName),
		Action: func(c *cli.Context) error {
			confPath := c.String(confFlagName)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			defer recovery.LogStackTraceAndExit("campdir service")

			grip.SetName("campdir")

			settings, err := campdir.NewSettings(confPath)
			if err != nil {
				return errors.Wrap(err, "loading settings")
			}
			if err = settings.Validate(); err != nil {
				return errors.WithStack(err)
			}
			if err = setLogLevel(settings.LogLevel); err != nil {
				return errors.Wrap(err, "configuring logging")
			}

			env, err := campdir.NewEnvironment(ctx, settings)
			if err != nil {
				return errors.Wrap(err, "configuring application environment")
			}
			campdir.SetEnvironment(env)
			defer func() {
				grip.Error(message.WrapError(env.Close(ctx), message.Fields{
					"message": "closing environment",
				}))
			}()

			if err = ensureIndexes(ctx); err != nil {
				return errors.Wrap(err, "building indexes")
			}

			handler, err := route.GetHandler(env)
			if err != nil {
				return errors.Wrap(err, "assembling REST handler")
			}
			srv := route.GetServer(settings.HTTPListenAddr, handler)

			serveErr := make(chan error, 1)
			go func() {
				defer recovery.LogStackTraceAndContinue("campdir web service")
				serveErr <- srv.ListenAndServe()
			}()

			select {
			case err = <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return errors.Wrap(err, "running web service")
				}
				return nil
			case <-ctx.Done():
			}

			grip.Notice("service terminating, draining open connections")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return errors.Wrap(srv.Shutdown(shutdownCtx), "draining web service")
		},
	}
}

func setLogLevel(logLevel string) error {
	if logLevel == "" {
		return nil
	}

	sender := grip.GetSender()
	levelInfo := sender.Level()
	levelInfo.Threshold = level.FromString(logLevel)
	return errors.Wrapf(sender.SetLevel(levelInfo), "setting log level to '%s'", logLevel)
}

func ensureIndexes(ctx context.Context) error {
	if err := bootcamp.EnsureIndexes(ctx); err != nil {
		return errors.Wrap(err, "bootcamp indexes")
	}
	if err := review.EnsureIndexes(ctx); err != nil {
		return errors.Wrap(err, "review indexes")
	}
	return errors.Wrap(user.EnsureIndexes(ctx), "user indexes")
}
