package operations

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const confFlagName = "conf"

func serviceConfigFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  confFlagName + ", c, config",
		Usage: "path to the service configuration file",
		Value: "/etc/campdir.yml",
	})
}

func requireFileExists(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		path := c.String(name)
		if path == "" {
			return errors.Errorf("flag '--%s' must be specified", name)
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			return errors.Errorf("file '%s' does not exist", path)
		}

		return nil
	}
}
