package main

import (
	"os"

	"github.com/campdir/campdir/operations"
	"github.com/mongodb/grip"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "campdir"
	app.Usage = "bootcamp directory API service"

	app.Commands = []cli.Command{
		operations.Serve(),
	}

	grip.EmergencyFatal(app.Run(os.Args))
}
