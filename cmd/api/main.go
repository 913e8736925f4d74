// @title                       Music Playlist API
// @version                     1.0
// @description                 Users, songs and playlists with JWT authentication and role-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "music-api",
		Usage: "Music playlist REST API",
		Commands: []*cli.Command{
			serveCommand(),
			createAdminCommand(),
			ensureIndexesCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "music-api: %v\n", err)
		os.Exit(1)
	}
}
