package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "studio",
		Usage: "art studio storefront API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply the MySQL schema used by ARTWORK_BACKEND=mysql",
				Action: migrateSchema,
			},
			{
				Name:   "stats",
				Usage:  "print artwork catalog statistics",
				Action: printStats,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("studio failed")
	}
}
