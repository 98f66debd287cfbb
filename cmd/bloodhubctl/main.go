package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	app := &cli.App{
		Name:  "bloodhubctl",
		Usage: "BloodHub administration tool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mongo-uri",
				Usage:   "MongoDB connection URI",
				Value:   "mongodb://localhost:27017",
				EnvVars: []string{"BLOODHUB_MONGO_URI"},
			},
			&cli.StringFlag{
				Name:    "mongo-database",
				Usage:   "MongoDB database name",
				Value:   "bloodhub",
				EnvVars: []string{"BLOODHUB_MONGO_DATABASE"},
			},
		},
		Metadata: map[string]any{"logger": logger},
		Commands: []*cli.Command{
			createAdminCommand,
			seedCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("bloodhubctl failed", zap.Error(err))
	}
}
