package main

import (
	"fmt"

	"github.com/dalemusser/bloodhub/internal/app/seed"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo users, donation requests, blogs and fundings",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "password", Usage: "Password given to every demo user", Value: "password123"},
	},
	Action: func(c *cli.Context) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		db, closeDB, err := openDB(c)
		if err != nil {
			return err
		}
		defer closeDB()

		sum, err := seed.Run(c.Context, db, string(hash), loggerFrom(c))
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "seeded %s\n", sum)
		return nil
	},
}
