package main

import (
	"fmt"

	userstore "github.com/dalemusser/bloodhub/internal/app/store/users"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var createAdminCommand = &cli.Command{
	Name:  "create-admin",
	Usage: "Create an admin user, or promote and reactivate an existing one",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "email", Usage: "Admin email", Required: true},
		&cli.StringFlag{Name: "name", Usage: "Display name"},
		&cli.StringFlag{Name: "password", Usage: "Password (6-72 characters)", Required: true, EnvVars: []string{"BLOODHUB_ADMIN_PASSWORD"}},
	},
	Action: func(c *cli.Context) error {
		password := c.String("password")
		if n := len(password); n < 6 || n > 72 {
			return fmt.Errorf("password must be 6-72 characters")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		db, closeDB, err := openDB(c)
		if err != nil {
			return err
		}
		defer closeDB()

		created, err := userstore.New(db).EnsureAdmin(c.Context, c.String("email"), c.String("name"), string(hash))
		if err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}

		log := loggerFrom(c)
		if created {
			log.Info("admin created", zap.String("email", c.String("email")))
		} else {
			log.Info("existing user promoted to admin", zap.String("email", c.String("email")))
		}
		return nil
	},
}
