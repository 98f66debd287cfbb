package main

import (
	"context"
	"fmt"

	"github.com/dalemusser/bloodhub/internal/app/bootstrap"
	"github.com/dalemusser/bloodhub/internal/app/system/indexes"
	"github.com/dalemusser/bloodhub/internal/app/system/validators"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func loggerFrom(c *cli.Context) *zap.Logger {
	if l, ok := c.App.Metadata["logger"].(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// openDB connects with the global flags and makes sure collections and
// indexes exist, so the CLI works against an empty database.
func openDB(c *cli.Context) (*mongo.Database, func(), error) {
	uri := c.String("mongo-uri")
	if err := wafflemongo.ValidateURI(uri); err != nil {
		return nil, nil, fmt.Errorf("invalid --mongo-uri: %w", err)
	}

	client, db, err := bootstrap.Connect(c.Context, uri, c.String("mongo-database"), 0, 0)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }

	if err := validators.EnsureAll(c.Context, db); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("collection validators: %w", err)
	}
	if err := indexes.EnsureAll(c.Context, db); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("indexes: %w", err)
	}

	loggerFrom(c).Info("connected to MongoDB", zap.String("database", db.Name()))
	return db, closeFn, nil
}
