package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoURIEnv points tests at an existing MongoDB instead of a container.
const MongoURIEnv = "BLOODHUB_TEST_MONGO_URI"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// TestContext returns a context with a timeout suitable for a single test's
// database work.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB returns a fresh, uniquely named database that is dropped when
// the test finishes. The server is BLOODHUB_TEST_MONGO_URI when set,
// otherwise a MongoDB container shared by every test in the package binary.
// The test is skipped when neither is available.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	clientOnce.Do(func() { client, clientErr = connect() })
	if clientErr != nil {
		t.Skipf("MongoDB unavailable (set %s or run Docker): %v", MongoURIEnv, clientErr)
	}

	db := client.Database("bloodhub_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

func connect() (c *mongo.Client, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uri := os.Getenv(MongoURIEnv)
	if uri == "" {
		uri, err = startContainer(ctx)
		if err != nil {
			return nil, err
		}
	}

	c, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(ctx)
		return nil, err
	}
	return c, nil
}

// startContainer runs mongo:7. The container is reaped by testcontainers
// when the test binary exits.
func startContainer(ctx context.Context) (uri string, err error) {
	defer func() {
		// Some Docker-less environments make the provider panic.
		if r := recover(); r != nil {
			err = fmt.Errorf("start mongodb container: %v", r)
		}
	}()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return "", fmt.Errorf("start mongodb container: %w", err)
	}
	return container.ConnectionString(ctx)
}
