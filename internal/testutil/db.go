// internal/testutil/db.go
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SetupTestDB connects to the MongoDB instance named by
// BOARDHUB_TEST_MONGO_URI and returns a database with a unique name for
// this test. The database is dropped and the client disconnected when
// the test finishes. Tests that call this are skipped when the
// environment variable is unset, so the suite runs without a database.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("BOARDHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BOARDHUB_TEST_MONGO_URI not set; skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	db := client.Database(fmt.Sprintf("boardhub_test_%s", primitive.NewObjectID().Hex()))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database: %v", err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("disconnect test client: %v", err)
		}
	})

	return db
}

// TestContext returns a context with a timeout suitable for a single
// test's database calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
