// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kvnhng/boardhub/internal/app/system/blobstore"
)

// DBDeps holds database and backend dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Blobs is the object storage for covers, attachments, and
	// avatars.
	Blobs blobstore.Store
}
