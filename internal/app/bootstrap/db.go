// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	templatestore "github.com/kvnhng/boardhub/internal/app/store/templates"
	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/blobstore"
)

// ConnectDB establishes the MongoDB connection and the object storage
// client.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}

	if appCfg.StorageS3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(appCfg.StorageS3Region))
		if err != nil {
			return DBDeps{}, fmt.Errorf("load aws config: %w", err)
		}
		deps.Blobs = blobstore.NewS3(s3.NewFromConfig(awsCfg),
			appCfg.StorageS3Bucket, appCfg.StorageS3PublicURL)
		logger.Info("object storage ready",
			zap.String("bucket", appCfg.StorageS3Bucket))
	} else {
		deps.Blobs = blobstore.Disabled()
		logger.Warn("no S3 bucket configured; uploads are disabled")
	}

	return deps, nil
}

// EnsureSchema creates the collection indexes, including the partial
// unique index that enforces one live template per board.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	for name, ensure := range map[string]func(context.Context) error{
		"boards":    boardstore.New(db).EnsureIndexes,
		"columns":   columnstore.New(db).EnsureIndexes,
		"cards":     cardstore.New(db).EnsureIndexes,
		"templates": templatestore.New(db).EnsureIndexes,
		"users":     userstore.New(db).EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}

	logger.Info("database indexes ensured")
	return nil
}
