// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/reconcile"
	"github.com/kvnhng/boardhub/internal/app/system/workers"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// Startup runs one-time application initialization after DB
// connections and schema setup are complete, but before the HTTP
// handler is built.
// driftSweep is started here and stopped by the Shutdown hook.
var driftSweep *workers.DriftSweep

func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	if appCfg.DriftSweepInterval > 0 {
		boards := boardstore.New(deps.MongoDatabase)
		checker := reconcile.New(columnstore.New(deps.MongoDatabase), cardstore.New(deps.MongoDatabase), logger)
		driftSweep = workers.NewDriftSweep(boards, checker, logger, appCfg.DriftSweepInterval)
		driftSweep.Start()
	}

	return nil
}

// ensureAdmin promotes the configured account to admin, creating an
// inactive placeholder when no account exists yet. The placeholder has
// no password; its owner registers normally and keeps the admin role.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)
	email = userstore.NormalizeEmail(email)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		_, err := deps.MongoDatabase.Collection("users").UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now().UTC()}})
		if err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", email))
		return nil

	case errors.Is(err, userstore.ErrNotFound):
		_, err := users.Create(ctx, models.User{
			Email: email,
			Role:  models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		logger.Info("created admin placeholder account", zap.String("email", email))
		return nil

	default:
		return err
	}
}
