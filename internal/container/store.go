package container

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector-api/config"
	"github.com/oksasatya/devconnector-api/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/devconnector-api/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/devconnector-api/internal/infrastructure/postgres"
)

// ConnectStore opens the backend named by cfg.StoreDriver, prepares its schema
// and registers it. The returned func releases it.
func ConnectStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, errors.Wrap(err, "connect postgres")
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "migrate")
		}
		SetPGPool(pool)
		return pool.Close, nil
	case "mongo":
		client, err := mongoinfra.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		SetMongo(db)
		return func() { _ = client.Disconnect(context.Background()) }, nil
	case "memory":
		SetMemory(memory.NewStore())
		return func() {}, nil
	default:
		return nil, errors.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
