package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/config"
	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store is an opened durable store plus its lifecycle hooks.
type Store struct {
	domain.KeyValueStore

	Ping  func(ctx context.Context) error
	Close func() error
}

// Open connects the driver named in cfg and prepares its schema.
func Open(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (*Store, error) {
	log = logger.Named(log, "repo.store")

	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, state is lost on restart")
		return &Store{
			KeyValueStore: NewInMemoryStore(0),
			Ping:          func(context.Context) error { return nil },
			Close:         func() error { return nil },
		}, nil

	case config.DriverPostgres, config.DriverPQ, config.DriverSQLite:
		driverName, dsn := "pgx", cfg.PostgresDSN()
		switch cfg.Driver {
		case config.DriverPQ:
			driverName = "postgres"
		case config.DriverSQLite:
			driverName, dsn = "sqlite", cfg.SQLitePath
		}

		db, err := sqlx.ConnectContext(ctx, driverName, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
		}

		if cfg.Driver == config.DriverSQLite {
			db.SetMaxOpenConns(1)
		} else {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
		}

		store := NewSQLStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}

		return &Store{
			KeyValueStore: store,
			Ping:          db.PingContext,
			Close:         db.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ping mongo: %w", err)
		}

		return &Store{
			KeyValueStore: NewMongoStore(client.Database(cfg.MongoDB)),
			Ping:          func(ctx context.Context) error { return client.Ping(ctx, nil) },
			Close:         func() error { return client.Disconnect(context.Background()) },
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
