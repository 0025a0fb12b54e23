package repository

import (
	"context"

	"bloglist/internal/config"
	"bloglist/internal/database"
)

// Open connects to the store selected by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.DBDriver == config.DriverMongo {
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(client, db), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return NewGormStore(db), nil
}
