package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/pabloab/zapatillas-api/internal/infrastructure/db/mongo"
	"github.com/pabloab/zapatillas-api/internal/pkg/config"
	"github.com/pabloab/zapatillas-api/pkg/logger"
)

// bootstrap loads configuration, initialises the logger and connects to MongoDB.
// The caller owns the returned client and must disconnect it.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, *mongodriver.Client, *mongodriver.Database, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), nil, nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "zapatillas-api",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, log, nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return cfg, log, client, db, nil
}
