package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/playlistify/music-api/internal/infrastructure/config"
	"github.com/playlistify/music-api/internal/infrastructure/db/mongo"
	"github.com/playlistify/music-api/pkg/logger"
)

// runtime is what every command needs: configuration, the root logger and
// an open MongoDB connection.
type runtime struct {
	cfg    *config.Config
	log    zerolog.Logger
	client *mongodriver.Client
	db     *mongodriver.Database
}

func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "music-api",
	})

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	return &runtime{cfg: cfg, log: log, client: client, db: db}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.client.Disconnect(ctx); err != nil {
		r.log.Warn().Err(err).Msg("mongodb disconnect")
	}
}
