package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/playlistify/music-api/internal/api"
	"github.com/playlistify/music-api/internal/api/handler"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/core/service"
	"github.com/playlistify/music-api/internal/infrastructure/auth"
	"github.com/playlistify/music-api/internal/infrastructure/db/mongo"
	"github.com/playlistify/music-api/internal/infrastructure/db/redis"
	"github.com/playlistify/music-api/internal/infrastructure/queue"
	"github.com/playlistify/music-api/pkg/logger"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API",
		Action: serve,
	}
}

func serve(ctx context.Context, _ *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())
	cfg, log := rt.cfg, rt.log

	if err := mongo.EnsureIndexes(ctx, rt.db); err != nil {
		return err
	}

	health := map[string]handler.Pinger{"mongodb": mongo.NewPinger(rt.client)}

	// The throttle is optional; without Redis failed logins are not counted.
	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		throttle = redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		health["redis"] = redis.NewPinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttle enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttle disabled")
	}

	tokens, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	if err != nil {
		return err
	}

	users := mongo.NewUserRepository(rt.db)
	credentials := service.NewCredentialValidator(cfg.Auth.PasswordMinLength)

	dispatcher := queue.NewDispatcher(
		cfg.ActivityWorkers,
		service.NewActivityService(users, logger.Component("activity")),
		logger.Component("dispatcher"),
	)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Deps{
		Log: log,
		Auth: service.NewAuthService(
			users,
			auth.NewBcryptHasher(cfg.Auth.BcryptCost),
			tokens,
			credentials,
			throttle,
			logger.Component("auth"),
		),
		Users:     service.NewUserService(users, credentials, logger.Component("users")),
		Songs:     service.NewSongService(mongo.NewSongRepository(rt.db), dispatcher, logger.Component("songs")),
		Playlists: service.NewPlaylistService(mongo.NewPlaylistRepository(rt.db), dispatcher, logger.Component("playlists")),
		Tokens:    tokens,
		Gate:      service.NewRoleGate(),
		Health:    health,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serverErr:
		if err != nil {
			stopWorkers()
			dispatcher.Wait()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("server exited")
	return nil
}
