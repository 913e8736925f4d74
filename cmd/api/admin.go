package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/core/service"
	"github.com/playlistify/music-api/internal/infrastructure/auth"
	"github.com/playlistify/music-api/internal/infrastructure/db/mongo"
	"github.com/playlistify/music-api/pkg/logger"
)

// createAdminCommand bootstraps the first administrator; afterwards admins
// are created through POST /users/sign-up/admin.
func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "Create an admin account directly in the database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Admin email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Admin password", Required: true, Sources: cli.EnvVars("ADMIN_PASSWORD")},
			&cli.StringFlag{Name: "first", Usage: "First name", Value: "Admin"},
			&cli.StringFlag{Name: "last", Usage: "Last name"},
			&cli.IntFlag{Name: "age", Usage: "Age"},
		},
		Action: createAdmin,
	}
}

func createAdmin(ctx context.Context, cmd *cli.Command) error {
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	if err := mongo.EnsureIndexes(ctx, rt.db); err != nil {
		return err
	}

	tokens, err := auth.NewJWTService(rt.cfg.Auth.JWTSecret, rt.cfg.Auth.JWTExpiresIn)
	if err != nil {
		return err
	}
	svc := service.NewAuthService(
		mongo.NewUserRepository(rt.db),
		auth.NewBcryptHasher(rt.cfg.Auth.BcryptCost),
		tokens,
		service.NewCredentialValidator(rt.cfg.Auth.PasswordMinLength),
		nil,
		logger.Component("auth"),
	)

	user, err := svc.SignUp(ctx, ports.SignUpInput{
		Name:     domain.Name{First: cmd.String("first"), Last: cmd.String("last")},
		Age:      cmd.Int("age"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	rt.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin created")
	return nil
}

func ensureIndexesCommand() *cli.Command {
	return &cli.Command{
		Name:  "ensure-indexes",
		Usage: "Create MongoDB indexes and exit",
		Action: func(ctx context.Context, _ *cli.Command) error {
			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.close(context.Background())

			if err := mongo.EnsureIndexes(ctx, rt.db); err != nil {
				return err
			}
			rt.log.Info().Msg("indexes ensured")
			return nil
		},
	}
}
