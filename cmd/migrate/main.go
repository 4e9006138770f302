package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/companion-service/internal/config"
	"github.com/spec-kit/companion-service/internal/observability"
	"github.com/spec-kit/companion-service/internal/persistence"
	"github.com/spec-kit/companion-service/internal/repository"
	"github.com/spec-kit/companion-service/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "migrate",
		Usage: "Apply SQL migrations in lexical order, one transaction per file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   persistence.DefaultMigrationsDir,
				Usage:   "Directory containing *.sql migration files",
			},
		},
		Commands: []*cli.Command{adminCommand()},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			dsn, err := config.MigrationDSN()
			if err != nil {
				return err
			}

			conn, err := pgx.Connect(ctx, dsn)
			if err != nil {
				return fmt.Errorf("failed to connect postgres: %w", err)
			}
			defer conn.Close(ctx) //nolint:errcheck

			migrator := persistence.NewMigrator(c.String("dir"), os.Stdout, logger)
			result, err := migrator.Run(ctx, conn)
			if err != nil {
				return err
			}
			logger.Info("migrations finished",
				zap.Int("applied", len(result.Applied)),
				zap.Int("skipped", len(result.Skipped)))
			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Create an admin profile or promote an existing one",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Email of the admin profile",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password to set (default $ADMIN_PASSWORD); hashed with AUTH_BCRYPT_COST",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			dsn, err := config.MigrationDSN()
			if err != nil {
				return err
			}
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("failed to connect postgres: %w", err)
			}
			defer pool.Close()

			password := c.String("password")
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			admins := service.NewAdminService(repository.NewProfileWriter(pool), cfg.Auth.BcryptCost)
			profile, err := admins.Provision(ctx, c.String("email"), password)
			if err != nil {
				return err
			}
			logger.Info("admin provisioned", zap.String("user_id", profile.ID), zap.String("email", profile.Email))
			fmt.Printf("Admin %s ready (id %s)\n", profile.Email, profile.ID)
			return nil
		},
	}
}
