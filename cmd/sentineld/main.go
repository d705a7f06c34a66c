// Command sentineld serves the FinSentinel risk pipelines over HTTP and gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/config"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/postgres"
	pgpkg "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sentineld",
		Short:         "FinSentinel risk evaluation daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), config.Load())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP and gRPC servers (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), config.Load())
			},
		},
		newMigrateCmd(),
	)
	return root
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the decision store schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, err := databaseURL()
				if err != nil {
					return err
				}
				if err := pgpkg.RunMigrationsFS(dsn, postgres.Migrations, postgres.MigrationsDir); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, err := databaseURL()
				if err != nil {
					return err
				}
				if err := pgpkg.RollbackMigrationsFS(dsn, postgres.Migrations, postgres.MigrationsDir); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			},
		},
	)
	return migrateCmd
}

func databaseURL() (string, error) {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return "", errors.New("DATABASE_URL is not set")
	}
	return cfg.DatabaseURL, nil
}
