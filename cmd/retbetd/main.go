package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/AndreaRuggieri/retbet/internal/config"
	"github.com/AndreaRuggieri/retbet/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "retbetd",
		Short:        "Football match statistics record manager",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				slog.Info("no .env file found, using environment variables")
			}
		},
	}

	root.AddCommand(serveCmd(), migrateCmd(), dbPathCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := db.RunMigrations(database.DB, cfg.MigrationsDir); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			router := newRouter(cfg, database)

			slog.Info("server starting", "addr", cfg.Addr, "db", cfg.DBPath)
			return http.ListenAndServe(cfg.Addr, router)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := db.RunMigrations(database.DB, cfg.MigrationsDir); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

// dbPathCmd answers the recurring "which database file am I actually writing
// to" question without opening a connection.
func dbPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dbpath",
		Short: "Print the resolved database path and whether it exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			abs, err := filepath.Abs(cfg.DBPath)
			if err != nil {
				return err
			}

			fmt.Println("database path:", abs)
			if _, err := os.Stat(abs); os.IsNotExist(err) {
				fmt.Println("exists: no")
			} else if err != nil {
				return err
			} else {
				fmt.Println("exists: yes")
			}
			return nil
		},
	}
}
