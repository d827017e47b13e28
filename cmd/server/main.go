// Package main implements the contracts API server and its maintenance
// commands: serving HTTP, running migrations and bootstrapping users.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/contracts-api/internal/config"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// cliOptions are the flags shared by every subcommand.
type cliOptions struct {
	envFile    string
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:          "contracts-api",
		Short:        "Tenant-scoped client, service and contract management API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "optional YAML configuration file")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newCreateUserCmd(opts),
		newHashPasswordCmd(),
	)
	return root
}

// load reads configuration and installs the process logger.
func (o *cliOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadWithOptions(config.Options{EnvFile: o.envFile, ConfigFile: o.configFile})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_url_present", cfg.Database.URL != "",
		"jwt_secret_present", cfg.Auth.JWTSecret != "")
	return cfg, log, nil
}
