// Command khidmat runs the shop ledger service and its admin tooling.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kisankhidmat/khidmat/internal/config"
	"github.com/kisankhidmat/khidmat/pkg/logging"
)

const (
	Version = "0.3.0"
	appName = "khidmat"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Ledger, billing and advisory service for Kisan Khidmat Ghar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")

	cmd.AddCommand(
		serveCmd(&flags),
		hashPasswordCmd(),
		billCmd(&flags),
		dashboardCmd(&flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

// loadConfig reads the dotenv file, then the config file and environment, and
// installs the logger.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	if flags.envFile != "" {
		if err := godotenv.Load(flags.envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", flags.envFile, err)
		}
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	logging.Setup(cfg.Log.Level)
	slog.Debug("Configuration loaded", "config", flags.configPath, "data_dir", cfg.Data.Dir)
	return cfg, nil
}
