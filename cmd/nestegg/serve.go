package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/api"
	"github.com/rgehrsitz/nestegg/internal/config"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calculation HTTP API",
		Long: `Serve POST /api/retirement/calculate and its documentation.

Settings come from built-in defaults, then the optional --config YAML file, then
NESTEGG_* environment variables (a .env file in the working directory is loaded).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadServerConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr, _ = cmd.Flags().GetString("addr")
			}

			logger, err := serverLogger(cfg)
			if err != nil {
				return err
			}
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				logger.SetLevel(logrus.DebugLevel)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(*cfg, logger).Run(ctx)
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to a server config YAML file")
	cmd.Flags().String("addr", "", "Listen address, overrides config and NESTEGG_ADDR")

	return cmd
}

func serverLogger(cfg *config.ServerConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch cfg.LogFormat {
	case "json", "":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q (use json or text)", cfg.LogFormat)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}
