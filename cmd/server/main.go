package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"debatebot/config"
	"debatebot/internal/logging"
	"debatebot/services"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "debatebot",
		Short: "AI debate generation and coaching API",
		Long:  "Serves the debate bot API: scripted two-sided debates, live counter-arguments, rubric scoring and coaching feedback backed by Gemini.",
		RunE:  runServe,
	}

	root.PersistentFlags().String("config", "./config/config.yml", "Path to the YAML configuration file")
	root.PersistentFlags().String("env-file", ".env", "Dotenv file loaded before reading the environment")
	root.PersistentFlags().Int("port", 0, "Port to listen on (overrides config and PORT)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newDebateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration from the dotenv file, the YAML file,
// the environment and finally the command line flags
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	envFile, _ := cmd.Root().PersistentFlags().GetString("env-file")
	port, _ := cmd.Root().PersistentFlags().GetInt("port")

	loadedEnv, err := config.LoadDotEnv(envFile)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if loadedEnv != "" {
		logger.Debug("loaded environment file", "path", loadedEnv)
	}
	return cfg, logger, nil
}

func newGenerator(ctx context.Context, cfg *config.Config) (services.Generator, error) {
	return services.NewGeminiGenerator(ctx, cfg.Gemini.ApiKey, services.GeminiOptions{
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
		Timeout:     time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
		BaseURL:     cfg.Gemini.BaseURL,
	})
}
