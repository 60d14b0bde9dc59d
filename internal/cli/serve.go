package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahideveloper1/Video-editor-assignment/internal/config"
	"github.com/mahideveloper1/Video-editor-assignment/internal/nlu"
	"github.com/mahideveloper1/Video-editor-assignment/internal/server"
	"github.com/mahideveloper1/Video-editor-assignment/internal/session"
	"github.com/mahideveloper1/Video-editor-assignment/internal/video"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the video editing API server",
	Long: `Start the HTTP API server for chat-driven subtitle editing.

Configuration is read from environment variables and an optional .env
file. An LLM API key matching the configured provider is required:

  LLM_PROVIDER       openai, anthropic, or gemini (default: openai)
  OPENAI_API_KEY     for the openai provider
  ANTHROPIC_API_KEY  for the anthropic provider
  GEMINI_API_KEY     for the gemini provider
  REDIS_ADDR         optional; sessions are in-memory when unset

Examples:
  subchat serve
  subchat serve --port 9000
  LLM_PROVIDER=anthropic subchat serve -v`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	apiKey := cfg.APIKey()
	if apiKey == "" {
		return fmt.Errorf("no API key configured for provider %q", cfg.Provider)
	}

	oracle, err := nlu.Factory(ctx, nlu.Provider(cfg.Provider), apiKey, nlu.Options{
		Model: cfg.Model,
	})
	if err != nil {
		return fmt.Errorf("failed to create oracle: %w", err)
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		store, err := session.NewRedisStore(session.RedisConfig{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		}, cfg.SessionTTL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer store.Close()
		sessions = store
		logger.Infow("Using redis session store", "addr", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		logger.Infow("Using in-memory session store", "ttl", cfg.SessionTTL.String())
	}

	media := video.NewProcessor(cfg.NoiseThreshold, cfg.MinSilenceDuration)

	srv := server.New(cfg, logger, sessions, oracle, media)
	return srv.Run()
}
