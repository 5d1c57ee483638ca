package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roninwatch/tokendash/internal/cache"
	"github.com/roninwatch/tokendash/internal/config"
	"github.com/roninwatch/tokendash/internal/dexscreener"
	"github.com/roninwatch/tokendash/internal/gecko"
	"github.com/roninwatch/tokendash/internal/httpapi"
	"github.com/roninwatch/tokendash/internal/metrics"
	"github.com/roninwatch/tokendash/internal/pipeline"
)

const (
	appName = "tokendash"
	version = "v1.2.0"
)

var (
	configPath string
	verbose    bool
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Price API for Ronin in-game tokens",
		Version: version,
		Long: `tokendash serves live-or-synthetic price data for the tracked set of
Ronin in-game tokens: GeckoTerminal lookups with per-token fallback
strategies, a deterministic synthetic generator when no live data
exists, best-swap enrichment, and a short-TTL response cache.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE:  runServe,
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Run one refresh batch and print the JSON payload",
		RunE:  runFetch,
	}

	rootCmd.AddCommand(serveCmd, fetchCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// buildService assembles the pipeline from config.
func buildService(cfg *config.Config, reg *metrics.Registry) (*pipeline.Service, *gecko.Client) {
	client := gecko.NewClient(gecko.Config{
		BaseURL:         cfg.Gecko.BaseURL,
		UserAgent:       cfg.Gecko.UserAgent,
		RequestTimeout:  time.Duration(cfg.Gecko.TimeoutSecs) * time.Second,
		RPS:             cfg.Gecko.RPS,
		Burst:           cfg.Gecko.Burst,
		BreakerFailures: cfg.Gecko.BreakerFailures,
		BreakerTimeout:  time.Duration(cfg.Gecko.BreakerTimeout) * time.Second,
	})

	service := pipeline.New(pipeline.Deps{
		Upstream: client,
		Cache:    cache.New(cfg.CacheTTL()),
		Metrics:  reg,
	})

	return service, client
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	reg := metrics.New()
	service, client := buildService(cfg, reg)

	dexClient := dexscreener.NewClient(dexscreener.Config{
		BaseURL:        cfg.DexScreener.BaseURL,
		RequestTimeout: time.Duration(cfg.DexScreener.TimeoutSecs) * time.Second,
		RPS:            cfg.DexScreener.RPS,
	})
	verifier := dexscreener.NewVerifier(dexClient)

	handlers := httpapi.NewHandlers(service, verifier, reg, client.BreakerState)
	server, err := httpapi.NewServer(cfg.Server, handlers)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	service, _ := buildService(cfg, metrics.New())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeoutDuration())
	defer cancel()

	resp := service.Refresh(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
