package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qbr-dash/internal/cache"
	"qbr-dash/internal/config"
	"qbr-dash/internal/server"
	"qbr-dash/internal/source"
)

var (
	serveListen  string
	serveDataset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveDataset, "dataset", "", "dataset CSV path, URL or sqlite file (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if serveDataset != "" {
		cfg.Dataset.Location = serveDataset
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A dataset that fails to load stops startup before anything listens.
	ds, err := source.Open(ctx, source.Options{
		Location: cfg.Dataset.Location,
		Token:    cfg.Dataset.Token,
	}, logger)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	c, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	srv := server.New(ds, c, logger, server.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Timeout,
	})
	fmt.Printf("🏈 QBR dashboard is running on http://%s\n", cfg.Listen)
	return srv.ListenAndServe(ctx, cfg.Listen)
}

func openCache(ctx context.Context, cc config.CacheConfig) (cache.Cache, func(), error) {
	switch cc.Backend {
	case config.CacheRedis:
		r, err := cache.DialRedis(ctx, cc.RedisAddr, cc.RedisPassword, cc.RedisDB, cc.TTL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("summary cache enabled", zap.String("backend", "redis"), zap.String("addr", cc.RedisAddr), zap.Duration("ttl", cc.TTL))
		return r, func() { _ = r.Close() }, nil
	case config.CacheMemory:
		logger.Info("summary cache enabled", zap.String("backend", "memory"), zap.Duration("ttl", cc.TTL))
		return cache.NewMemory(cc.TTL), func() {}, nil
	default:
		return cache.Nop{}, func() {}, nil
	}
}
