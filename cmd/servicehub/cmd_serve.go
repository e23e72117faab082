package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/servicehub/app/repositories"
	"github.com/shashiranjanraj/servicehub/config"
	"github.com/shashiranjanraj/servicehub/internal/kernel"
	"github.com/shashiranjanraj/servicehub/internal/server"
	"github.com/shashiranjanraj/servicehub/pkg/auth"
	"github.com/shashiranjanraj/servicehub/pkg/cache"
	"github.com/shashiranjanraj/servicehub/pkg/database"
	"github.com/shashiranjanraj/servicehub/pkg/logger"
)

// servicehub serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := config.Require("MONGODB_URI", "JWT_SECRET"); err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(config.JWTSecret(), config.SessionTTL())
	if err != nil {
		return err
	}

	store, err := database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return err
	}
	defer closeStore(store)

	if config.LogToMongo() {
		sink := logger.NewMongoHandler(ctx, store.DB(), slog.LevelInfo)
		logger.Configure(config.IsProduction(), sink)
		defer sink.Close()
	}

	if _, err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("index bootstrap failed; duplicate emails are only caught by the lookup", "error", err)
	}

	orderCache, closeCache := connectCache(ctx)
	defer closeCache()

	k := kernel.NewHTTPKernel(kernel.Deps{
		Users:          repositories.NewUserRepository(store),
		Orders:         repositories.NewOrderRepository(store),
		Health:         store,
		Cache:          orderCache,
		Tokens:         tokens,
		Hasher:         auth.BcryptHasher{},
		CookieSecure:   config.CookieSecure(),
		OrdersCacheTTL: config.OrdersCacheTTL(),
		Location:       config.BookingLocation(),
		CORSOrigins:    config.CORSOrigins(),
	})

	return server.Run(ctx, ":"+config.AppPort(), k.Handler())
}

// connectCache returns Redis when reachable and Noop otherwise, plus a
// func releasing the connection pool.
func connectCache(ctx context.Context) (cache.Store, func()) {
	addr := config.RedisAddr()
	if addr == "" {
		return cache.Noop{}, func() {}
	}

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	rdb, err := cache.Connect(pctx, addr, config.RedisPassword())
	if err != nil {
		logger.Warn("redis unavailable, order list caching disabled", "addr", addr, "error", err)
		return cache.Noop{}, func() {}
	}
	logger.Info("redis connected", "addr", addr)
	return rdb, func() { _ = rdb.Close() }
}

func closeStore(store *database.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		logger.Warn("mongo disconnect failed", "error", err)
	}
}
