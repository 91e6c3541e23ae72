package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tbeier/pokedex-web/internal/config"
	"github.com/tbeier/pokedex-web/pkg/cache"
	"github.com/tbeier/pokedex-web/pkg/catalog"
	"github.com/tbeier/pokedex-web/pkg/logging"
	"github.com/tbeier/pokedex-web/pkg/pokeapi"
)

// app bundles the wired dependencies shared by all subcommands:
// config -> logger -> cache store -> upstream client -> catalog service.
type app struct {
	cfg     *config.Config
	service *catalog.Service
	logger  zerolog.Logger
	redis   *redis.Client // nil for the memory backend
}

// buildApp wires the application from the config file at path, or from
// defaults when path is empty.
func buildApp(path string) (*app, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	var store cache.Store
	var redisClient *redis.Client
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Cache.Redis.Addr, err)
		}
		store = cache.NewRedis(redisClient)
		logger.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("Using redis cache backend")
	default:
		store = cache.NewMemory()
		logger.Info().Msg("Using in-memory cache backend")
	}

	clientCfg := pokeapi.DefaultConfig()
	clientCfg.BaseURL = cfg.Upstream.BaseURL
	if cfg.Upstream.Timeout > 0 {
		clientCfg.Timeout = cfg.Upstream.Timeout
	}
	client, err := pokeapi.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create upstream client: %w", err)
	}

	service, err := catalog.New(client, store, catalog.Config{
		DetailConcurrency: cfg.Catalog.DetailConcurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("create catalog service: %w", err)
	}

	return &app{
		cfg:     cfg,
		service: service,
		logger:  logger,
		redis:   redisClient,
	}, nil
}

// Close releases backend connections.
func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
