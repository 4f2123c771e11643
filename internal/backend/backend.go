// Package backend selects and constructs the configured persistence backend.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"nenkin/internal/backend/firestore"
	"nenkin/internal/backend/local"
	"nenkin/internal/backend/remote"
	"nenkin/internal/config"
	"nenkin/internal/service"
)

// Open returns the backend named by cfg.Env.Backend. The returned backend
// owns any connection it opened and releases it on Close.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	env := cfg.Env

	switch env.Backend {
	case config.BackendRemote:
		store, err := firestore.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		order := remote.OrderByID
		if env.RemoteOrder == config.OrderSeed {
			order = remote.OrderBySeed
		}
		return remote.New(store, env.Collection,
			remote.WithLoadTimeout(env.LoadTimeout),
			remote.WithOrder(order),
			remote.WithLogger(logger)), nil

	case config.BackendLocal:
		if env.SlotStore == config.SlotRedis {
			rdb, err := local.DialRedis(ctx, env.RedisURL)
			if err != nil {
				return nil, err
			}
			slot := local.NewRedisSlot(rdb)
			return local.New(slot, env.SlotKey,
				local.WithLogger(logger),
				local.WithCloser(slot.Close)), nil
		}
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		return local.New(local.NewFileSlot(cfg.Dir), env.SlotKey, local.WithLogger(logger)), nil
	}
	return nil, fmt.Errorf("unknown backend %q", env.Backend)
}
