package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nenkin/internal/backend"
	"nenkin/internal/checklist"
	"nenkin/internal/config"
	"nenkin/internal/logging"
)

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Dir: t.TempDir(),
		Env: config.Env{
			Backend:     config.BackendLocal,
			SlotKey:     config.DefaultSlotKey,
			SlotStore:   config.SlotFile,
			Collection:  config.DefaultCollection,
			RemoteOrder: config.OrderID,
			LoadTimeout: 30 * time.Second,
		},
	}
}

func TestOpen_LocalFile(t *testing.T) {
	cfg := baseConfig(t)

	b, err := backend.Open(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, "local", b.Name())
	items, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checklist.Seed(), items)
}

func TestOpen_LocalRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(t)
	cfg.Env.SlotStore = config.SlotRedis
	cfg.Env.RedisURL = "redis://" + mr.Addr()

	b, err := backend.Open(context.Background(), cfg, nil)
	require.NoError(t, err)

	items, err := b.Load(context.Background())
	require.NoError(t, err)
	_, err = b.Save(context.Background(), items)
	require.NoError(t, err)
	assert.True(t, mr.Exists(config.DefaultSlotKey))
	assert.NoError(t, b.Close())
}

func TestOpen_LocalRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	cfg := baseConfig(t)
	cfg.Env.SlotStore = config.SlotRedis
	cfg.Env.RedisURL = "redis://" + addr

	_, err := backend.Open(context.Background(), cfg, nil)

	assert.ErrorContains(t, err, "redis")
}

func TestOpen_Remote(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Env.Backend = config.BackendRemote
	cfg.Env.Firebase.ProjectID = "demo"
	cfg.Env.Firebase.APIKey = "key"

	b, err := backend.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, "remote", b.Name())
}

func TestOpen_InvalidConfig(t *testing.T) {
	tests := map[string]func(*config.Env){
		"unknown backend":     func(e *config.Env) { e.Backend = "cloud" },
		"remote no project":   func(e *config.Env) { e.Backend = config.BackendRemote },
		"redis without url":   func(e *config.Env) { e.SlotStore = config.SlotRedis },
		"remote bad ordering": func(e *config.Env) { e.Backend = config.BackendRemote; e.Firebase.ProjectID = "p"; e.RemoteOrder = "random" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := baseConfig(t)
			mutate(&cfg.Env)

			_, err := backend.Open(context.Background(), cfg, nil)

			assert.Error(t, err)
		})
	}
}
