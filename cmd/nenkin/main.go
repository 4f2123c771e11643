// Package main is the entry point for the nenkin CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nenkin/internal/backend"
	"nenkin/internal/cli"
	"nenkin/internal/commands"
	"nenkin/internal/config"
	"nenkin/internal/logging"
	"nenkin/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (service.Backend, error) {
		if cfg.Log == nil {
			cfg.Log = logging.NewSink(os.Stderr)
		}
		logger := logging.New(cfg.Log, cfg.Debug)
		logger.Debug("configuration",
			"backend", cfg.Env.Backend,
			"dir", cfg.Dir,
			"remote_settings", cfg.RemoteSettings())
		return backend.Open(ctx, cfg, logger)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
