// SPDX-License-Identifier: BSD-3-Clause

// Command tt-riingd is the background service that drives a Thermaltake
// Riing Quad-family fan controller: it evaluates temperature curves,
// paints the configured lighting, and exposes an IPC control endpoint
// over an embedded NATS broker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/ipc"
	"github.com/At1ass/tt-riingd/pkg/log"
	"github.com/At1ass/tt-riingd/service/coordinator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tt-riingd:", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var daemonize bool
	flag.StringVar(&configPath, "config", "", "path to the configuration file (overrides the locate rule)")
	flag.StringVar(&configPath, "c", "", "shorthand for --config")
	flag.BoolVar(&daemonize, "daemonize", false, "accepted for compatibility with traditional init scripts; this process never forks")
	flag.Parse()

	logger := log.NewDefaultLogger()
	log.SetGlobalLogger(logger)

	if configPath == "" {
		located, err := config.Locate()
		if err != nil {
			return fmt.Errorf("locate configuration: %w", err)
		}
		configPath = located
	}

	mgr := config.NewManager()
	if err := mgr.Load(configPath); err != nil {
		return fmt.Errorf("load configuration %s: %w", configPath, err)
	}
	logger.Info("configuration loaded", "path", configPath)

	broker := ipc.NewBroker(coordinator.DefaultName, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := broker.Start(ctx); err != nil {
		return fmt.Errorf("start ipc broker: %w", err)
	}
	defer broker.Shutdown(context.WithoutCancel(ctx))

	co := coordinator.New(
		coordinator.WithConfigManager(mgr),
		coordinator.WithBroker(broker),
	)

	if err := co.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("coordinator: %w", err)
	}
	return nil
}
