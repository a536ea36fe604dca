// Command stormgraph runs the EventStorming graph engine: the HTTP API for
// in-process callers and, optionally, the NNG bridge listener for an
// out-of-process renderer.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stormlabs/stormgraph/pkg/api"
	"github.com/stormlabs/stormgraph/pkg/bridge"
	"github.com/stormlabs/stormgraph/pkg/engine"
	"github.com/stormlabs/stormgraph/pkg/logging"
	"github.com/stormlabs/stormgraph/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "stormgraph.yaml", "path to config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logging.NewDefaultLogger().Error("configuration error", logging.Err(err))
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())
	registry := metrics.NewRegistry(promRegistry)

	// One engine instance for the whole process, passed by reference into
	// every layer that needs it.
	eng := engine.New(engine.Options{Logger: logger, Metrics: registry})

	br := bridge.New(bridge.Options{
		Timeout: cfg.BridgeTimeout,
		Logger:  logger,
		Metrics: registry,
	})
	if cfg.BridgeListen != "" {
		channel, err := bridge.ListenSocket(cfg.BridgeListen)
		if err != nil {
			logger.Error("failed to start bridge listener", logging.Err(err))
			os.Exit(1)
		}
		if err := br.Connect(channel); err != nil {
			logger.Error("failed to connect bridge channel", logging.Err(err))
			os.Exit(1)
		}
	}

	server := api.NewServer(eng, logger, promRegistry, cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("api server failed", logging.Err(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", logging.Err(err))
	}
	br.Disconnect()
}
