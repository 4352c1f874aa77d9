// apiserver runs the MolForge HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/turtacn/molforge/internal/application/generator"
	"github.com/turtacn/molforge/internal/application/runs"
	"github.com/turtacn/molforge/internal/config"
	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/internal/domain/library"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	promm "github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/molforge/internal/interfaces/http"
	"github.com/turtacn/molforge/internal/render"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: outputPaths(cfg.Log.Output),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("apiserver exited", logging.Err(err))
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	toolkit := chem.NewToolkit(render.NewRenderer())

	lib, err := library.WithOverrides(cfg.Library.Fragments, cfg.Library.Linkers)
	if err != nil {
		return err
	}
	report := lib.Validate(toolkit)
	if len(report.InvalidFragments) > 0 {
		logger.Warn("library contains unparseable fragments",
			logging.String("fragments", strings.Join(report.InvalidFragments, ", ")))
	}
	if len(report.InvalidLinkers) > 0 {
		logger.Warn("library contains inert linkers",
			logging.String("linkers", strings.Join(report.InvalidLinkers, ", ")))
	}

	collector := promm.NewCollector()
	genMetrics := promm.NewGenerationMetrics(collector.Registry())

	serviceOpts := []generator.Option{
		generator.WithLogger(logger.Named("generator")),
		generator.WithMetrics(genMetrics),
	}
	if cfg.Generation.Seed != 0 {
		serviceOpts = append(serviceOpts, generator.WithSeed(cfg.Generation.Seed))
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Config:     cfg,
		Toolkit:    toolkit,
		Service:    generator.NewService(toolkit, serviceOpts...),
		Store:      runs.NewStore(),
		Library:    lib,
		Logger:     logger.Named("http"),
		Collector:  collector,
		GenMetrics: genMetrics,
		Version:    version,
	})

	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
		return server.Stop(context.Background())
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func outputPaths(output string) []string {
	if output == "" {
		return nil
	}
	return []string{output}
}
