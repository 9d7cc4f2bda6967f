// Command thetagen synthesizes focal-label datasets for theta-grid planning.
//
// Usage:
//
//	thetagen [--config cfg.yaml] [--seed N] [--workers N] [--output-dir DIR]
//	         [--metrics-addr :9090] [--log-format json|text] [--log-level info]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/katalvlaran/thetafocal/config"
	"github.com/katalvlaran/thetafocal/dataset"
	"github.com/katalvlaran/thetafocal/metrics"
	"github.com/katalvlaran/thetafocal/output"
	"github.com/katalvlaran/thetafocal/preview"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "Root RNG seed (0 = use config)")
	workers := flag.Int("workers", -1, "Worker goroutines (-1 = use config, 0 = one per CPU)")
	outputDir := flag.String("output-dir", "", "Output directory (empty = use config)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus listen address (empty = use config)")
	logFormat := flag.String("log-format", "json", "Log format: json or text")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	logger, err := newLogger(*logFormat, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI overrides
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the slog logger selected by the flags.
func newLogger(format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want json or text)", format)
	}
}

// run generates every split and writes it out.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logger.Error("metrics endpoint stopped", "error", err)
			}
		}()
		logger.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}

	w, err := output.NewWriter(cfg.Output.Dir)
	if err != nil {
		return err
	}
	if err := w.WriteConfig(cfg); err != nil {
		return err
	}

	gen, err := dataset.NewGenerator(cfg,
		dataset.WithLogger(logger),
		dataset.WithObserver(metrics.Recorder{}),
	)
	if err != nil {
		return err
	}

	logger.Info("starting generation",
		"seed", cfg.Seed,
		"workers", cfg.Derived.Workers,
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"blocked_probability", cfg.Grid.BlockedProbability,
		"output", w.Dir(),
	)
	started := time.Now()

	for i, split := range cfg.Splits {
		batch, err := gen.Generate(ctx, i)
		if err != nil {
			return fmt.Errorf("split %q: %w", split.Name, err)
		}
		if err := w.WriteBatch(batch); err != nil {
			return err
		}
		if cfg.Output.Manifest {
			if err := w.WriteManifest(batch); err != nil {
				return err
			}
		}
		if err := w.WritePreviews(batch, cfg.Output.Previews, preview.Options{Scale: cfg.Output.PreviewScale}); err != nil {
			return err
		}
		logger.Info("split written", "split", split.Name, "dir", w.SplitDir(split.Name))
	}

	logger.Info("generation complete", "elapsed", time.Since(started))
	return nil
}
