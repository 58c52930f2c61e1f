// Command elevate turns a path export into a distance/elevation profile table.
//
// Configuration is read from the environment; see internal/config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/elevation-profile-etl/internal/adapter/chart"
	"github.com/couchcryptid/elevation-profile-etl/internal/adapter/file"
	"github.com/couchcryptid/elevation-profile-etl/internal/adapter/googleelevation"
	kafkaadapter "github.com/couchcryptid/elevation-profile-etl/internal/adapter/kafka"
	"github.com/couchcryptid/elevation-profile-etl/internal/config"
	"github.com/couchcryptid/elevation-profile-etl/internal/observability"
	"github.com/couchcryptid/elevation-profile-etl/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, logger, metrics, reg)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, reg prometheus.Gatherer) int {
	clock := clockwork.NewRealClock()
	client := googleelevation.NewClient(cfg.APIKey, cfg.ElevationAPIURL, cfg.ElevationTimeout, metrics, logger, clock)

	sinks, closers := buildSinks(cfg, logger)
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Error("sink close error", "error", err)
			}
		}
	}()

	p := pipeline.New(file.Reader{}, client, file.CSVWriter{}, sinks, logger, metrics, clock)
	_, runErr := p.Run(ctx, pipeline.Params{InputPath: cfg.InputPath, OutputPath: cfg.OutputPath})

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, reg); err != nil {
			logger.Error("metrics textfile write failed", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("pipeline failed", "error", runErr)
		return 1
	}
	return 0
}

type closer interface {
	Close() error
}

// buildSinks returns the optional profile outputs enabled in cfg, in the
// order they run, and anything that must be closed afterwards.
func buildSinks(cfg *config.Config, logger *slog.Logger) ([]pipeline.Sink, []closer) {
	var (
		sinks   []pipeline.Sink
		closers []closer
	)
	if cfg.ChartPNGPath != "" {
		sinks = append(sinks, pipeline.Sink{Name: "chart_png", Loader: chart.NewPNGRenderer(cfg.ChartPNGPath)})
	}
	if cfg.ChartHTMLPath != "" {
		sinks = append(sinks, pipeline.Sink{Name: "chart_html", Loader: chart.NewHTMLRenderer(cfg.ChartHTMLPath)})
	}
	if cfg.KafkaEnabled() {
		w := kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, pipeline.Sink{Name: "kafka", Loader: w})
		closers = append(closers, w)
		logger.Info("kafka profile sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	return sinks, closers
}
