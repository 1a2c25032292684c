package cogs

import (
	"log/slog"

	"github.com/jamesainslie/go-cogs/metrics"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	keys           []string
	averaging      metrics.Averaging
	metrics        []metrics.Metric
	skipMismatched bool
	logger         *slog.Logger
}

func defaultConfig() config {
	return config{
		keys:      metrics.DefaultKeys,
		averaging: metrics.Macro,
		logger:    slog.Default(),
	}
}

// WithMetricKeys selects metrics by key (default: metrics.DefaultKeys).
func WithMetricKeys(keys ...string) Option {
	return func(c *config) {
		if len(keys) > 0 {
			c.keys = keys
		}
	}
}

// WithAveraging sets the averaging of PRF1 metrics built from keys
// (default: macro).
func WithAveraging(a metrics.Averaging) Option {
	return func(c *config) {
		c.averaging = a
	}
}

// WithMetrics uses the given metric instances instead of building them
// from keys. The instances must be fresh.
func WithMetrics(ms ...metrics.Metric) Option {
	return func(c *config) {
		c.metrics = append([]metrics.Metric{}, ms...)
	}
}

// WithSkipMismatched makes Run log and skip pairs whose sentences differ
// instead of failing.
func WithSkipMismatched(skip bool) Option {
	return func(c *config) {
		c.skipMismatched = skip
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
