// Package bench runs end-to-end evaluations of system output files.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cogs "github.com/jamesainslie/go-cogs"
	"github.com/jamesainslie/go-cogs/corpus"
	"github.com/jamesainslie/go-cogs/internal/config"
	"github.com/jamesainslie/go-cogs/parser"
)

// ErrNoInput indicates an Input with neither a gold/system pair nor an
// OpenNMT file.
var ErrNoInput = errors.New("bench: no input files")

// Input names the files of one evaluation: either Gold and System TSV
// files, or a single OpenNMT output file.
type Input struct {
	Gold    string
	System  string
	OpenNMT string
}

// Load reads and parses the input into pairs.
func (in Input) Load(ctx context.Context, p *parser.Parser, workers int) ([]corpus.Pair, error) {
	switch {
	case in.OpenNMT != "":
		return corpus.LoadOpenNMT(ctx, p, in.OpenNMT, workers)
	case in.Gold != "" && in.System != "":
		return corpus.LoadPairs(ctx, p, in.Gold, in.System, workers)
	}
	return nil, ErrNoInput
}

// GoldName labels the gold side of the input in summaries.
func (in Input) GoldName() string {
	if in.OpenNMT != "" {
		return in.OpenNMT
	}
	return in.Gold
}

// SystemName labels the system side of the input in summaries.
func (in Input) SystemName() string {
	if in.OpenNMT != "" {
		return in.OpenNMT
	}
	return in.System
}

// Run evaluates one input with the metrics cfg selects, parsing with p.
// each, if non-nil, sees every scored pair in order.
func Run(ctx context.Context, p *parser.Parser, cfg config.Config, in Input, each func(cogs.Sample), logger *slog.Logger) (*cogs.Evaluator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	avg, err := cfg.AveragingMode()
	if err != nil {
		return nil, err
	}
	ev, err := cogs.New(
		cogs.WithMetricKeys(cfg.Metrics...),
		cogs.WithAveraging(avg),
		cogs.WithSkipMismatched(cfg.SkipMismatched),
		cogs.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	pairs, err := in.Load(ctx, p, cfg.Workers)
	if err != nil {
		return nil, err
	}
	logger.Debug("pairs loaded", "gold", in.GoldName(), "system", in.SystemName(), "count", len(pairs))

	if err := ev.Run(ctx, pairs, each); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", in.SystemName(), err)
	}
	return ev, nil
}
