package cogs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jamesainslie/go-cogs/corpus"
	"github.com/jamesainslie/go-cogs/metrics"
)

// Evaluator feeds gold/system pairs to a fixed list of metrics.
type Evaluator struct {
	metrics        []metrics.Metric
	skipMismatched bool
	logger         *slog.Logger
	seen           int
	skipped        int
}

// Sample is the outcome of one evaluated pair. Scores is parallel to
// Evaluator.Metrics.
type Sample struct {
	Gold   *corpus.Instance
	System *corpus.Instance
	Scores []float64
}

// Result is the aggregate score of one metric.
type Result struct {
	Key          string
	Name         string
	Abbreviation string
	Score        float64
	Ratio        bool
}

// New creates an Evaluator.
func New(opts ...Option) (*Evaluator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ms := cfg.metrics
	if ms == nil {
		var err error
		ms, err = metrics.FromKeys(cfg.keys, cfg.averaging)
		if err != nil {
			return nil, err
		}
	}
	if len(ms) == 0 {
		return nil, ErrNoMetrics
	}

	return &Evaluator{
		metrics:        ms,
		skipMismatched: cfg.skipMismatched,
		logger:         cfg.logger,
	}, nil
}

// Metrics returns the evaluated metrics in order.
func (e *Evaluator) Metrics() []metrics.Metric { return e.metrics }

// Seen returns the number of evaluated pairs.
func (e *Evaluator) Seen() int { return e.seen }

// Skipped returns the number of pairs skipped for differing sentences.
func (e *Evaluator) Skipped() int { return e.skipped }

// Update scores one pair with every metric. The sentences and the gold
// form are checked first; on mismatch or ill-formed gold no metric is
// touched.
func (e *Evaluator) Update(pair corpus.Pair) (Sample, error) {
	if !pair.Gold.SameSentence(pair.System) {
		return Sample{}, fmt.Errorf("%w: line %d: %q vs %q",
			ErrSentenceMismatch, pair.Gold.Line, pair.Gold.Sentence, pair.System.Sentence)
	}
	if !pair.Gold.Form.IsWellFormed() {
		return Sample{}, fmt.Errorf("line %d: %w: %q: %v",
			pair.Gold.Line, metrics.ErrGoldIllFormed, pair.Gold.LogicalForm, pair.Gold.Form.Err())
	}

	s := Sample{Gold: pair.Gold, System: pair.System, Scores: make([]float64, len(e.metrics))}
	for i, m := range e.metrics {
		score, err := m.Update(pair.Gold.Form, pair.System.Form)
		if err != nil {
			return Sample{}, fmt.Errorf("line %d: %s: %w", pair.Gold.Line, m.Key(), err)
		}
		s.Scores[i] = score
	}
	e.seen++

	if !pair.System.Form.IsWellFormed() {
		e.logger.Debug("ill-formed prediction",
			"line", pair.System.Line,
			"error", pair.System.Form.Err())
	}
	return s, nil
}

// Run evaluates pairs in order, calling each (if non-nil) after every
// scored pair. Mismatched pairs fail the run unless skipping is enabled.
func (e *Evaluator) Run(ctx context.Context, pairs []corpus.Pair, each func(Sample)) error {
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := e.Update(pair)
		if err != nil {
			if e.skipMismatched && errors.Is(err, ErrSentenceMismatch) {
				e.skipped++
				e.logger.Warn("skipping pair with different sentences",
					"line", pair.Gold.Line,
					"gold", pair.Gold.Sentence,
					"system", pair.System.Sentence)
				continue
			}
			return err
		}
		if each != nil {
			each(s)
		}
	}
	e.logger.Debug("evaluation finished", "seen", e.seen, "skipped", e.skipped)
	return nil
}

// Results returns the aggregate score of every metric, in metric order.
func (e *Evaluator) Results() []Result {
	out := make([]Result, len(e.metrics))
	for i, m := range e.metrics {
		out[i] = Result{
			Key:          m.Key(),
			Name:         m.Name(),
			Abbreviation: m.Abbreviation(),
			Score:        m.Score(),
			Ratio:        m.IsRatio(),
		}
	}
	return out
}

// Scores returns the aggregate scores keyed by metric key.
func (e *Evaluator) Scores() map[string]float64 {
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Key()] = m.Score()
	}
	return out
}
