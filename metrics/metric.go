// Package metrics scores predicted logical forms against gold ones.
//
// Every metric is a small accumulator. Update scores one gold/system pair
// and returns the per-sample score; Score returns the aggregate over all
// pairs seen so far. Metrics never reset: build a fresh set per evaluation
// run. Update is not safe for concurrent use.
//
// The set of metrics is closed. ExactMatch, WellFormedness,
// OrderInvariantExactMatch, TokenEditDistance and the generic PRF1 are the
// only implementations of Metric.
package metrics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamesainslie/go-cogs/lf"
)

var (
	// ErrGoldIllFormed is returned by structural metrics when the gold
	// logical form does not parse. Gold data is assumed curated, so this
	// is fatal for a run.
	ErrGoldIllFormed = errors.New("metrics: gold logical form is ill-formed")

	// ErrUnknownMetric is returned by FromKey for an unregistered key.
	ErrUnknownMetric = errors.New("metrics: unknown metric")

	// ErrUnknownAveraging is returned by ParseAveraging.
	ErrUnknownAveraging = errors.New("metrics: unknown averaging mode")
)

// Metric is one evaluation measure.
type Metric interface {
	// Key is the stable machine name, e.g. "exact_match".
	Key() string
	// Name is the human readable name printed in summaries.
	Name() string
	// Abbreviation is a short (at most six characters) column header.
	Abbreviation() string
	// IsRatio reports whether Score is a proportion in [0, 1]. Ratio
	// metrics are printed as percentages.
	IsRatio() bool
	// Update scores one pair and folds it into the aggregate.
	Update(gold, system *lf.LogicalForm) (float64, error)
	// Score returns the aggregate. It is 0 before any update.
	Score() float64
	// Seen returns the number of successful updates.
	Seen() int

	metric()
}

// mean accumulates per-sample scores and averages them.
type mean struct {
	total int
	sum   float64
}

func (m *mean) add(v float64) float64 {
	m.total++
	m.sum += v
	return v
}

func (m *mean) Score() float64 {
	if m.total == 0 {
		return 0
	}
	return m.sum / float64(m.total)
}

func (m *mean) Seen() int { return m.total }

func requireGold(gold *lf.LogicalForm) error {
	if !gold.IsWellFormed() {
		return fmt.Errorf("%w: %q", ErrGoldIllFormed, gold.String())
	}
	return nil
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Averaging selects how PRF1 metrics aggregate over samples.
type Averaging int

const (
	// Macro averages per-sample scores.
	Macro Averaging = iota
	// Micro sums raw counts over all samples and scores once.
	Micro
)

func (a Averaging) String() string {
	switch a {
	case Macro:
		return "macro"
	case Micro:
		return "micro"
	}
	return fmt.Sprintf("Averaging(%d)", int(a))
}

// ParseAveraging converts "micro" or "macro" (case-insensitive).
func ParseAveraging(s string) (Averaging, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "macro":
		return Macro, nil
	case "micro":
		return Micro, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAveraging, s)
}

// DefaultKeys are the metrics evaluated when none are configured.
var DefaultKeys = []string{
	"exact_match",
	"well_formedness",
	"order_invariant_exact_match",
	"token_edit_distance",
	"term_f1",
	"predicate_f1",
	"argument_f1",
}

type constructor func(Averaging) Metric

var registry = map[string]constructor{
	"exact_match":                 func(Averaging) Metric { return NewExactMatch() },
	"well_formedness":             func(Averaging) Metric { return NewWellFormedness() },
	"order_invariant_exact_match": func(Averaging) Metric { return NewOrderInvariantExactMatch() },
	"token_edit_distance":         func(Averaging) Metric { return NewTokenEditDistance() },
}

func init() {
	for _, s := range []Scalar{Precision, Recall, F1} {
		registry["term_"+s.key()] = func(a Averaging) Metric { return NewTermPRF1(s, a) }
		registry["predicate_"+s.key()] = func(a Averaging) Metric { return NewPredicateNamePRF1(s, a) }
		registry["argument_"+s.key()] = func(a Averaging) Metric { return NewArgumentPRF1(s, a) }
	}
}

// Keys returns every registered metric key in a stable order.
func Keys() []string {
	keys := []string{
		"exact_match",
		"well_formedness",
		"order_invariant_exact_match",
		"token_edit_distance",
	}
	for _, family := range []string{"term", "predicate", "argument"} {
		for _, s := range []Scalar{Precision, Recall, F1} {
			keys = append(keys, family+"_"+s.key())
		}
	}
	return keys
}

// FromKey builds a fresh metric by key. avg only affects PRF1 metrics.
func FromKey(key string, avg Averaging) (Metric, error) {
	c, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return c(avg), nil
}

// FromKeys builds one fresh metric per key, in order.
func FromKeys(keys []string, avg Averaging) ([]Metric, error) {
	out := make([]Metric, 0, len(keys))
	for _, k := range keys {
		m, err := FromKey(k, avg)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
