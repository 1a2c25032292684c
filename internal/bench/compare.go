package bench

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	cogs "github.com/jamesainslie/go-cogs"
	"github.com/jamesainslie/go-cogs/internal/config"
	"github.com/jamesainslie/go-cogs/metrics"
	"github.com/jamesainslie/go-cogs/parser"
)

// Ranking holds the results of one system in a comparison.
type Ranking struct {
	System  string
	Seen    int
	Skipped int
	Results []cogs.Result
	Score   float64 // value of the ranking metric
}

// Compare evaluates every system file against the same gold file, sharing
// p, and returns them best first by the metric key. Ratio metrics rank
// descending; edit distance ranks ascending.
func Compare(ctx context.Context, p *parser.Parser, cfg config.Config, gold string, systems []string, key string, logger *slog.Logger) ([]Ranking, error) {
	if !slices.Contains(cfg.Metrics, key) {
		return nil, fmt.Errorf("%w: ranking key %q is not among the evaluated metrics", metrics.ErrUnknownMetric, key)
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		rankings []Ranking
		ratio    = true
	)
	for _, system := range systems {
		ev, err := Run(ctx, p, cfg, Input{Gold: gold, System: system}, nil, logger)
		if err != nil {
			return nil, err
		}
		r := Ranking{
			System:  system,
			Seen:    ev.Seen(),
			Skipped: ev.Skipped(),
			Results: ev.Results(),
		}
		for _, res := range r.Results {
			if res.Key == key {
				r.Score = res.Score
				ratio = res.Ratio
			}
		}
		logger.Debug("system evaluated", "system", system, key, r.Score)
		rankings = append(rankings, r)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if ratio {
			return rankings[i].Score > rankings[j].Score
		}
		return rankings[i].Score < rankings[j].Score
	})
	return rankings, nil
}
