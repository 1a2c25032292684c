package corpus

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-cogs/lf"
	"github.com/jamesainslie/go-cogs/parser"
)

// Instance is a row with its sentence tokenized and its logical form
// parsed.
type Instance struct {
	Row
	Form   *lf.LogicalForm
	tokens []string
}

// NewInstance parses the row's logical form with p.
func NewInstance(p *parser.Parser, row Row) *Instance {
	return &Instance{
		Row:    row,
		Form:   lf.Parse(p, row.LogicalForm),
		tokens: strings.Fields(row.Sentence),
	}
}

// SentenceTokens returns the whitespace tokens of the sentence.
func (i *Instance) SentenceTokens() []string { return i.tokens }

// SentenceLength returns the number of sentence tokens.
func (i *Instance) SentenceLength() int { return len(i.tokens) }

// SameSentence reports whether both instances describe the same sentence.
func (i *Instance) SameSentence(o *Instance) bool {
	if len(i.tokens) != len(o.tokens) {
		return false
	}
	return i.Sentence == o.Sentence
}

// Pair is a gold instance with the system prediction for the same line.
type Pair struct {
	Gold   *Instance
	System *Instance
}

// ParsePairs aligns gold and system rows by position and parses both
// sides with up to workers goroutines. Pair order follows row order.
// Sentences are not compared here.
func ParsePairs(ctx context.Context, p *parser.Parser, gold, system []Row, workers int) ([]Pair, error) {
	if len(gold) != len(system) {
		return nil, fmt.Errorf("%w: %d gold, %d system", ErrLengthMismatch, len(gold), len(system))
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	pairs := make([]Pair, len(gold))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range gold {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pairs[i] = Pair{
				Gold:   NewInstance(p, gold[i]),
				System: NewInstance(p, system[i]),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// LoadPairs reads a gold and a system TSV file and parses them into pairs.
func LoadPairs(ctx context.Context, p *parser.Parser, goldPath, systemPath string, workers int) ([]Pair, error) {
	gold, err := ReadRowsFile(goldPath)
	if err != nil {
		return nil, err
	}
	system, err := ReadRowsFile(systemPath)
	if err != nil {
		return nil, err
	}
	return ParsePairs(ctx, p, gold, system, workers)
}

// LoadOpenNMT reads an OpenNMT output file and parses it into pairs.
func LoadOpenNMT(ctx context.Context, p *parser.Parser, path string, workers int) ([]Pair, error) {
	gold, system, err := ReadOpenNMTFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePairs(ctx, p, gold, system, workers)
}
