package metrics

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-cogs/lf"
)

// Scalar selects which of precision, recall and F1 a PRF1 metric reports.
type Scalar int

const (
	Precision Scalar = iota // true positives over predicted items
	Recall                  // true positives over gold items
	F1                      // harmonic mean of precision and recall
)

func (s Scalar) String() string {
	switch s {
	case Precision:
		return "precision"
	case Recall:
		return "recall"
	case F1:
		return "F1"
	}
	return fmt.Sprintf("Scalar(%d)", int(s))
}

func (s Scalar) key() string {
	switch s {
	case Precision:
		return "precision"
	case Recall:
		return "recall"
	}
	return "f1"
}

func (s Scalar) abbr() string {
	switch s {
	case Precision:
		return "P"
	case Recall:
		return "R"
	}
	return "F1"
}

// Counts are the raw set-overlap counts behind precision and recall.
// Counts from independent samples add up, so partial results computed in
// parallel can be merged with Add.
type Counts struct {
	TruePositives int
	Predicted     int
	Gold          int
}

// Add returns the element-wise sum.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		TruePositives: c.TruePositives + o.TruePositives,
		Predicted:     c.Predicted + o.Predicted,
		Gold:          c.Gold + o.Gold,
	}
}

// Precision is TruePositives/Predicted, 0 when nothing was predicted.
func (c Counts) Precision() float64 { return ratio(c.TruePositives, c.Predicted) }

// Recall is TruePositives/Gold, 0 for an empty gold set.
func (c Counts) Recall() float64 { return ratio(c.TruePositives, c.Gold) }

// F1 is the harmonic mean of Precision and Recall.
func (c Counts) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Scalar returns the selected score.
func (c Counts) Scalar(s Scalar) float64 {
	switch s {
	case Precision:
		return c.Precision()
	case Recall:
		return c.Recall()
	}
	return c.F1()
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Extractor projects a well-formed logical form onto the items a PRF1
// metric compares.
type Extractor[T comparable] func(*lf.LogicalForm) ([]T, error)

// Overlap counts the set overlap of gold and predicted items. Duplicates on
// either side collapse.
func Overlap[T comparable](gold, predicted []T) Counts {
	g, p := lo.Uniq(gold), lo.Uniq(predicted)
	tp := lo.CountBy(p, func(item T) bool { return lo.Contains(g, item) })
	return Counts{TruePositives: tp, Predicted: len(p), Gold: len(g)}
}

// PRF1 is precision, recall or F1 over the item sets produced by an
// Extractor. An ill-formed prediction scores 0 for the sample; under micro
// averaging it counts as an empty predicted set.
type PRF1[T comparable] struct {
	mean
	key       string
	name      string
	abbr      string
	extract   Extractor[T]
	scalar    Scalar
	averaging Averaging
	counts    Counts
}

// NewPRF1 builds a PRF1 metric. family names the extracted items in the
// key, name and abbreviation ("term" gives "term_f1", "Term F1 (macro)"
// and "TF1ma").
func NewPRF1[T comparable](family, familyAbbr string, extract Extractor[T], s Scalar, a Averaging) *PRF1[T] {
	return &PRF1[T]{
		key:       family + "_" + s.key(),
		name:      fmt.Sprintf("%s %s (%s)", capitalize(family), s, a),
		abbr:      familyAbbr + s.abbr() + a.String()[:2],
		extract:   extract,
		scalar:    s,
		averaging: a,
	}
}

// NewTermPRF1 compares the terms of the two forms, iota assertions
// included.
func NewTermPRF1(s Scalar, a Averaging) *PRF1[lf.Term] {
	return NewPRF1[lf.Term]("term", "T", (*lf.LogicalForm).Terms, s, a)
}

// NewPredicateNamePRF1 compares predicate names.
func NewPredicateNamePRF1(s Scalar, a Averaging) *PRF1[lf.Predicate] {
	return NewPRF1[lf.Predicate]("predicate", "PN", (*lf.LogicalForm).PredicateNames, s, a)
}

// NewArgumentPRF1 compares term arguments.
func NewArgumentPRF1(s Scalar, a Averaging) *PRF1[lf.Argument] {
	return NewPRF1[lf.Argument]("argument", "A", (*lf.LogicalForm).Arguments, s, a)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func (m *PRF1[T]) Key() string          { return m.key }
func (m *PRF1[T]) Name() string         { return m.name }
func (m *PRF1[T]) Abbreviation() string { return m.abbr }
func (m *PRF1[T]) IsRatio() bool        { return true }
func (m *PRF1[T]) metric()              {}

// Counts returns the summed counts over all samples.
func (m *PRF1[T]) Counts() Counts { return m.counts }

// Update scores the overlap of the extracted item sets. It fails on
// ill-formed gold.
func (m *PRF1[T]) Update(gold, system *lf.LogicalForm) (float64, error) {
	if err := requireGold(gold); err != nil {
		return 0, err
	}
	goldItems, err := m.extract(gold)
	if err != nil {
		return 0, err
	}
	var c Counts
	if system.IsWellFormed() {
		sysItems, err := m.extract(system)
		if err != nil {
			return 0, err
		}
		c = Overlap(goldItems, sysItems)
	} else {
		c = Counts{Gold: len(lo.Uniq(goldItems))}
	}
	m.counts = m.counts.Add(c)
	return m.add(c.Scalar(m.scalar)), nil
}

// Score returns the macro mean of per-sample scores, or under micro
// averaging the score of the summed counts.
func (m *PRF1[T]) Score() float64 {
	if m.averaging == Micro {
		return m.counts.Scalar(m.scalar)
	}
	return m.mean.Score()
}
