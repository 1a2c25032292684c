package metrics

import (
	"github.com/samber/lo"

	"github.com/jamesainslie/go-cogs/lf"
)

// ExactMatch scores 1 when the system string equals the gold string
// verbatim, whitespace included.
type ExactMatch struct{ mean }

// NewExactMatch returns an empty ExactMatch.
func NewExactMatch() *ExactMatch { return &ExactMatch{} }

func (*ExactMatch) Key() string          { return "exact_match" }
func (*ExactMatch) Name() string         { return "Exact match accuracy" }
func (*ExactMatch) Abbreviation() string { return "EM" }
func (*ExactMatch) IsRatio() bool        { return true }
func (*ExactMatch) metric()              {}

// Update compares the source strings. It never fails.
func (m *ExactMatch) Update(gold, system *lf.LogicalForm) (float64, error) {
	return m.add(boolScore(gold.String() == system.String())), nil
}

// WellFormedness scores 1 when the system logical form parses.
type WellFormedness struct{ mean }

// NewWellFormedness returns an empty WellFormedness.
func NewWellFormedness() *WellFormedness { return &WellFormedness{} }

func (*WellFormedness) Key() string          { return "well_formedness" }
func (*WellFormedness) Name() string         { return "Well-formedness percentage" }
func (*WellFormedness) Abbreviation() string { return "WF" }
func (*WellFormedness) IsRatio() bool        { return true }
func (*WellFormedness) metric()              {}

// Update scores whether system parsed. It fails on ill-formed gold.
func (m *WellFormedness) Update(gold, system *lf.LogicalForm) (float64, error) {
	if err := requireGold(gold); err != nil {
		return 0, err
	}
	return m.add(boolScore(system.IsWellFormed())), nil
}

// OrderInvariantExactMatch scores 1 when the system formula has the gold
// type and, ignoring order and duplicates, the same prefix elements and the
// same conjunction terms. Names must be equal. Moving a term between the
// prefix and the conjunction is a mismatch.
type OrderInvariantExactMatch struct{ mean }

// NewOrderInvariantExactMatch returns an empty OrderInvariantExactMatch.
func NewOrderInvariantExactMatch() *OrderInvariantExactMatch {
	return &OrderInvariantExactMatch{}
}

func (*OrderInvariantExactMatch) Key() string          { return "order_invariant_exact_match" }
func (*OrderInvariantExactMatch) Name() string         { return "Order-invariant exact match accuracy" }
func (*OrderInvariantExactMatch) Abbreviation() string { return "OIEM" }
func (*OrderInvariantExactMatch) IsRatio() bool        { return true }
func (*OrderInvariantExactMatch) metric()              {}

// Update compares the formulas as sets. An ill-formed system scores 0;
// ill-formed gold is an error.
func (m *OrderInvariantExactMatch) Update(gold, system *lf.LogicalForm) (float64, error) {
	if err := requireGold(gold); err != nil {
		return 0, err
	}
	if !system.IsWellFormed() {
		return m.add(0), nil
	}
	g, _ := gold.Formula()
	s, _ := system.Formula()
	return m.add(boolScore(sameFormula(g, s))), nil
}

func sameFormula(g, s lf.Formula) bool {
	if g.Kind() != s.Kind() {
		return false
	}
	switch g := g.(type) {
	case lf.Name:
		return g.Value == s.(lf.Name).Value
	case lf.LambdaForm:
		s := s.(lf.LambdaForm)
		return sameSet(g.Vars, s.Vars) && sameSet(g.Conjunction, s.Conjunction)
	case lf.IotaForm:
		s := s.(lf.IotaForm)
		return sameSet(g.Iotas, s.Iotas) && sameSet(g.Conjunction, s.Conjunction)
	}
	return false
}

// sameSet reports whether a and b hold the same elements, ignoring order
// and multiplicity.
func sameSet[T comparable](a, b []T) bool {
	ua, ub := lo.Uniq(a), lo.Uniq(b)
	return len(ua) == len(ub) && lo.Every(ua, ub)
}
