// Package lf models parsed logical forms.
//
// A LogicalForm is built once from its source string and never changes. It
// always exists, even for text that does not parse: IsWellFormed reports the
// outcome and Err carries the syntax error. Structural accessors on an
// ill-formed LogicalForm return ErrIllFormedAccess; callers check
// IsWellFormed first.
//
//	p := parser.New()
//	form := lf.Parse(p, "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )")
//	if form.IsWellFormed() {
//	    terms, _ := form.Terms()
//	    fmt.Println(terms)
//	}
package lf

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-cogs/parser"
)

var (
	// ErrIllFormedAccess is returned by structural accessors called on an
	// ill-formed logical form.
	ErrIllFormedAccess = errors.New("lf: structural access to ill-formed logical form")

	// ErrMalformedTree indicates a parse tree that does not follow the
	// grammar's shape.
	ErrMalformedTree = errors.New("lf: malformed parse tree")
)

// LogicalForm is a logical-form string together with its parse outcome.
type LogicalForm struct {
	source  string
	tokens  []string
	formula Formula
	err     error
}

// Parse parses s with p. It never fails: a string that does not parse gives
// an ill-formed LogicalForm.
func Parse(p *parser.Parser, s string) *LogicalForm {
	l := &LogicalForm{source: s, tokens: strings.Fields(s)}
	tree, err := p.Parse(s)
	if err != nil {
		l.err = err
		return l
	}
	f, err := Transform(tree)
	if err != nil {
		l.err = err
		return l
	}
	l.formula = f
	return l
}

// FromFormula wraps an already built formula. source is kept verbatim for
// string comparisons.
func FromFormula(source string, f Formula) *LogicalForm {
	return &LogicalForm{source: source, tokens: strings.Fields(source), formula: cloneFormula(f)}
}

// String returns the source string verbatim.
func (l *LogicalForm) String() string { return l.source }

// Tokens returns a copy of the whitespace-separated tokens of the source
// string.
func (l *LogicalForm) Tokens() []string { return slices.Clone(l.tokens) }

// IsWellFormed reports whether the source parsed.
func (l *LogicalForm) IsWellFormed() bool { return l.formula != nil }

// Err returns the parse failure of an ill-formed form, or nil.
func (l *LogicalForm) Err() error { return l.err }

func (l *LogicalForm) check(op string) error {
	if l.formula == nil {
		return fmt.Errorf("%w: %s on %q", ErrIllFormedAccess, op, l.source)
	}
	return nil
}

// Formula returns the parsed structure.
func (l *LogicalForm) Formula() (Formula, error) {
	if err := l.check("Formula"); err != nil {
		return nil, err
	}
	return cloneFormula(l.formula), nil
}

// TypeOfFormula returns the formula's variant.
func (l *LogicalForm) TypeOfFormula() (Kind, error) {
	if err := l.check("TypeOfFormula"); err != nil {
		return 0, err
	}
	return l.formula.Kind(), nil
}

// Name returns the proper name of a Name formula and "" otherwise.
func (l *LogicalForm) Name() (string, error) {
	if err := l.check("Name"); err != nil {
		return "", err
	}
	if n, ok := l.formula.(Name); ok {
		return n.Value, nil
	}
	return "", nil
}

// Iotas returns the iota prefix of an IotaForm and nil otherwise.
func (l *LogicalForm) Iotas() ([]Iota, error) {
	if err := l.check("Iotas"); err != nil {
		return nil, err
	}
	if f, ok := l.formula.(IotaForm); ok {
		return slices.Clone(f.Iotas), nil
	}
	return nil, nil
}

// Lambdas returns the bound symbols of a LambdaForm and nil otherwise.
func (l *LogicalForm) Lambdas() ([]string, error) {
	if err := l.check("Lambdas"); err != nil {
		return nil, err
	}
	if f, ok := l.formula.(LambdaForm); ok {
		return slices.Clone(f.Vars), nil
	}
	return nil, nil
}

// Conjuncts returns the conjunction terms, nil for a Name.
func (l *LogicalForm) Conjuncts() ([]Term, error) {
	if err := l.check("Conjuncts"); err != nil {
		return nil, err
	}
	switch f := l.formula.(type) {
	case IotaForm:
		return slices.Clone(f.Conjunction), nil
	case LambdaForm:
		return slices.Clone(f.Conjunction), nil
	}
	return nil, nil
}

// Terms returns the iota assertions (as unary terms) followed by the
// conjunction terms.
func (l *LogicalForm) Terms() ([]Term, error) {
	if err := l.check("Terms"); err != nil {
		return nil, err
	}
	iotas, _ := l.Iotas()
	conj, _ := l.Conjuncts()
	terms := make([]Term, 0, len(iotas)+len(conj))
	for _, i := range iotas {
		terms = append(terms, i.Term())
	}
	return append(terms, conj...), nil
}

// PredicateNames returns the predicate of every term, in term order.
func (l *LogicalForm) PredicateNames() ([]Predicate, error) {
	terms, err := l.Terms()
	if err != nil {
		return nil, err
	}
	return lo.Map(terms, func(t Term, _ int) Predicate { return t.Pred }), nil
}

// Arguments returns the arguments of every term, flattened in term order.
func (l *LogicalForm) Arguments() ([]Argument, error) {
	terms, err := l.Terms()
	if err != nil {
		return nil, err
	}
	return lo.FlatMap(terms, func(t Term, _ int) []Argument { return t.Arguments() }), nil
}
