package lf

import (
	"fmt"
	"strconv"

	"github.com/jamesainslie/go-cogs/parser"
)

// Transform folds a parse tree produced by parser.Parse into a Formula.
// There is one conversion per grammar rule; each works on the already
// converted values of its children. No semantic checks are made.
func Transform(root *parser.Node) (Formula, error) {
	return transformStart(root)
}

func want(n *parser.Node, r parser.Rule, children ...int) error {
	if n == nil || n.Rule != r {
		return fmt.Errorf("%w: expected %s node", ErrMalformedTree, r)
	}
	if len(children) == 0 {
		return nil
	}
	for _, c := range children {
		if len(n.Children) == c {
			return nil
		}
	}
	return fmt.Errorf("%w: %s node with %d children", ErrMalformedTree, r, len(n.Children))
}

// start := (iotas | lambdas) conjuncts | name
func transformStart(n *parser.Node) (Formula, error) {
	if err := want(n, parser.RuleStart, 1, 2); err != nil {
		return nil, err
	}
	if len(n.Children) == 1 {
		name, err := transformName(n.Children[0])
		if err != nil {
			return nil, err
		}
		return Name{Value: name}, nil
	}
	conj, err := transformConjuncts(n.Children[1])
	if err != nil {
		return nil, err
	}
	prefix := n.Children[0]
	switch prefix.Rule {
	case parser.RuleIotas:
		iotas, err := transformIotas(prefix)
		if err != nil {
			return nil, err
		}
		return IotaForm{Iotas: iotas, Conjunction: conj}, nil
	case parser.RuleLambdas:
		vars, err := transformLambdas(prefix)
		if err != nil {
			return nil, err
		}
		return LambdaForm{Vars: vars, Conjunction: conj}, nil
	}
	return nil, fmt.Errorf("%w: unexpected prefix %s", ErrMalformedTree, prefix.Rule)
}

func transformIotas(n *parser.Node) ([]Iota, error) {
	if err := want(n, parser.RuleIotas); err != nil {
		return nil, err
	}
	iotas := make([]Iota, 0, len(n.Children))
	for _, c := range n.Children {
		iota, err := transformIota(c)
		if err != nil {
			return nil, err
		}
		iotas = append(iotas, iota)
	}
	return iotas, nil
}

func transformIota(n *parser.Node) (Iota, error) {
	if err := want(n, parser.RuleIota, 2); err != nil {
		return Iota{}, err
	}
	noun, err := tokenText(n.Children[0])
	if err != nil {
		return Iota{}, err
	}
	v, err := transformVariable(n.Children[1])
	if err != nil {
		return Iota{}, err
	}
	return Iota{Noun: noun, Var: v}, nil
}

func transformLambdas(n *parser.Node) ([]string, error) {
	if err := want(n, parser.RuleLambdas, 1, 2, 3); err != nil {
		return nil, err
	}
	vars := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		v, err := transformLambdaTerm(c)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func transformLambdaTerm(n *parser.Node) (string, error) {
	if err := want(n, parser.RuleLambdaTerm, 1); err != nil {
		return "", err
	}
	return tokenText(n.Children[0])
}

func transformConjuncts(n *parser.Node) ([]Term, error) {
	if err := want(n, parser.RuleConjuncts); err != nil {
		return nil, err
	}
	terms := make([]Term, 0, len(n.Children))
	for _, c := range n.Children {
		t, err := transformConjunct(c)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func transformConjunct(n *parser.Node) (Term, error) {
	if err := want(n, parser.RuleConjunct, 2); err != nil {
		return Term{}, err
	}
	pred, err := transformPredicateName(n.Children[0])
	if err != nil {
		return Term{}, err
	}
	args, err := transformArguments(n.Children[1])
	if err != nil {
		return Term{}, err
	}
	return NewTerm(pred, args...), nil
}

func transformPredicateName(n *parser.Node) (Predicate, error) {
	if err := want(n, parser.RulePredicateName, 1, 2, 3); err != nil {
		return "", err
	}
	var pred string
	for i, c := range n.Children {
		part, err := tokenText(c)
		if err != nil {
			return "", err
		}
		if i > 0 {
			pred += "."
		}
		pred += part
	}
	return Predicate(pred), nil
}

func transformArguments(n *parser.Node) ([]Argument, error) {
	if err := want(n, parser.RuleArguments, 1, 2); err != nil {
		return nil, err
	}
	args := make([]Argument, 0, len(n.Children))
	for _, c := range n.Children {
		a, err := transformArgument(c)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

// argument := name | variable
func transformArgument(n *parser.Node) (Argument, error) {
	if err := want(n, parser.RuleArgument, 1); err != nil {
		return Argument{}, err
	}
	c := n.Children[0]
	if c.Rule == parser.RuleName {
		name, err := transformName(c)
		if err != nil {
			return Argument{}, err
		}
		return Const(name), nil
	}
	return transformVariable(c)
}

// variable := "x" "_" INT | BOUNDVAR. Indices become integers; bound symbols
// stay letters.
func transformVariable(n *parser.Node) (Argument, error) {
	if err := want(n, parser.RuleVariable, 1); err != nil {
		return Argument{}, err
	}
	text, err := tokenText(n.Children[0])
	if err != nil {
		return Argument{}, err
	}
	if i, err := strconv.Atoi(text); err == nil {
		return Index(i), nil
	}
	return Bound(text), nil
}

func transformName(n *parser.Node) (string, error) {
	if err := want(n, parser.RuleName, 1); err != nil {
		return "", err
	}
	return tokenText(n.Children[0])
}

func tokenText(n *parser.Node) (string, error) {
	if err := want(n, parser.RuleToken); err != nil {
		return "", err
	}
	return n.Token.Text, nil
}
