package parser

import (
	"fmt"
	"strings"

	"github.com/jamesainslie/go-cogs/tokenizer"
)

// Rule names a grammar rule. Every interior node of a parse tree is labelled
// with the rule that produced it; leaves carry RuleToken.
type Rule int

const (
	RuleToken Rule = iota
	RuleStart
	RuleName
	RuleIotas
	RuleIota
	RuleLambdas
	RuleLambdaTerm
	RuleConjuncts
	RuleConjunct
	RulePredicateName
	RuleArguments
	RuleArgument
	RuleVariable
)

var ruleNames = [...]string{
	RuleToken:         "token",
	RuleStart:         "start",
	RuleName:          "name",
	RuleIotas:         "iotas",
	RuleIota:          "iota",
	RuleLambdas:       "lambdas",
	RuleLambdaTerm:    "lambdaterm",
	RuleConjuncts:     "conjuncts",
	RuleConjunct:      "conjunct",
	RulePredicateName: "predicatename",
	RuleArguments:     "arguments",
	RuleArgument:      "argument",
	RuleVariable:      "variable",
}

func (r Rule) String() string {
	if r >= 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// Node is a parse tree node. Punctuation and keywords are not kept; only
// tokens that carry a value (names, words, bound symbols, integers) appear
// as leaves.
type Node struct {
	Rule     Rule
	Children []*Node
	Token    tokenizer.Token // valid when Rule == RuleToken
}

func leaf(tok tokenizer.Token) *Node {
	return &Node{Rule: RuleToken, Token: tok}
}

func node(r Rule, children ...*Node) *Node {
	return &Node{Rule: r, Children: children}
}

// Pretty renders the tree one node per line, children indented by two
// spaces.
func (n *Node) Pretty() string {
	var sb strings.Builder
	n.pretty(&sb, 0)
	return sb.String()
}

func (n *Node) pretty(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Rule == RuleToken {
		sb.WriteString(n.Token.Text)
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(n.Rule.String())
	sb.WriteByte('\n')
	for _, c := range n.Children {
		c.pretty(sb, depth+1)
	}
}
