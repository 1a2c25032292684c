// Package parser recognizes logical forms against the formula grammar and
// builds a parse tree.
//
// Grammar (whitespace-insignificant):
//
//	start      := (iotas | lambdas) conjuncts | NAME
//	iotas      := iota*
//	iota       := "*" LOWERWORD "(" variable ")" ";"
//	lambdas    := ("LAMBDA" BOUNDVAR "."){1,3}
//	conjuncts  := conjunct ("AND" conjunct)*
//	conjunct   := predname "(" args ")"
//	predname   := LOWERWORD ("." LOWERWORD){0,2}
//	args       := argument ("," argument)?
//	argument   := NAME | variable
//	variable   := "x" "_" INT | BOUNDVAR
//
// The grammar over-generates on purpose: predicate arity is not checked
// against its name, variables may be free, bound symbols may appear without
// an enclosing LAMBDA, and index variables may be mixed with bound symbols.
//
// Parse never panics on malformed input. Any violation is reported as a
// *SyntaxError.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamesainslie/go-cogs/tokenizer"
)

const maxLambdas = 3

// Parser parses logical forms. Build one with New and share it; a Parser
// holds no per-parse state and is safe for concurrent use.
type Parser struct {
	tok tokenizer.Tokenizer
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxTokens rejects inputs with more than n tokens (default: unbounded).
func WithMaxTokens(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.tok.MaxTokens = n
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SyntaxError describes why a text is not a well-formed logical form.
type SyntaxError struct {
	Offset   int             // byte offset of the offending token
	Found    tokenizer.Token // token found at Offset
	Expected []string        // what the grammar allowed instead; empty for lexical errors
	err      error
}

func (e *SyntaxError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("syntax error: %v", e.err)
	}
	return fmt.Sprintf("syntax error at offset %d: unexpected %s, expected %s",
		e.Offset, e.Found, strings.Join(e.Expected, " or "))
}

func (e *SyntaxError) Unwrap() error { return e.err }

// Parse parses text. On success it returns the tree rooted at a RuleStart
// node; otherwise the error is a *SyntaxError.
func (p *Parser) Parse(text string) (*Node, error) {
	toks, err := p.tok.Tokenize(text)
	if err != nil {
		var tokErr *tokenizer.Error
		if errors.As(err, &tokErr) {
			return nil, &SyntaxError{
				Offset: tokErr.Offset,
				Found:  tokenizer.Token{Text: tokErr.Text, Offset: tokErr.Offset},
				err:    err,
			}
		}
		return nil, &SyntaxError{err: err}
	}
	s := &state{toks: toks}
	root, err := s.start()
	if err != nil {
		return nil, err
	}
	return root, nil
}

// Accepts reports whether text is well-formed.
func (p *Parser) Accepts(text string) bool {
	_, err := p.Parse(text)
	return err == nil
}

type state struct {
	toks []tokenizer.Token
	pos  int
}

// peek returns the current token. The token stream always ends in TEOF and
// the parser never advances past it.
func (s *state) peek() tokenizer.Token {
	return s.toks[s.pos]
}

func (s *state) next() tokenizer.Token {
	tok := s.toks[s.pos]
	if tok.Type != tokenizer.TEOF {
		s.pos++
	}
	return tok
}

func (s *state) unexpected(expected ...tokenizer.TokenType) error {
	tok := s.peek()
	names := make([]string, len(expected))
	for i, t := range expected {
		names[i] = t.String()
	}
	return &SyntaxError{Offset: tok.Offset, Found: tok, Expected: names}
}

func (s *state) expect(t tokenizer.TokenType) (tokenizer.Token, error) {
	if s.peek().Type != t {
		return tokenizer.Token{}, s.unexpected(t)
	}
	return s.next(), nil
}

// start := (iotas | lambdas) conjuncts | NAME
func (s *state) start() (*Node, error) {
	var root *Node
	switch s.peek().Type {
	case tokenizer.TName:
		root = node(RuleStart, node(RuleName, leaf(s.next())))
	case tokenizer.TLambda:
		lambdas, err := s.lambdas()
		if err != nil {
			return nil, err
		}
		conj, err := s.conjuncts()
		if err != nil {
			return nil, err
		}
		root = node(RuleStart, lambdas, conj)
	case tokenizer.TStar, tokenizer.TWord:
		iotas, err := s.iotas()
		if err != nil {
			return nil, err
		}
		conj, err := s.conjuncts()
		if err != nil {
			return nil, err
		}
		root = node(RuleStart, iotas, conj)
	default:
		return nil, s.unexpected(tokenizer.TName, tokenizer.TLambda, tokenizer.TStar, tokenizer.TWord)
	}
	if s.peek().Type != tokenizer.TEOF {
		if root.Children[0].Rule == RuleName {
			return nil, s.unexpected(tokenizer.TEOF)
		}
		return nil, s.unexpected(tokenizer.TAnd, tokenizer.TEOF)
	}
	return root, nil
}

// iotas := iota*
func (s *state) iotas() (*Node, error) {
	n := node(RuleIotas)
	for s.peek().Type == tokenizer.TStar {
		iota, err := s.iota()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, iota)
	}
	return n, nil
}

// iota := "*" LOWERWORD "(" variable ")" ";"
func (s *state) iota() (*Node, error) {
	if _, err := s.expect(tokenizer.TStar); err != nil {
		return nil, err
	}
	noun, err := s.expect(tokenizer.TWord)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokenizer.TLParen); err != nil {
		return nil, err
	}
	v, err := s.variable()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokenizer.TRParen); err != nil {
		return nil, err
	}
	if _, err := s.expect(tokenizer.TSemicolon); err != nil {
		return nil, err
	}
	return node(RuleIota, leaf(noun), v), nil
}

// lambdas := ("LAMBDA" BOUNDVAR "."){1,3}
func (s *state) lambdas() (*Node, error) {
	n := node(RuleLambdas)
	for s.peek().Type == tokenizer.TLambda {
		if len(n.Children) == maxLambdas {
			return nil, s.unexpected(tokenizer.TWord)
		}
		s.next()
		v, err := s.expect(tokenizer.TBoundVar)
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(tokenizer.TDot); err != nil {
			return nil, err
		}
		n.Children = append(n.Children, node(RuleLambdaTerm, leaf(v)))
	}
	if len(n.Children) == 0 {
		return nil, s.unexpected(tokenizer.TLambda)
	}
	return n, nil
}

// conjuncts := conjunct ("AND" conjunct)*
func (s *state) conjuncts() (*Node, error) {
	first, err := s.conjunct()
	if err != nil {
		return nil, err
	}
	n := node(RuleConjuncts, first)
	for s.peek().Type == tokenizer.TAnd {
		s.next()
		c, err := s.conjunct()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

// conjunct := predname "(" args ")"
func (s *state) conjunct() (*Node, error) {
	pred, err := s.predicateName()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokenizer.TLParen); err != nil {
		return nil, err
	}
	args, err := s.arguments()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(tokenizer.TRParen); err != nil {
		return nil, err
	}
	return node(RuleConjunct, pred, args), nil
}

// predname := LOWERWORD ("." LOWERWORD){0,2}
func (s *state) predicateName() (*Node, error) {
	w, err := s.expect(tokenizer.TWord)
	if err != nil {
		return nil, err
	}
	n := node(RulePredicateName, leaf(w))
	for len(n.Children) < 3 && s.peek().Type == tokenizer.TDot {
		s.next()
		w, err := s.expect(tokenizer.TWord)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, leaf(w))
	}
	return n, nil
}

// args := argument ("," argument)?
func (s *state) arguments() (*Node, error) {
	first, err := s.argument()
	if err != nil {
		return nil, err
	}
	n := node(RuleArguments, first)
	if s.peek().Type == tokenizer.TComma {
		s.next()
		second, err := s.argument()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, second)
	}
	return n, nil
}

// argument := NAME | variable
func (s *state) argument() (*Node, error) {
	switch s.peek().Type {
	case tokenizer.TName:
		return node(RuleArgument, node(RuleName, leaf(s.next()))), nil
	case tokenizer.TX, tokenizer.TBoundVar:
		v, err := s.variable()
		if err != nil {
			return nil, err
		}
		return node(RuleArgument, v), nil
	}
	return nil, s.unexpected(tokenizer.TName, tokenizer.TX, tokenizer.TBoundVar)
}

// variable := "x" "_" INT | BOUNDVAR
func (s *state) variable() (*Node, error) {
	switch s.peek().Type {
	case tokenizer.TBoundVar:
		return node(RuleVariable, leaf(s.next())), nil
	case tokenizer.TX:
		s.next()
		if _, err := s.expect(tokenizer.TUnderscore); err != nil {
			return nil, err
		}
		i, err := s.expect(tokenizer.TInt)
		if err != nil {
			return nil, err
		}
		return node(RuleVariable, leaf(i)), nil
	}
	return nil, s.unexpected(tokenizer.TX, tokenizer.TBoundVar)
}
