// Package tokenizer splits logical-form text into typed tokens.
//
// Whitespace is insignificant: "* cat ( x _ 1 )" and "*cat(x_1)" produce the
// same token stream. Letter runs are classified the way the grammar's
// terminals are defined:
//
//   - LAMBDA, AND: keywords
//   - an uppercase letter followed by one or more lowercase letters: Name
//   - two or more lowercase letters: Word
//   - a, b, e: BoundVar
//   - x: the index-variable marker
package tokenizer

import (
	"fmt"
	"strconv"
)

// Tokenizer converts logical-form text into tokens.
// The zero value is ready to use and a Tokenizer is safe for concurrent use.
type Tokenizer struct {
	// MaxTokens bounds the number of tokens produced; 0 means no bound.
	MaxTokens int
}

// Error reports a character sequence that is not a token of the
// logical-form language.
type Error struct {
	Offset int    // byte offset in the original text
	Text   string // offending text
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("tokenizer: %s %q at offset %d", e.Reason, e.Text, e.Offset)
}

// Tokenize returns the tokens of text followed by a single EOF token.
func (t Tokenizer) Tokenize(text string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case isSpace(c):
			i++
			continue
		case isDigit(c):
			j := i
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			if _, err := strconv.Atoi(text[i:j]); err != nil {
				return nil, &Error{Offset: i, Text: text[i:j], Reason: "integer out of range"}
			}
			tokens = append(tokens, Token{Type: TInt, Text: text[i:j], Offset: i})
			i = j
		case isUpper(c):
			tok, n, err := upperRun(text, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i += n
		case isLower(c):
			j := i
			for j < len(text) && isLower(text[j]) {
				j++
			}
			tok, err := lowerRun(text[i:j], i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = j
		default:
			typ, ok := punctuation[c]
			if !ok {
				return nil, &Error{Offset: i, Text: text[i : i+1], Reason: "unexpected character"}
			}
			tokens = append(tokens, Token{Type: typ, Text: text[i : i+1], Offset: i})
			i++
		}
		if t.MaxTokens > 0 && len(tokens) > t.MaxTokens {
			return nil, &Error{Offset: i, Text: "", Reason: fmt.Sprintf("more than %d tokens", t.MaxTokens)}
		}
	}
	tokens = append(tokens, Token{Type: TEOF, Offset: len(text)})
	return tokens, nil
}

var punctuation = map[byte]TokenType{
	'*': TStar,
	'(': TLParen,
	')': TRParen,
	',': TComma,
	';': TSemicolon,
	'.': TDot,
	'_': TUnderscore,
}

// upperRun scans a token starting with an uppercase letter. A run of
// uppercase letters must be a keyword; otherwise the token is a Name made of
// one uppercase letter and the lowercase letters that follow it.
func upperRun(text string, start int) (Token, int, error) {
	j := start + 1
	for j < len(text) && isUpper(text[j]) {
		j++
	}
	if j > start+1 {
		word := text[start:j]
		switch word {
		case "LAMBDA":
			return Token{Type: TLambda, Text: word, Offset: start}, j - start, nil
		case "AND":
			return Token{Type: TAnd, Text: word, Offset: start}, j - start, nil
		}
		return Token{}, 0, &Error{Offset: start, Text: word, Reason: "unknown keyword"}
	}
	for j < len(text) && isLower(text[j]) {
		j++
	}
	if j == start+1 {
		return Token{}, 0, &Error{Offset: start, Text: text[start:j], Reason: "name too short"}
	}
	return Token{Type: TName, Text: text[start:j], Offset: start}, j - start, nil
}

func lowerRun(word string, offset int) (Token, error) {
	if len(word) > 1 {
		return Token{Type: TWord, Text: word, Offset: offset}, nil
	}
	switch word {
	case "x":
		return Token{Type: TX, Text: word, Offset: offset}, nil
	case "a", "b", "e":
		return Token{Type: TBoundVar, Text: word, Offset: offset}, nil
	}
	return Token{}, &Error{Offset: offset, Text: word, Reason: "unknown single-letter symbol"}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
