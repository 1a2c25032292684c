package tokenizer

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TEOF TokenType = iota
	TStar
	TLParen
	TRParen
	TComma
	TSemicolon
	TDot
	TUnderscore
	TLambda
	TAnd
	TName
	TWord
	TBoundVar
	TX
	TInt
)

var typeNames = map[TokenType]string{
	TEOF:        "end of input",
	TStar:       `"*"`,
	TLParen:     `"("`,
	TRParen:     `")"`,
	TComma:      `","`,
	TSemicolon:  `";"`,
	TDot:        `"."`,
	TUnderscore: `"_"`,
	TLambda:     `"LAMBDA"`,
	TAnd:        `"AND"`,
	TName:       "NAME",
	TWord:       "LOWERWORD",
	TBoundVar:   "BOUNDVAR",
	TX:          `"x"`,
	TInt:        "INT",
}

func (t TokenType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexeme with its position in the original text.
type Token struct {
	Type   TokenType
	Text   string
	Offset int // byte offset in original text
}

func (t Token) String() string {
	if t.Type == TEOF {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Text)
}
