// Package expr parses textual arithmetic and logical expressions for the
// query engine. A parsed expression reports its free variables; binding it
// against a schema resolves the result type and yields a per-tuple
// evaluator.
package expr

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT  // attribute names
	INT    // 123
	FLOAT  // 1.23
	STRING // "value"

	// Keywords
	AND
	OR
	NOT
	TRUE
	FALSE

	// Operators & punctuation
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	EQ       // =
	NEQ      // != or <>
	LT       // <
	LTE      // <=
	GT       // >
	GTE      // >=
	LPAREN   // (
	RPAREN   // )
)

var keywords = map[string]TokenType{
	"and":   AND,
	"or":    OR,
	"not":   NOT,
	"true":  TRUE,
	"false": FALSE,
}

func lookupIdent(literal string) TokenType {
	if tok, ok := keywords[strings.ToLower(literal)]; ok {
		return tok
	}
	return IDENT
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q)", t.Type, t.Literal)
}
