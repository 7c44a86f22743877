package expr

import "github.com/relgo/relgo/common"

// Expression is a parsed but unbound expression tree. It knows its free
// variables; types and values are resolved when the expression is bound to
// a schema by NewEvaluator.
type Expression struct {
	src  string
	root node
	vars []string // free variable names, in first-appearance order
}

// Variables returns the free variable names the expression references, in
// order of first appearance.
func (e *Expression) Variables() []string {
	return e.vars
}

// String returns the original source text.
func (e *Expression) String() string {
	return e.src
}

// Unbound tree nodes. Binding (evaluator.go) turns these into typed bound
// nodes; nothing here carries a type or a value slot.
type node interface{}

type literalNode struct {
	val common.Value
}

type variableNode struct {
	name string
}

type unaryNode struct {
	op      TokenType // MINUS or NOT
	operand node
}

type binaryNode struct {
	op    TokenType
	left  node
	right node
}
