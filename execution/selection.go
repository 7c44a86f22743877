package execution

import (
	"github.com/relgo/relgo/common"
	"github.com/relgo/relgo/expr"
	"github.com/relgo/relgo/storage"
)

// Selection passes through the input tuples that satisfy a boolean
// predicate. The predicate is parsed and bound against the input schema at
// construction, so an unbound attribute reference or a non-boolean
// predicate fails before any row is produced.
type Selection struct {
	input     Operator
	predicate string
	evaluator *expr.Evaluator

	// Runtime state
	err error
}

// NewSelection creates a Selection over input with the given predicate
// source text.
func NewSelection(input Operator, predicate string) (*Selection, error) {
	parsed, err := expr.Parse(predicate)
	if err != nil {
		return nil, err
	}
	evaluator, err := expr.NewEvaluator(parsed, input.OutputSchema())
	if err != nil {
		return nil, err
	}
	if evaluator.ResultType() != common.BoolType {
		return nil, common.NewError(common.TypeMismatch,
			"predicate %q evaluates to %s, not bool", predicate, evaluator.ResultType())
	}
	return &Selection{input: input, predicate: predicate, evaluator: evaluator}, nil
}

// Predicate returns the predicate source text.
func (e *Selection) Predicate() string {
	return e.predicate
}

func (e *Selection) OutputSchema() *storage.Schema {
	return e.input.OutputSchema()
}

func (e *Selection) Init() error {
	e.err = nil
	return e.input.Init()
}

func (e *Selection) Next() bool {
	if e.err != nil {
		return false
	}
	for e.input.Next() {
		v, err := e.evaluator.Eval(e.input.Current())
		if err != nil {
			e.err = err
			return false
		}
		if v.BoolValue() {
			return true
		}
	}
	return false
}

func (e *Selection) Current() *storage.Tuple {
	return e.input.Current()
}

func (e *Selection) Error() error {
	if e.err != nil {
		return e.err
	}
	return e.input.Error()
}

func (e *Selection) Close() error {
	return e.input.Close()
}
