package execution

import (
	"strings"

	"github.com/relgo/relgo/common"
	"github.com/relgo/relgo/expr"
	"github.com/relgo/relgo/storage"
)

// Projection evaluates a list of attribute definitions against each input
// tuple and assembles a new tuple per row. A definition is an expression,
// optionally aliased with " as "; the output attribute is named by the
// alias or by the trimmed raw expression text. Definitions that fail to
// parse, bind, or type-resolve fail at construction.
type Projection struct {
	input        Operator
	evaluators   []*expr.Evaluator
	outputSchema *storage.Schema

	// Runtime state
	current *storage.Tuple
	err     error
}

// NewProjection creates a Projection over input with the given attribute
// definitions.
func NewProjection(input Operator, attributeDefinitions []string) (*Projection, error) {
	p := &Projection{input: input, outputSchema: storage.NewSchema()}
	for _, def := range attributeDefinitions {
		src, name := SplitAlias(def)
		parsed, err := expr.Parse(src)
		if err != nil {
			return nil, err
		}
		evaluator, err := expr.NewEvaluator(parsed, input.OutputSchema())
		if err != nil {
			return nil, err
		}
		if err := p.outputSchema.AddAttribute(name, evaluator.ResultType()); err != nil {
			return nil, err
		}
		p.evaluators = append(p.evaluators, evaluator)
	}
	return p, nil
}

// SplitAlias splits an attribute definition into expression source and
// output attribute name. Without an " as " alias the name is the trimmed
// definition itself.
func SplitAlias(def string) (src, name string) {
	if parts := strings.SplitN(def, " as ", 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(def), strings.TrimSpace(def)
}

func (e *Projection) OutputSchema() *storage.Schema {
	return e.outputSchema
}

func (e *Projection) Init() error {
	e.current = nil
	e.err = nil
	return e.input.Init()
}

func (e *Projection) Next() bool {
	if e.err != nil {
		return false
	}
	if !e.input.Next() {
		return false
	}
	in := e.input.Current()
	values := make([]common.Value, len(e.evaluators))
	for i, evaluator := range e.evaluators {
		v, err := evaluator.Eval(in)
		if err != nil {
			e.err = err
			return false
		}
		values[i] = v
	}
	out, err := storage.NewTuple(e.outputSchema, values...)
	if err != nil {
		e.err = err
		return false
	}
	e.current = out
	return true
}

func (e *Projection) Current() *storage.Tuple {
	return e.current
}

func (e *Projection) Error() error {
	if e.err != nil {
		return e.err
	}
	return e.input.Error()
}

func (e *Projection) Close() error {
	return e.input.Close()
}
