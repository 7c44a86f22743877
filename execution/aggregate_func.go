package execution

import "github.com/relgo/relgo/common"

// accumulator is the per-group, per-definition running state of one
// aggregate function. Accumulators are created lazily the first time a
// group is seen and updated once per input row.
type accumulator interface {
	update(v common.Value) error
	final() common.Value
}

// aggregateFunctionNames lists the recognized function names. The query
// compiler uses it to detect aggregate calls inside attribute definitions.
var aggregateFunctionNames = []string{"count", "sum", "min", "max", "avg"}

// resultType returns the output attribute type of the named function over
// an input attribute of the given type. The second return is false for an
// unrecognized function name.
func resultType(fn string, inputType common.Type) (common.Type, bool) {
	switch fn {
	case "count":
		return common.IntType, true
	case "sum", "min", "max", "avg":
		return inputType, true
	}
	return common.NilType, false
}

func newAccumulator(fn string, inputType common.Type) accumulator {
	switch fn {
	case "count":
		return &countAcc{}
	case "sum":
		return &sumAcc{typ: inputType}
	case "min":
		return &minAcc{}
	case "max":
		return &maxAcc{}
	case "avg":
		return &avgAcc{sum: sumAcc{typ: inputType}}
	}
	panic("unknown aggregate function " + fn)
}

// countAcc increments on every row regardless of the value.
type countAcc struct {
	n int64
}

func (a *countAcc) update(common.Value) error {
	a.n++
	return nil
}

func (a *countAcc) final() common.Value {
	return common.NewIntValue(a.n)
}

// sumAcc accumulates in the input attribute's numeric kind. Only integer
// and floating-point kinds are supported.
type sumAcc struct {
	typ common.Type
	i   int64
	f   float64
}

func (a *sumAcc) update(v common.Value) error {
	switch v.Type() {
	case common.IntType:
		a.i += v.IntValue()
	case common.FloatType:
		a.f += v.FloatValue()
	default:
		return common.NewError(common.UnsupportedAggregate, "sum over %s values", v.Type())
	}
	return nil
}

func (a *sumAcc) final() common.Value {
	if a.typ == common.IntType {
		return common.NewIntValue(a.i)
	}
	return common.NewFloatValue(a.f)
}

// avgAcc divides the sum by the row count in the input attribute's numeric
// kind: integer input means truncating integer division.
type avgAcc struct {
	sum sumAcc
	n   int64
}

func (a *avgAcc) update(v common.Value) error {
	if err := a.sum.update(v); err != nil {
		return err
	}
	a.n++
	return nil
}

func (a *avgAcc) final() common.Value {
	// An accumulator only exists once its group has seen a row, so n >= 1.
	if a.sum.typ == common.IntType {
		return common.NewIntValue(a.sum.i / a.n)
	}
	return common.NewFloatValue(a.sum.f / float64(a.n))
}

// minAcc keeps the running minimum in the value's natural order. The first
// value seeds the extreme; ties keep the earliest-seen value.
type minAcc struct {
	best common.Value
}

func (a *minAcc) update(v common.Value) error {
	if a.best.IsNil() || v.Compare(a.best) < 0 {
		a.best = v
	}
	return nil
}

func (a *minAcc) final() common.Value {
	return a.best
}

// maxAcc keeps the running maximum; otherwise identical to minAcc.
type maxAcc struct {
	best common.Value
}

func (a *maxAcc) update(v common.Value) error {
	if a.best.IsNil() || v.Compare(a.best) > 0 {
		a.best = v
	}
	return nil
}

func (a *maxAcc) final() common.Value {
	return a.best
}
