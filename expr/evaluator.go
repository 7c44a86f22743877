package expr

import (
	"github.com/pkg/errors"

	"github.com/relgo/relgo/common"
	"github.com/relgo/relgo/storage"
)

// Evaluator is an Expression bound against one schema. Binding resolves
// every free variable to an attribute index and types the whole tree, so
// unbound names and operator typing fail here, never during row production.
type Evaluator struct {
	expr *Expression
	root boundExpr
}

// NewEvaluator binds the expression against the schema. A variable absent
// from the schema fails with UnboundVariable; an operator applied to
// operand kinds it does not support fails with TypeMismatch.
func NewEvaluator(e *Expression, schema *storage.Schema) (*Evaluator, error) {
	root, err := bind(e.root, schema)
	if err != nil {
		return nil, errors.Wrapf(err, "binding %q", e.src)
	}
	return &Evaluator{expr: e, root: root}, nil
}

// Expression returns the underlying unbound expression.
func (ev *Evaluator) Expression() *Expression {
	return ev.expr
}

// ResultType returns the type the expression evaluates to.
func (ev *Evaluator) ResultType() common.Type {
	return ev.root.OutputType()
}

// Eval evaluates the bound expression against one tuple.
func (ev *Evaluator) Eval(t *storage.Tuple) (common.Value, error) {
	v, err := ev.root.Eval(t)
	if err != nil {
		return common.NilValue, errors.Wrapf(err, "evaluating %q", ev.expr.src)
	}
	return v, nil
}

// boundExpr is a typed expression node operating on tuples of the schema it
// was bound against.
type boundExpr interface {
	Eval(t *storage.Tuple) (common.Value, error)
	OutputType() common.Type
}

func bind(n node, schema *storage.Schema) (boundExpr, error) {
	switch n := n.(type) {
	case literalNode:
		return constExpr{val: n.val}, nil

	case variableNode:
		i, ok := schema.AttributeIndex(n.name)
		if !ok {
			return nil, common.NewError(common.UnboundVariable, "no attribute %q in schema %s", n.name, schema)
		}
		return columnExpr{index: i, typ: schema.AttributeType(i), name: n.name}, nil

	case unaryNode:
		operand, err := bind(n.operand, schema)
		if err != nil {
			return nil, err
		}
		switch n.op {
		case MINUS:
			if !operand.OutputType().IsNumeric() {
				return nil, common.NewError(common.TypeMismatch, "unary minus over %s", operand.OutputType())
			}
			return negateExpr{operand: operand}, nil
		case NOT:
			if operand.OutputType() != common.BoolType {
				return nil, common.NewError(common.TypeMismatch, "not over %s", operand.OutputType())
			}
			return notExpr{operand: operand}, nil
		}
		panic("unknown unary operator")

	case binaryNode:
		left, err := bind(n.left, schema)
		if err != nil {
			return nil, err
		}
		right, err := bind(n.right, schema)
		if err != nil {
			return nil, err
		}
		return bindBinary(n.op, left, right)
	}
	panic("unknown expression node")
}

func bindBinary(op TokenType, left, right boundExpr) (boundExpr, error) {
	lt, rt := left.OutputType(), right.OutputType()
	switch op {
	case PLUS, MINUS, ASTERISK, SLASH, PERCENT:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return nil, common.NewError(common.TypeMismatch, "arithmetic over %s and %s", lt, rt)
		}
		typ := common.IntType
		if lt == common.FloatType || rt == common.FloatType {
			if op == PERCENT {
				return nil, common.NewError(common.TypeMismatch, "modulo requires integer operands")
			}
			typ = common.FloatType
		}
		return arithmeticExpr{op: op, left: left, right: right, typ: typ}, nil

	case EQ, NEQ, LT, LTE, GT, GTE:
		comparable := lt == rt || (lt.IsNumeric() && rt.IsNumeric())
		if !comparable {
			return nil, common.NewError(common.TypeMismatch, "cannot compare %s with %s", lt, rt)
		}
		return comparisonExpr{op: op, left: left, right: right}, nil

	case AND, OR:
		if lt != common.BoolType || rt != common.BoolType {
			return nil, common.NewError(common.TypeMismatch, "logical operator over %s and %s", lt, rt)
		}
		return logicExpr{op: op, left: left, right: right}, nil
	}
	panic("unknown binary operator")
}

type constExpr struct {
	val common.Value
}

func (e constExpr) Eval(*storage.Tuple) (common.Value, error) { return e.val, nil }
func (e constExpr) OutputType() common.Type                   { return e.val.Type() }

type columnExpr struct {
	index int
	typ   common.Type
	name  string
}

func (e columnExpr) Eval(t *storage.Tuple) (common.Value, error) { return t.Value(e.index), nil }
func (e columnExpr) OutputType() common.Type                     { return e.typ }

type negateExpr struct {
	operand boundExpr
}

func (e negateExpr) Eval(t *storage.Tuple) (common.Value, error) {
	v, err := e.operand.Eval(t)
	if err != nil {
		return common.NilValue, err
	}
	if v.Type() == common.IntType {
		return common.NewIntValue(-v.IntValue()), nil
	}
	return common.NewFloatValue(-v.FloatValue()), nil
}

func (e negateExpr) OutputType() common.Type { return e.operand.OutputType() }

type notExpr struct {
	operand boundExpr
}

func (e notExpr) Eval(t *storage.Tuple) (common.Value, error) {
	v, err := e.operand.Eval(t)
	if err != nil {
		return common.NilValue, err
	}
	return common.NewBoolValue(!v.BoolValue()), nil
}

func (e notExpr) OutputType() common.Type { return common.BoolType }

type arithmeticExpr struct {
	op    TokenType
	left  boundExpr
	right boundExpr
	typ   common.Type
}

func (e arithmeticExpr) Eval(t *storage.Tuple) (common.Value, error) {
	lv, err := e.left.Eval(t)
	if err != nil {
		return common.NilValue, err
	}
	rv, err := e.right.Eval(t)
	if err != nil {
		return common.NilValue, err
	}
	if e.typ == common.IntType {
		l, r := lv.IntValue(), rv.IntValue()
		switch e.op {
		case PLUS:
			return common.NewIntValue(l + r), nil
		case MINUS:
			return common.NewIntValue(l - r), nil
		case ASTERISK:
			return common.NewIntValue(l * r), nil
		case SLASH:
			if r == 0 {
				return common.NilValue, errors.New("division by zero")
			}
			return common.NewIntValue(l / r), nil
		case PERCENT:
			if r == 0 {
				return common.NilValue, errors.New("division by zero")
			}
			return common.NewIntValue(l % r), nil
		}
	}
	l, r := asFloat(lv), asFloat(rv)
	switch e.op {
	case PLUS:
		return common.NewFloatValue(l + r), nil
	case MINUS:
		return common.NewFloatValue(l - r), nil
	case ASTERISK:
		return common.NewFloatValue(l * r), nil
	case SLASH:
		if r == 0 {
			return common.NilValue, errors.New("division by zero")
		}
		return common.NewFloatValue(l / r), nil
	}
	panic("unknown arithmetic operator")
}

func (e arithmeticExpr) OutputType() common.Type { return e.typ }

type comparisonExpr struct {
	op    TokenType
	left  boundExpr
	right boundExpr
}

func (e comparisonExpr) Eval(t *storage.Tuple) (common.Value, error) {
	lv, err := e.left.Eval(t)
	if err != nil {
		return common.NilValue, err
	}
	rv, err := e.right.Eval(t)
	if err != nil {
		return common.NilValue, err
	}
	var cmp int
	if lv.Type() != rv.Type() {
		// Mixed int/float comparison, promoted to float. Binding has
		// already rejected every other mixed pair.
		cmp = compareFloats(asFloat(lv), asFloat(rv))
	} else {
		cmp = lv.Compare(rv)
	}
	var result bool
	switch e.op {
	case EQ:
		result = cmp == 0
	case NEQ:
		result = cmp != 0
	case LT:
		result = cmp < 0
	case LTE:
		result = cmp <= 0
	case GT:
		result = cmp > 0
	case GTE:
		result = cmp >= 0
	}
	return common.NewBoolValue(result), nil
}

func (e comparisonExpr) OutputType() common.Type { return common.BoolType }

type logicExpr struct {
	op    TokenType
	left  boundExpr
	right boundExpr
}

func (e logicExpr) Eval(t *storage.Tuple) (common.Value, error) {
	lv, err := e.left.Eval(t)
	if err != nil {
		return common.NilValue, err
	}
	if e.op == AND && !lv.BoolValue() {
		return common.NewBoolValue(false), nil
	}
	if e.op == OR && lv.BoolValue() {
		return common.NewBoolValue(true), nil
	}
	return e.right.Eval(t)
}

func (e logicExpr) OutputType() common.Type { return common.BoolType }

func asFloat(v common.Value) float64 {
	if v.Type() == common.IntType {
		return float64(v.IntValue())
	}
	return v.FloatValue()
}

func compareFloats(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
