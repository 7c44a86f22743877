package expr

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/relgo/relgo/common"
)

// Binding powers, lowest first. Comparison is non-associative in practice
// but parsed left-associatively like everything else.
const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precAdditive
	precMultiplicative
)

var precedences = map[TokenType]int{
	OR:       precOr,
	AND:      precAnd,
	EQ:       precCompare,
	NEQ:      precCompare,
	LT:       precCompare,
	LTE:      precCompare,
	GT:       precCompare,
	GTE:      precCompare,
	PLUS:     precAdditive,
	MINUS:    precAdditive,
	ASTERISK: precMultiplicative,
	SLASH:    precMultiplicative,
	PERCENT:  precMultiplicative,
}

// Parse turns an expression source string into an unbound Expression.
// Failures carry the ParsingError code.
func Parse(src string) (*Expression, error) {
	p := &parser{lexer: NewLexer(src), expr: &Expression{src: src}}
	p.next()
	p.next()

	root, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", src)
	}
	if p.cur.Type != EOF {
		return nil, errors.Wrapf(
			common.NewError(common.ParsingError, "unexpected token %q at position %d", p.cur.Literal, p.cur.Pos),
			"parsing %q", src)
	}
	p.expr.root = root
	return p.expr, nil
}

type parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
	expr  *Expression
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *parser) parseExpression(minPrec int) (node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := precedences[p.cur.Type]
		if !ok || prec <= minPrec {
			return left, nil
		}
		op := p.cur.Type
		p.next()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parsePrefix() (node, error) {
	tok := p.cur
	switch tok.Type {
	case IDENT:
		p.next()
		p.recordVariable(tok.Literal)
		return variableNode{name: tok.Literal}, nil
	case INT:
		p.next()
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, common.NewError(common.ParsingError, "bad integer literal %q", tok.Literal)
		}
		return literalNode{val: common.NewIntValue(i)}, nil
	case FLOAT:
		p.next()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, common.NewError(common.ParsingError, "bad float literal %q", tok.Literal)
		}
		return literalNode{val: common.NewFloatValue(f)}, nil
	case STRING:
		p.next()
		return literalNode{val: common.NewStringValue(tok.Literal)}, nil
	case TRUE:
		p.next()
		return literalNode{val: common.NewBoolValue(true)}, nil
	case FALSE:
		p.next()
		return literalNode{val: common.NewBoolValue(false)}, nil
	case MINUS:
		p.next()
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: MINUS, operand: operand}, nil
	case NOT:
		// not sits between and and comparison, so its operand takes in
		// comparison and everything tighter: "not a = b" is not(a = b),
		// while "not a and b" is (not a) and b.
		p.next()
		operand, err := p.parseExpression(precAnd)
		if err != nil {
			return nil, err
		}
		return unaryNode{op: NOT, operand: operand}, nil
	case LPAREN:
		p.next()
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if p.cur.Type != RPAREN {
			return nil, common.NewError(common.ParsingError, "expected ')' at position %d", p.cur.Pos)
		}
		p.next()
		return inner, nil
	case EOF:
		return nil, common.NewError(common.ParsingError, "unexpected end of expression")
	default:
		return nil, common.NewError(common.ParsingError, "unexpected token %q at position %d", tok.Literal, tok.Pos)
	}
}

func (p *parser) recordVariable(name string) {
	for _, v := range p.expr.vars {
		if v == name {
			return
		}
	}
	p.expr.vars = append(p.expr.vars, name)
}
