package common

import (
	"errors"
	"fmt"
)

type RelErrorCode int

const (
	// DuplicateAttributeName indicates an attempt to add an attribute to a
	// schema under a name that is already taken.
	DuplicateAttributeName RelErrorCode = iota
	// TypeMismatch indicates a value whose runtime kind differs from the
	// declared attribute type, or an expression that cannot be typed.
	TypeMismatch
	// DuplicateKey indicates an attempt to insert a tuple whose key is
	// already present in the relation (value equality, never identity).
	DuplicateKey
	// UnboundVariable indicates a name that does not resolve to any
	// attribute of the schema it is bound against.
	UnboundVariable
	// UnsupportedAggregate indicates an aggregate function applied to a
	// value kind it does not support (e.g. sum over strings).
	UnsupportedAggregate
	// ParsingError wraps a failure from the expression collaborator or a
	// malformed attribute definition.
	ParsingError
	// NoSuchRelation indicates a table name with no relation in the catalog.
	NoSuchRelation
)

func (ec RelErrorCode) String() string {
	switch ec {
	case DuplicateAttributeName:
		return "DuplicateAttributeName"
	case TypeMismatch:
		return "TypeMismatch"
	case DuplicateKey:
		return "DuplicateKey"
	case UnboundVariable:
		return "UnboundVariable"
	case UnsupportedAggregate:
		return "UnsupportedAggregate"
	case ParsingError:
		return "ParsingError"
	case NoSuchRelation:
		return "NoSuchRelation"
	}
	return "unknown"
}

// RelError is the engine's error type. It pairs a RelErrorCode with a
// detailed message so callers can branch on the failure kind while still
// getting a readable error string.
type RelError struct {
	Code      RelErrorCode
	ErrString string
}

func (e RelError) Error() string {
	return fmt.Sprintf("err: %s; msg: %s", e.Code.String(), e.ErrString)
}

// NewError builds a RelError with a formatted message.
func NewError(code RelErrorCode, format string, args ...any) RelError {
	return RelError{Code: code, ErrString: fmt.Sprintf(format, args...)}
}

// Code extracts the RelErrorCode from err, unwrapping as needed. The second
// return is false when err carries no RelError.
func Code(err error) (RelErrorCode, bool) {
	var re RelError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}

// IsCode reports whether err carries the given RelErrorCode.
func IsCode(err error, code RelErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}
