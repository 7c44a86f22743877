package common

import "fmt"

// Assert checks an internal invariant and panics if it does not hold.
// It is reserved for "impossible" conditions (broken internal state,
// unreachable switch arms); anything a caller could plausibly trigger is
// reported as an error value instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
