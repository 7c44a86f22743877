// Package execution implements the relational operator tree: scan,
// selection, projection, natural join, and grouped aggregation, evaluated
// by lazy pull-based enumeration.
package execution

import "github.com/relgo/relgo/storage"

// Operator is the interface all operator variants implement. An operator's
// output schema is fixed at construction, as is every binding (predicates,
// projection definitions, join attributes); construction is where binding
// errors surface. Evaluation re-reads current relation state each time:
//
//	if err := op.Init(); err != nil { ... }
//	defer op.Close()
//	for op.Next() {
//	    t := op.Current()
//	    ...
//	}
//	if err := op.Error(); err != nil { ... }
//
// Init may be called again to re-evaluate the tree from scratch.
type Operator interface {
	// OutputSchema returns the schema of the tuples the operator produces.
	OutputSchema() *storage.Schema

	// Init (re)starts an evaluation, resetting any cursor state.
	Init() error

	// Next advances to the next output tuple.
	Next() bool

	// Current returns the tuple most recently produced by Next().
	Current() *storage.Tuple

	// Error returns the first error encountered during evaluation, if any.
	Error() error

	// Close releases any resources held by the evaluation.
	Close() error
}
