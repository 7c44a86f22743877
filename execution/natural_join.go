package execution

import "github.com/relgo/relgo/storage"

// NaturalJoin emits, for each input tuple, one concatenated tuple per
// matching tuple in the referenced relation. Matching is on all attributes
// common to the two schemas, computed once at construction. An input tuple
// with zero matches contributes zero rows: this is an inner join, never an
// outer one. Lookups use the relation's dual-path equi-match, so a probe
// degrades from a keyed lookup to a linear scan when the relation's primary
// key is not covered by the common attributes.
type NaturalJoin struct {
	input            Operator
	relation         *storage.Relation
	commonAttributes []string
	outputSchema     *storage.Schema

	// Runtime state
	pending    []*storage.Tuple // matches for the current input tuple
	pendingIdx int
	current    *storage.Tuple
	err        error
}

// NewNaturalJoin creates a NaturalJoin of input against relation.
func NewNaturalJoin(input Operator, relation *storage.Relation) *NaturalJoin {
	return &NaturalJoin{
		input:            input,
		relation:         relation,
		commonAttributes: input.OutputSchema().CommonAttributeNames(relation.Schema()),
		outputSchema:     storage.Combine(input.OutputSchema(), relation.Schema()),
	}
}

func (e *NaturalJoin) OutputSchema() *storage.Schema {
	return e.outputSchema
}

func (e *NaturalJoin) Init() error {
	e.pending = nil
	e.pendingIdx = 0
	e.current = nil
	e.err = nil
	return e.input.Init()
}

func (e *NaturalJoin) Next() bool {
	if e.err != nil {
		return false
	}
	for {
		// No more matches for the last input tuple; probe with a new one.
		if e.pendingIdx >= len(e.pending) {
			if !e.input.Next() {
				return false
			}
			e.pending = e.relation.MatchingTuples(e.input.Current(), e.commonAttributes)
			e.pendingIdx = 0
			continue
		}

		match := e.pending[e.pendingIdx]
		e.pendingIdx++
		joined, err := storage.Concatenate(e.outputSchema, e.input.Current(), match)
		if err != nil {
			e.err = err
			return false
		}
		e.current = joined
		return true
	}
}

func (e *NaturalJoin) Current() *storage.Tuple {
	return e.current
}

func (e *NaturalJoin) Error() error {
	if e.err != nil {
		return e.err
	}
	return e.input.Error()
}

func (e *NaturalJoin) Close() error {
	e.pending = nil
	return e.input.Close()
}
