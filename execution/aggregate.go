package execution

import (
	"strings"

	"github.com/tidwall/btree"

	"github.com/relgo/relgo/common"
	"github.com/relgo/relgo/storage"
)

// aggregateSpec is one parsed "fn(attribute) as alias" definition.
type aggregateSpec struct {
	fn         string
	inputIndex int
	outputName string
}

// Aggregate groups input tuples by the grouping attributes (or one implicit
// global group when none are given) and folds each group through a list of
// aggregate accumulators. It must see its whole input before emitting, so
// unlike the other operators it buffers: the single accumulation pass runs
// on the first Next after Init, and a failure during that pass yields no
// partial output at all. Groups are emitted in ascending group-key order.
type Aggregate struct {
	input              Operator
	groupingAttributes []string
	groupingIndices    []int
	specs              []aggregateSpec
	outputSchema       *storage.Schema

	// Runtime state
	buffered []*storage.Tuple // nil until the accumulation pass has run
	index    int
	err      error
}

// NewAggregate creates an Aggregate over input. Definitions naming a
// grouping attribute are passed through; every other definition must be of
// the form "fn(attribute) as alias" with fn one of count, sum, min, max,
// avg. All parsing and binding failures surface here.
func NewAggregate(input Operator, groupingAttributes []string, attributeDefinitions []string) (*Aggregate, error) {
	e := &Aggregate{
		input:              input,
		groupingAttributes: groupingAttributes,
		outputSchema:       storage.NewSchema(),
		index:              -1,
	}
	inputSchema := input.OutputSchema()

	for _, name := range groupingAttributes {
		i, ok := inputSchema.AttributeIndex(name)
		if !ok {
			return nil, common.NewError(common.UnboundVariable, "grouping attribute %q not in schema %s", name, inputSchema)
		}
		if err := e.outputSchema.AddAttribute(name, inputSchema.AttributeType(i)); err != nil {
			return nil, err
		}
		e.groupingIndices = append(e.groupingIndices, i)
	}

	for _, def := range attributeDefinitions {
		if isGroupingAttribute(def, groupingAttributes) {
			continue
		}
		spec, outputType, err := parseAggregateDefinition(def, inputSchema)
		if err != nil {
			return nil, err
		}
		if err := e.outputSchema.AddAttribute(spec.outputName, outputType); err != nil {
			return nil, err
		}
		e.specs = append(e.specs, spec)
	}
	return e, nil
}

// HasAggregateFunctions reports whether any attribute definition contains a
// recognized aggregate-function call. The query compiler uses this to force
// a global aggregation when no grouping attributes are given.
func HasAggregateFunctions(attributeDefinitions []string) bool {
	for _, def := range attributeDefinitions {
		for _, name := range aggregateFunctionNames {
			if strings.Contains(def, name+"(") {
				return true
			}
		}
	}
	return false
}

func isGroupingAttribute(def string, groupingAttributes []string) bool {
	def = strings.TrimSpace(def)
	for _, g := range groupingAttributes {
		if def == g {
			return true
		}
	}
	return false
}

func parseAggregateDefinition(def string, schema *storage.Schema) (aggregateSpec, common.Type, error) {
	open := strings.Index(def, "(")
	closing := strings.Index(def, ")")
	if open < 0 || closing < open {
		return aggregateSpec{}, common.NilType,
			common.NewError(common.ParsingError, "attribute definition %q is not an aggregate call", def)
	}
	call, alias := SplitAlias(def)
	if alias == call {
		return aggregateSpec{}, common.NilType,
			common.NewError(common.ParsingError, "aggregate definition %q has no alias", def)
	}

	fn := strings.TrimSpace(def[:open])
	inputName := strings.TrimSpace(def[open+1 : closing])
	inputIndex, ok := schema.AttributeIndex(inputName)
	if !ok {
		return aggregateSpec{}, common.NilType,
			common.NewError(common.UnboundVariable, "aggregate input %q not in schema %s", inputName, schema)
	}
	outputType, ok := resultType(fn, schema.AttributeType(inputIndex))
	if !ok {
		return aggregateSpec{}, common.NilType,
			common.NewError(common.ParsingError, "unknown aggregate function %q", fn)
	}
	return aggregateSpec{fn: fn, inputIndex: inputIndex, outputName: alias}, outputType, nil
}

func (e *Aggregate) OutputSchema() *storage.Schema {
	return e.outputSchema
}

func (e *Aggregate) Init() error {
	e.buffered = nil
	e.index = -1
	e.err = nil
	return e.input.Init()
}

func (e *Aggregate) Next() bool {
	if e.err != nil {
		return false
	}
	if e.buffered == nil {
		if err := e.accumulate(); err != nil {
			e.err = err
			return false
		}
	}
	e.index++
	return e.index < len(e.buffered)
}

type groupEntry struct {
	key          common.Key
	accumulators []accumulator
}

// accumulate runs the single pass over the whole input, then materializes
// one output row per group. The group map is an ordered btree keyed by the
// grouping-value vector, so emission order falls out of iteration order.
func (e *Aggregate) accumulate() error {
	groups := btree.NewBTreeG(func(a, b groupEntry) bool {
		return a.key.Compare(b.key) < 0
	})

	for e.input.Next() {
		t := e.input.Current()
		keyValues := make([]common.Value, len(e.groupingIndices))
		for i, idx := range e.groupingIndices {
			keyValues[i] = t.Value(idx)
		}
		key := common.NewKey(keyValues...)

		entry, ok := groups.Get(groupEntry{key: key})
		if !ok {
			entry = groupEntry{key: key, accumulators: make([]accumulator, len(e.specs))}
			for i, spec := range e.specs {
				entry.accumulators[i] = newAccumulator(spec.fn, e.input.OutputSchema().AttributeType(spec.inputIndex))
			}
			groups.Set(entry)
		}
		for i, spec := range e.specs {
			if err := entry.accumulators[i].update(t.Value(spec.inputIndex)); err != nil {
				return err
			}
		}
	}
	if err := e.input.Error(); err != nil {
		return err
	}

	buffered := make([]*storage.Tuple, 0, groups.Len())
	var buildErr error
	groups.Scan(func(g groupEntry) bool {
		values := make([]common.Value, 0, e.outputSchema.Size())
		values = append(values, g.key.Values()...)
		for _, acc := range g.accumulators {
			values = append(values, acc.final())
		}
		t, err := storage.NewTuple(e.outputSchema, values...)
		if err != nil {
			buildErr = err
			return false
		}
		buffered = append(buffered, t)
		return true
	})
	if buildErr != nil {
		return buildErr
	}
	e.buffered = buffered
	return nil
}

func (e *Aggregate) Current() *storage.Tuple {
	return e.buffered[e.index]
}

func (e *Aggregate) Error() error {
	return e.err
}

func (e *Aggregate) Close() error {
	return e.input.Close()
}
