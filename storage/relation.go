package storage

import (
	"fmt"

	"github.com/tidwall/btree"

	"github.com/relgo/relgo/common"
)

type relEntry struct {
	key   common.Key
	tuple *Tuple
}

// Relation is a keyed, key-ordered collection of tuples sharing a schema.
// The key is the primary-key value vector, or the full value vector when no
// primary key is declared. Relations grow only by insertion.
type Relation struct {
	schema *Schema
	tuples *btree.BTreeG[relEntry]
}

// NewRelation creates an empty Relation over the given schema.
func NewRelation(schema *Schema) *Relation {
	return &Relation{
		schema: schema,
		tuples: btree.NewBTreeG(func(a, b relEntry) bool {
			return a.key.Compare(b.key) < 0
		}),
	}
}

// Schema returns the relation's schema.
func (r *Relation) Schema() *Schema {
	return r.schema
}

// Len returns the number of tuples.
func (r *Relation) Len() int {
	return r.tuples.Len()
}

// Key derives the tuple's key under this relation's schema. The key
// indices are resolved per call because the schema may gain attributes
// between relation creation and first insert.
func (r *Relation) Key(t *Tuple) common.Key {
	pk := r.schema.PrimaryKey()
	if pk == nil {
		return common.NewKey(t.AllValues()...)
	}
	return common.NewKey(t.Values(pk...)...)
}

// Insert builds a tuple from the given values and adds it to the relation.
// It fails with TypeMismatch on a value/schema violation and with
// DuplicateKey when a tuple with a structurally equal key already exists.
func (r *Relation) Insert(values ...common.Value) (*Tuple, error) {
	tuple, err := NewTuple(r.schema, values...)
	if err != nil {
		return nil, err
	}
	key := r.Key(tuple)
	if _, ok := r.tuples.Get(relEntry{key: key}); ok {
		return nil, common.NewError(common.DuplicateKey, "key %s already present", key)
	}
	r.tuples.Set(relEntry{key: key, tuple: tuple})
	return tuple, nil
}

// MatchingTuples finds the tuples equal to the probe on every attribute in
// commonAttributes. When the relation's primary key is fully contained in
// the common attributes, the probe's key is derived and looked up directly,
// then re-verified against all common attributes (key coverage can be a
// strict subset of them), yielding zero or one tuples. Otherwise every
// tuple is scanned.
func (r *Relation) MatchingTuples(probe *Tuple, commonAttributes []string) []*Tuple {
	pk := r.schema.PrimaryKey()
	if pk != nil && containsAll(commonAttributes, pk) {
		key := common.NewKey(probe.Values(pk...)...)
		entry, ok := r.tuples.Get(relEntry{key: key})
		if ok && matching(probe, entry.tuple, commonAttributes) {
			return []*Tuple{entry.tuple}
		}
		return nil
	}
	var out []*Tuple
	r.tuples.Scan(func(e relEntry) bool {
		if matching(probe, e.tuple, commonAttributes) {
			out = append(out, e.tuple)
		}
		return true
	})
	return out
}

// Snapshot returns a point-in-time view of the relation in key order.
// Inserts performed after the snapshot is taken are not visible through it,
// which makes enumeration during mutation well defined.
func (r *Relation) Snapshot() *Snapshot {
	return &Snapshot{iter: r.tuples.Copy().Iter()}
}

// String renders the relation as "schema:rowCount".
func (r *Relation) String() string {
	return fmt.Sprintf("%s:%d", r.schema, r.tuples.Len())
}

// Snapshot iterates a frozen copy of a relation's tuples in key order.
type Snapshot struct {
	iter    btree.IterG[relEntry]
	started bool
}

// Next advances to the next tuple, returning false when exhausted.
func (s *Snapshot) Next() bool {
	if !s.started {
		s.started = true
		return s.iter.First()
	}
	return s.iter.Next()
}

// Tuple returns the tuple at the current position.
func (s *Snapshot) Tuple() *Tuple {
	return s.iter.Item().tuple
}

// Close releases the underlying iterator.
func (s *Snapshot) Close() {
	s.iter.Release()
}

func matching(t1, t2 *Tuple, commonAttributes []string) bool {
	for _, name := range commonAttributes {
		if !t1.ValueByName(name).Equal(t2.ValueByName(name)) {
			return false
		}
	}
	return true
}

func containsAll(haystack, needles []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
