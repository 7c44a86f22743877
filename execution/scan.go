package execution

import (
	"github.com/relgo/relgo/common"
	"github.com/relgo/relgo/storage"
)

// Scan produces the tuples of a relation in key order. Init takes a
// point-in-time snapshot, so inserts performed while the scan is in flight
// are not observed.
type Scan struct {
	relation *storage.Relation

	// Runtime state
	snap    *storage.Snapshot
	current *storage.Tuple
}

// NewScan creates a Scan over the given relation.
func NewScan(relation *storage.Relation) *Scan {
	return &Scan{relation: relation}
}

func (e *Scan) OutputSchema() *storage.Schema {
	return e.relation.Schema()
}

func (e *Scan) Init() error {
	if e.snap != nil {
		e.snap.Close()
	}
	e.snap = e.relation.Snapshot()
	e.current = nil
	return nil
}

func (e *Scan) Next() bool {
	common.Assert(e.snap != nil, "Scan.Init() must be called before Next()")
	if !e.snap.Next() {
		return false
	}
	e.current = e.snap.Tuple()
	return true
}

func (e *Scan) Current() *storage.Tuple {
	return e.current
}

func (e *Scan) Error() error {
	return nil
}

func (e *Scan) Close() error {
	if e.snap != nil {
		e.snap.Close()
		e.snap = nil
	}
	return nil
}
