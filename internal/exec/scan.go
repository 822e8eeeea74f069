package exec

import (
	"github.com/leengari/colstore/internal/engine"
)

// Scan emits every row identifier of a relation in storage order. It is the
// leaf of every pipeline; absent slots are retained (filters decide later).
type Scan struct {
	rel *engine.Relation
	pos int
}

func NewScan(rel *engine.Relation) *Scan {
	return &Scan{rel: rel}
}

func (s *Scan) Open() error {
	s.pos = 0
	return nil
}

func (s *Scan) Next() (int, bool, error) {
	if s.pos >= s.rel.NumRows() {
		return 0, false, nil
	}
	row := s.pos
	s.pos++
	return row, true, nil
}

func (s *Scan) Close() error { return nil }

// IndexScan emits only the positions matching an equality value, using a
// prebuilt index instead of a full pass. The index must belong to the
// scanned relation and still reflect its row count; a stale index is
// rejected rather than silently misread.
type IndexScan struct {
	matches []int
	pos     int
}

func NewIndexScan(rel *engine.Relation, idx *engine.Index, key engine.Value) (*IndexScan, error) {
	if idx.Relation != rel.Name || !rel.HasColumn(idx.Column) {
		return nil, engine.NewSchemaError(rel.Name, idx.Column, "index does not belong to relation")
	}
	if idx.Rows() != rel.NumRows() {
		return nil, engine.NewSchemaError(rel.Name, idx.Column, "index is stale: rebuild after update")
	}
	matches, err := idx.Lookup(key)
	if err != nil {
		return nil, err
	}
	return &IndexScan{matches: matches}, nil
}

func (s *IndexScan) Open() error {
	s.pos = 0
	return nil
}

func (s *IndexScan) Next() (int, bool, error) {
	if s.pos >= len(s.matches) {
		return 0, false, nil
	}
	row := s.matches[s.pos]
	s.pos++
	return row, true, nil
}

func (s *IndexScan) Close() error { return nil }
