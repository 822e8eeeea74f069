package engine

import (
	"log/slog"
)

// Index maps a column's distinct values to the row positions holding them,
// in insertion order per bucket. It is a point-in-time snapshot: it records
// the relation's row count at build time and is NOT maintained across later
// updates — callers rebuild explicitly after mutating the indexed column.
type Index struct {
	Relation string
	Column   string
	typ      ColumnType
	rows     int
	buckets  map[string][]int
}

// BuildIndex groups row positions by exact value. Absent slots are skipped:
// they can never match a lookup.
func BuildIndex(rel *Relation, column string) (*Index, error) {
	col, err := rel.Column(column)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Relation: rel.Name,
		Column:   column,
		typ:      col.Type(),
		rows:     rel.NumRows(),
		buckets:  make(map[string][]int),
	}

	for i := 0; i < col.Len(); i++ {
		if !col.Present(i) {
			continue
		}
		k := KeyOf(col.Value(i))
		idx.buckets[k] = append(idx.buckets[k], i)
	}

	slog.Debug("index built",
		slog.String("relation", rel.Name),
		slog.String("column", column),
		slog.Int("distinct_values", len(idx.buckets)),
		slog.Int("rows", idx.rows),
	)

	return idx, nil
}

// Rows returns the relation row count captured at build time.
func (ix *Index) Rows() int { return ix.rows }

// Type returns the indexed column's type tag.
func (ix *Index) Type() ColumnType { return ix.typ }

// Lookup returns the ordered row positions holding v, nil for unmatched or
// absent probe values. Probing with a differently-typed value is a
// TypeMismatch, never a silent miss. Callers must not mutate the returned
// slice.
func (ix *Index) Lookup(v Value) ([]int, error) {
	if v.typ != ix.typ {
		return nil, NewTypeMismatch(ix.Relation, ix.Column, v, string(ix.typ))
	}
	if v.absent {
		return nil, nil
	}
	return ix.buckets[KeyOf(v)], nil
}

// Buckets exposes the underlying value-key → positions multimap so hash join
// can probe an existing index instead of building its own table.
func (ix *Index) Buckets() map[string][]int { return ix.buckets }
