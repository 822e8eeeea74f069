package exec

import (
	"sort"

	"github.com/leengari/colstore/internal/engine"
)

type Order int

const (
	Asc Order = iota
	Desc
)

// Sort drains its child, stably orders the buffered row identifiers by one
// column, and replays them. Ties keep the upstream order; absent values sort
// first ascending (last descending). The sort phase runs in Open, the
// replay in Next, so the stream stays a plain state machine.
type Sort struct {
	rel    *engine.Relation
	child  RowStream
	col    *engine.Column
	order  Order
	sorted []int
	pos    int
}

func NewSort(rel *engine.Relation, child RowStream, column string, order Order) (*Sort, error) {
	col, err := rel.Column(column)
	if err != nil {
		return nil, err
	}
	return &Sort{rel: rel, child: child, col: col, order: order}, nil
}

func (s *Sort) Open() error {
	rows, err := Drain(s.child)
	if err != nil {
		return err
	}
	s.sorted = rows
	s.pos = 0

	sort.SliceStable(s.sorted, func(i, j int) bool {
		// Single column, so Compare cannot fail on type.
		c, _ := engine.Compare(s.col.Value(s.sorted[i]), s.col.Value(s.sorted[j]))
		if s.order == Desc {
			return c > 0
		}
		return c < 0
	})
	return nil
}

func (s *Sort) Next() (int, bool, error) {
	if s.pos >= len(s.sorted) {
		return 0, false, nil
	}
	row := s.sorted[s.pos]
	s.pos++
	return row, true, nil
}

func (s *Sort) Close() error {
	s.sorted = nil
	return nil
}

// sortByKey returns the given rows stably ordered by the column's values
// ascending, ties broken by the rows' existing order. Shared by Sort and the
// sort-merge join.
func sortByKey(col *engine.Column, rows []int) []int {
	out := make([]int, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		// Same column, so Compare cannot fail on type.
		c, _ := engine.Compare(col.Value(out[i]), col.Value(out[j]))
		return c < 0
	})
	return out
}
