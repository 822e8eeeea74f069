package exec

import (
	"log/slog"

	"github.com/leengari/colstore/internal/engine"
)

// Assignment sets one column to a new value for every matched row. An absent
// value clears the slot.
type Assignment struct {
	Column string
	Value  engine.Value
}

// Update evaluates the predicate once per row to collect the affected
// positions, then applies all assignments to them in order. The call is
// all-or-nothing: every assignment is validated against its column's type
// before any cell is written, so a failed update leaves the relation
// unchanged. Row count and column set never change.
//
// Update assumes the single-writer discipline: no pipeline may be reading
// the relation concurrently, and any index on an assigned column is stale
// afterwards until rebuilt.
func Update(rel *engine.Relation, pred Predicate, assigns []Assignment) (int, error) {
	if len(assigns) == 0 {
		return 0, engine.NewSchemaError(rel.Name, "", "update needs at least one assignment")
	}

	cols := make([]*engine.Column, len(assigns))
	for i, a := range assigns {
		col, err := rel.Column(a.Column)
		if err != nil {
			return 0, err
		}
		if a.Value.Type() != col.Type() {
			return 0, engine.NewTypeMismatch(rel.Name, a.Column, a.Value, string(col.Type()))
		}
		cols[i] = col
	}

	var matched []int
	for row := 0; row < rel.NumRows(); row++ {
		ok, err := pred.Eval(row)
		if err != nil {
			return 0, err
		}
		if ok {
			matched = append(matched, row)
		}
	}

	for _, row := range matched {
		for i, a := range assigns {
			if err := cols[i].Set(row, a.Value); err != nil {
				// Unreachable after the validation pass; surface it anyway.
				return 0, err
			}
		}
	}

	slog.Debug("update applied",
		slog.String("relation", rel.Name),
		slog.Int("rows_affected", len(matched)),
		slog.Int("assignments", len(assigns)),
	)
	return len(matched), nil
}
