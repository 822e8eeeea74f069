package exec

import (
	"fmt"
	"log/slog"

	"github.com/leengari/colstore/internal/engine"
)

// JoinStrategy selects the join algorithm.
type JoinStrategy int

const (
	NestedLoop JoinStrategy = iota
	SortMerge
	Hash
)

func (js JoinStrategy) String() string {
	switch js {
	case NestedLoop:
		return "nested-loop"
	case SortMerge:
		return "sort-merge"
	default:
		return "hash"
	}
}

// JoinPredicate is a general condition over one row from each side. Only the
// nested-loop strategy supports it.
type JoinPredicate func(left, right int) (bool, error)

// JoinSpec describes an inner join between two relations: either an equi-key
// (one column per side, same type) or, for nested-loop only, a general
// predicate.
type JoinSpec struct {
	LeftKey   string
	RightKey  string
	Predicate JoinPredicate
	Strategy  JoinStrategy

	// RightIndex optionally reuses an existing index on the right relation's
	// key column as the hash join's build table instead of building a fresh
	// one. Ignored by the other strategies.
	RightIndex *engine.Index
}

// PairStream produces matched (left row, right row) identifier pairs. Same
// single-pass contract as RowStream.
type PairStream interface {
	Open() error
	Next() (left, right int, ok bool, err error)
	Close() error
}

// ExecuteJoin runs an inner join and materializes the result. Output columns
// are the left relation's then the right's, each qualified as
// "relation.column" so the schema never depends on the other side's names.
// Unmatched rows are dropped; rows with an absent key never match. All three
// strategies produce the same output multiset for the same equi-join inputs.
func ExecuteJoin(left, right *engine.Relation, spec JoinSpec) (*engine.Relation, error) {
	stream, err := NewJoinStream(left, right, spec)
	if err != nil {
		return nil, err
	}

	out, rows, err := materializeJoin(left, right, stream)
	if err != nil {
		return nil, err
	}

	slog.Info("join completed",
		slog.String("left", left.Name),
		slog.String("right", right.Name),
		slog.String("strategy", spec.Strategy.String()),
		slog.Int("result_rows", rows),
	)
	return out, nil
}

// NewJoinStream validates the spec and builds the strategy's pair stream.
// Validation happens here, at construction: unknown columns are SchemaError,
// key type disagreement TypeMismatch, and a general predicate on sort-merge
// or hash is UnsupportedPredicate.
func NewJoinStream(left, right *engine.Relation, spec JoinSpec) (PairStream, error) {
	if spec.Predicate != nil && spec.Strategy != NestedLoop {
		return nil, engine.NewUnsupportedPredicate(
			fmt.Sprintf("%s join supports only key equality; use nested-loop for general predicates", spec.Strategy))
	}

	var lkey, rkey *engine.Column
	if spec.LeftKey != "" || spec.RightKey != "" {
		var err error
		lkey, err = left.Column(spec.LeftKey)
		if err != nil {
			return nil, err
		}
		rkey, err = right.Column(spec.RightKey)
		if err != nil {
			return nil, err
		}
		if lkey.Type() != rkey.Type() {
			return nil, engine.NewTypeMismatch(right.Name, spec.RightKey, nil, string(lkey.Type()))
		}
	}

	switch spec.Strategy {
	case NestedLoop:
		pred := spec.Predicate
		if pred == nil {
			if lkey == nil {
				return nil, engine.NewUnsupportedPredicate("nested-loop join needs a key pair or a predicate")
			}
			pred = equalityPredicate(lkey, rkey)
		}
		return newNestedLoopJoin(left, right, pred), nil
	case SortMerge:
		if lkey == nil {
			return nil, engine.NewUnsupportedPredicate("sort-merge join requires an equi-join key")
		}
		return newMergeJoin(left, right, lkey, rkey), nil
	case Hash:
		if lkey == nil {
			return nil, engine.NewUnsupportedPredicate("hash join requires an equi-join key")
		}
		return newHashJoin(left, right, lkey, rkey, spec.RightKey, spec.RightIndex)
	}
	return nil, fmt.Errorf("unknown join strategy %d", spec.Strategy)
}

// equalityPredicate lifts key equality into a general predicate so
// nested-loop can serve as the oracle for the other strategies. Absent keys
// never match.
func equalityPredicate(lkey, rkey *engine.Column) JoinPredicate {
	return func(l, r int) (bool, error) {
		return engine.Equal(lkey.Value(l), rkey.Value(r))
	}
}

// materializeJoin drains a pair stream into the concatenated output
// relation, qualifying every column with its source relation's name.
func materializeJoin(left, right *engine.Relation, stream PairStream) (*engine.Relation, int, error) {
	out := engine.NewRelation(fmt.Sprintf("%s_%s_join", left.Name, right.Name))

	type binding struct {
		src  *engine.Column
		dst  *engine.Column
		side int // 0 = left, 1 = right
	}
	var bindings []binding

	addSide := func(rel *engine.Relation, side int) error {
		for _, name := range rel.ColumnNames() {
			src, err := rel.Column(name)
			if err != nil {
				return err
			}
			dst, err := engine.NewColumn(src.Type())
			if err != nil {
				return err
			}
			if err := out.AddColumn(fmt.Sprintf("%s.%s", rel.Name, name), dst); err != nil {
				return err
			}
			bindings = append(bindings, binding{src: src, dst: dst, side: side})
		}
		return nil
	}
	if err := addSide(left, 0); err != nil {
		return nil, 0, err
	}
	if err := addSide(right, 1); err != nil {
		return nil, 0, err
	}

	if err := stream.Open(); err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	rows := 0
	for {
		l, r, ok, err := stream.Next()
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return out, rows, nil
		}
		for _, b := range bindings {
			row := l
			if b.side == 1 {
				row = r
			}
			if err := b.dst.Append(b.src.Value(row)); err != nil {
				return nil, 0, err
			}
		}
		rows++
	}
}
