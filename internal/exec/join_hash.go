package exec

import (
	"log/slog"

	"github.com/leengari/colstore/internal/engine"
)

// hashJoin builds a value → row positions multimap from the right (build)
// side, then probes it with the left side in storage order, emitting one
// pair per build match per probe row. Absent keys on either side never build
// or probe. Expected O(n + m + output); heavy key skew degrades the probe to
// long bucket chains (documented, not mitigated).
//
// The two phases are an explicit state machine: build runs in Open, probe in
// Next.
type hashJoin struct {
	left       *engine.Relation
	lkey, rkey *engine.Column
	idx        *engine.Index // optional prebuilt table

	table   map[string][]int
	probe   int   // next left row to probe
	matches []int // build rows matching the current probe row
	mi      int
	curLeft int
}

func newHashJoin(left, right *engine.Relation, lkey, rkey *engine.Column, rkeyName string, idx *engine.Index) (*hashJoin, error) {
	if idx != nil {
		if idx.Relation != right.Name || idx.Column != rkeyName || idx.Type() != rkey.Type() {
			return nil, engine.NewSchemaError(right.Name, idx.Column, "supplied index does not cover the join key")
		}
		if idx.Rows() != right.NumRows() {
			return nil, engine.NewSchemaError(right.Name, idx.Column, "index is stale: rebuild after update")
		}
	}
	return &hashJoin{left: left, lkey: lkey, rkey: rkey, idx: idx}, nil
}

func (j *hashJoin) Open() error {
	if j.idx != nil {
		slog.Debug("hash join reusing existing index",
			slog.String("relation", j.idx.Relation),
			slog.String("column", j.idx.Column),
		)
		j.table = j.idx.Buckets()
	} else {
		j.table = make(map[string][]int)
		for i := 0; i < j.rkey.Len(); i++ {
			if !j.rkey.Present(i) {
				continue
			}
			k := engine.KeyOf(j.rkey.Value(i))
			j.table[k] = append(j.table[k], i)
		}
	}
	j.probe = 0
	j.matches = nil
	j.mi = 0
	return nil
}

func (j *hashJoin) Next() (int, int, bool, error) {
	for {
		if j.mi < len(j.matches) {
			r := j.matches[j.mi]
			j.mi++
			return j.curLeft, r, true, nil
		}

		if j.probe >= j.left.NumRows() {
			return 0, 0, false, nil
		}
		l := j.probe
		j.probe++

		if !j.lkey.Present(l) {
			continue
		}
		j.matches = j.table[engine.KeyOf(j.lkey.Value(l))]
		j.mi = 0
		j.curLeft = l
	}
}

func (j *hashJoin) Close() error {
	j.table = nil
	j.matches = nil
	return nil
}
