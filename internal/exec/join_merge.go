package exec

import (
	"github.com/leengari/colstore/internal/engine"
)

// mergeJoin sorts both sides by key and merges the sorted runs, emitting the
// full cross-product of every matching key group. The sort phase runs in
// Open, the merge in Next. Sorting is stable with ties broken by original
// row order; rows with an absent key are excluded before merging. O(n log n
// + m log m + output).
type mergeJoin struct {
	lkey, rkey *engine.Column

	lrows, rrows []int // key-present rows, sorted by key
	li, ri       int   // current run start on each side
	lend, rend   int   // run end (exclusive) once matched
	lc, rc       int   // cross-product cursors within the matched runs
	merging      bool
}

func newMergeJoin(left, right *engine.Relation, lkey, rkey *engine.Column) *mergeJoin {
	return &mergeJoin{lkey: lkey, rkey: rkey, lrows: presentRows(left, lkey), rrows: presentRows(right, rkey)}
}

func presentRows(rel *engine.Relation, key *engine.Column) []int {
	var rows []int
	for i := 0; i < rel.NumRows(); i++ {
		if key.Present(i) {
			rows = append(rows, i)
		}
	}
	return rows
}

func (j *mergeJoin) Open() error {
	j.lrows = sortByKey(j.lkey, j.lrows)
	j.rrows = sortByKey(j.rkey, j.rrows)
	j.li, j.ri = 0, 0
	j.merging = false
	return nil
}

func (j *mergeJoin) Next() (int, int, bool, error) {
	for {
		if j.merging {
			if j.lc < j.lend {
				l, r := j.lrows[j.lc], j.rrows[j.rc]
				j.rc++
				if j.rc >= j.rend {
					j.rc = j.ri
					j.lc++
				}
				return l, r, true, nil
			}
			// Runs exhausted; advance both sides past them.
			j.li, j.ri = j.lend, j.rend
			j.merging = false
		}

		if j.li >= len(j.lrows) || j.ri >= len(j.rrows) {
			return 0, 0, false, nil
		}

		lv := j.lkey.Value(j.lrows[j.li])
		rv := j.rkey.Value(j.rrows[j.ri])
		// Keys are validated same-typed at construction.
		c, err := engine.Compare(lv, rv)
		if err != nil {
			return 0, 0, false, err
		}
		switch {
		case c < 0:
			j.li++
		case c > 0:
			j.ri++
		default:
			j.lend = runEnd(j.lkey, j.lrows, j.li)
			j.rend = runEnd(j.rkey, j.rrows, j.ri)
			j.lc, j.rc = j.li, j.ri
			j.merging = true
		}
	}
}

func (j *mergeJoin) Close() error {
	j.lrows, j.rrows = nil, nil
	return nil
}

// runEnd finds the exclusive end of the equal-key run starting at position i.
func runEnd(key *engine.Column, rows []int, i int) int {
	v := key.Value(rows[i])
	end := i + 1
	for end < len(rows) {
		if c, _ := engine.Compare(key.Value(rows[end]), v); c != 0 {
			break
		}
		end++
	}
	return end
}
