package exec

import (
	"github.com/leengari/colstore/internal/engine"
)

// nestedLoopJoin scans every right row for every left row, evaluating a
// general predicate. O(n*m), but the only strategy that supports
// non-equality conditions; it doubles as the correctness oracle for the
// other two.
type nestedLoopJoin struct {
	left, right *engine.Relation
	pred        JoinPredicate
	l, r        int
}

func newNestedLoopJoin(left, right *engine.Relation, pred JoinPredicate) *nestedLoopJoin {
	return &nestedLoopJoin{left: left, right: right, pred: pred}
}

func (j *nestedLoopJoin) Open() error {
	j.l, j.r = 0, 0
	return nil
}

func (j *nestedLoopJoin) Next() (int, int, bool, error) {
	for j.l < j.left.NumRows() {
		for j.r < j.right.NumRows() {
			l, r := j.l, j.r
			j.r++
			ok, err := j.pred(l, r)
			if err != nil {
				return 0, 0, false, err
			}
			if ok {
				return l, r, true, nil
			}
		}
		j.r = 0
		j.l++
	}
	return 0, 0, false, nil
}

func (j *nestedLoopJoin) Close() error { return nil }
