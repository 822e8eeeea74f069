package exec

import (
	"fmt"

	"github.com/leengari/colstore/internal/engine"
)

// CompareOp is a comparison operator over one relation's column values.
type CompareOp string

const (
	OpEq CompareOp = "="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpLe CompareOp = "<="
	OpGt CompareOp = ">"
	OpGe CompareOp = ">="
)

// Predicate is a boolean expression over one relation's columns, evaluated
// per row identifier. Column names and operand types are validated at
// construction, before any row is read.
//
// Absence follows the excluded-from-match policy: a comparison that reads an
// absent slot is false, without SQL's full three-valued UNKNOWN propagation
// through AND/OR/NOT.
type Predicate interface {
	Eval(row int) (bool, error)
}

type compare struct {
	col *engine.Column
	op  CompareOp
	lit engine.Value
}

// Compare builds a column-vs-literal comparison against rel. Unknown columns
// are a SchemaError, operand type disagreement a TypeMismatch.
func Compare(rel *engine.Relation, column string, op CompareOp, lit engine.Value) (Predicate, error) {
	col, err := rel.Column(column)
	if err != nil {
		return nil, err
	}
	if lit.Type() != col.Type() {
		return nil, engine.NewTypeMismatch(rel.Name, column, lit, string(col.Type()))
	}
	if err := checkOp(op); err != nil {
		return nil, err
	}
	return &compare{col: col, op: op, lit: lit}, nil
}

func (p *compare) Eval(row int) (bool, error) {
	v := p.col.Value(row)
	if v.IsAbsent() || p.lit.IsAbsent() {
		return false, nil
	}
	c, err := engine.Compare(v, p.lit)
	if err != nil {
		return false, err
	}
	return opHolds(p.op, c), nil
}

type compareCols struct {
	left, right *engine.Column
	op          CompareOp
}

// CompareColumns builds a column-vs-column comparison within one relation.
func CompareColumns(rel *engine.Relation, left string, op CompareOp, right string) (Predicate, error) {
	lcol, err := rel.Column(left)
	if err != nil {
		return nil, err
	}
	rcol, err := rel.Column(right)
	if err != nil {
		return nil, err
	}
	if lcol.Type() != rcol.Type() {
		return nil, engine.NewTypeMismatch(rel.Name, right, nil, string(lcol.Type()))
	}
	if err := checkOp(op); err != nil {
		return nil, err
	}
	return &compareCols{left: lcol, right: rcol, op: op}, nil
}

func (p *compareCols) Eval(row int) (bool, error) {
	l, r := p.left.Value(row), p.right.Value(row)
	if l.IsAbsent() || r.IsAbsent() {
		return false, nil
	}
	c, err := engine.Compare(l, r)
	if err != nil {
		return false, err
	}
	return opHolds(p.op, c), nil
}

type andPred struct{ left, right Predicate }
type orPred struct{ left, right Predicate }
type notPred struct{ inner Predicate }

// And short-circuits: the right side is not evaluated when the left is false.
func And(left, right Predicate) Predicate { return &andPred{left, right} }

// Or short-circuits: the right side is not evaluated when the left is true.
func Or(left, right Predicate) Predicate { return &orPred{left, right} }

// Not negates its operand. A comparison over an absent slot is plain false,
// so Not can select rows whose referenced slot is absent.
func Not(inner Predicate) Predicate { return &notPred{inner} }

func (p *andPred) Eval(row int) (bool, error) {
	ok, err := p.left.Eval(row)
	if err != nil || !ok {
		return false, err
	}
	return p.right.Eval(row)
}

func (p *orPred) Eval(row int) (bool, error) {
	ok, err := p.left.Eval(row)
	if err != nil || ok {
		return ok, err
	}
	return p.right.Eval(row)
}

func (p *notPred) Eval(row int) (bool, error) {
	ok, err := p.inner.Eval(row)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func checkOp(op CompareOp) error {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return nil
	}
	return fmt.Errorf("unknown comparison operator %q", op)
}

func opHolds(op CompareOp, cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	default:
		return cmp >= 0
	}
}
