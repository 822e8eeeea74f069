package exec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leengari/colstore/internal/engine"
)

// AggFunc is one of the supported aggregate functions.
type AggFunc string

const (
	AggCount AggFunc = "count"
	AggSum   AggFunc = "sum"
	AggMin   AggFunc = "min"
	AggMax   AggFunc = "max"
	AggAvg   AggFunc = "avg"
)

// AggSpec requests one aggregate over a source column. As renames the output
// column; empty defaults to "func(column)".
type AggSpec struct {
	Func   AggFunc
	Column string
	As     string
}

func (a AggSpec) name() string {
	if a.As != "" {
		return a.As
	}
	return fmt.Sprintf("%s(%s)", a.Func, a.Column)
}

// accumulator carries the running state for one (group, aggregate) pair.
// Sums run in decimal so integer sums cannot overflow int64 mid-stream and
// float sums keep full precision until emission.
type accumulator struct {
	count   int64
	present int64
	sum     decimal.Decimal
	min     engine.Value
	max     engine.Value
}

type group struct {
	values []engine.Value // group-by column values, absence preserved
	accs   []*accumulator
}

// Aggregate consumes the upstream stream in a single pass, mapping each
// absence-aware group key to running accumulators. Rows with an absent value
// in a group-by column form their own group rather than being dropped.
//
//   - count counts rows, ignoring presence
//   - sum/min/max/avg skip absent source values
//   - avg emits absent when a group had zero present source values
//
// Output columns are the group-by columns then the aggregates in request
// order; group rows appear in first-seen order, which is deterministic for a
// given input.
func Aggregate(rel *engine.Relation, stream RowStream, groupBy []string, aggs []AggSpec) (*engine.Relation, error) {
	if len(aggs) == 0 {
		return nil, engine.NewSchemaError(rel.Name, "", "aggregate needs at least one aggregate function")
	}

	groupCols := make([]*engine.Column, len(groupBy))
	for i, name := range groupBy {
		col, err := rel.Column(name)
		if err != nil {
			return nil, err
		}
		groupCols[i] = col
	}

	srcCols := make([]*engine.Column, len(aggs))
	for i, spec := range aggs {
		col, err := rel.Column(spec.Column)
		if err != nil {
			return nil, err
		}
		if err := checkAggType(rel.Name, spec, col.Type()); err != nil {
			return nil, err
		}
		srcCols[i] = col
	}

	groups := make(map[string]*group)
	var order []string // first-seen group keys

	err := Each(stream, func(row int) error {
		key := groupKey(groupCols, row)
		g, ok := groups[key]
		if !ok {
			g = &group{
				values: make([]engine.Value, len(groupCols)),
				accs:   make([]*accumulator, len(aggs)),
			}
			for i, col := range groupCols {
				g.values[i] = col.Value(row)
			}
			for i := range aggs {
				g.accs[i] = &accumulator{}
			}
			groups[key] = g
			order = append(order, key)
		}
		for i, spec := range aggs {
			if err := g.accs[i].merge(spec.Func, srcCols[i].Value(row)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// No group-bys over zero rows still yields one output row (count=0 etc.).
	if len(groupBy) == 0 && len(order) == 0 {
		g := &group{accs: make([]*accumulator, len(aggs))}
		for i := range aggs {
			g.accs[i] = &accumulator{}
		}
		groups[""] = g
		order = append(order, "")
	}

	out := engine.NewRelation(rel.Name)
	outCols := make([]*engine.Column, 0, len(groupBy)+len(aggs))
	for i, name := range groupBy {
		col, err := engine.NewColumn(groupCols[i].Type())
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(name, col); err != nil {
			return nil, err
		}
		outCols = append(outCols, col)
	}
	for i, spec := range aggs {
		col, err := engine.NewColumn(aggResultType(spec.Func, srcCols[i].Type()))
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(spec.name(), col); err != nil {
			return nil, err
		}
		outCols = append(outCols, col)
	}

	for _, key := range order {
		g := groups[key]
		for i := range groupBy {
			if err := outCols[i].Append(g.values[i]); err != nil {
				return nil, err
			}
		}
		for i, spec := range aggs {
			v := g.accs[i].result(spec.Func, srcCols[i].Type())
			if err := outCols[len(groupBy)+i].Append(v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (a *accumulator) merge(fn AggFunc, v engine.Value) error {
	a.count++
	if v.IsAbsent() {
		return nil
	}
	switch fn {
	case AggCount:
		// presence irrelevant
	case AggSum, AggAvg:
		d, err := toDecimal(v)
		if err != nil {
			return err
		}
		a.sum = a.sum.Add(d)
		a.present++
	case AggMin, AggMax:
		if a.present == 0 {
			a.min, a.max = v, v
		} else {
			// Same source column, so Compare cannot fail on type.
			if c, _ := engine.Compare(v, a.min); c < 0 {
				a.min = v
			}
			if c, _ := engine.Compare(v, a.max); c > 0 {
				a.max = v
			}
		}
		a.present++
	}
	return nil
}

func (a *accumulator) result(fn AggFunc, src engine.ColumnType) engine.Value {
	switch fn {
	case AggCount:
		return engine.Int(a.count)
	case AggSum:
		if src == engine.TypeInt {
			return engine.Int(a.sum.IntPart())
		}
		return engine.Float(a.sum.InexactFloat64())
	case AggAvg:
		if a.present == 0 {
			return engine.Absent(engine.TypeFloat)
		}
		avg := a.sum.Div(decimal.NewFromInt(a.present))
		return engine.Float(avg.InexactFloat64())
	case AggMin:
		if a.present == 0 {
			return engine.Absent(src)
		}
		return a.min
	default: // AggMax
		if a.present == 0 {
			return engine.Absent(src)
		}
		return a.max
	}
}

func checkAggType(relation string, spec AggSpec, t engine.ColumnType) error {
	switch spec.Func {
	case AggCount, AggMin, AggMax:
		return nil // ordering is total for every supported type
	case AggSum, AggAvg:
		if t != engine.TypeInt && t != engine.TypeFloat {
			return engine.NewTypeMismatch(relation, spec.Column, nil, "INT or FLOAT")
		}
		return nil
	}
	return fmt.Errorf("unknown aggregate function %q", spec.Func)
}

func aggResultType(fn AggFunc, src engine.ColumnType) engine.ColumnType {
	switch fn {
	case AggCount:
		return engine.TypeInt
	case AggAvg:
		return engine.TypeFloat
	case AggSum:
		if src == engine.TypeInt {
			return engine.TypeInt
		}
		return engine.TypeFloat
	default: // min/max keep the source type
		return src
	}
}

func toDecimal(v engine.Value) (decimal.Decimal, error) {
	switch v.Type() {
	case engine.TypeInt:
		i, err := v.Int()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(i), nil
	case engine.TypeFloat:
		f, err := v.Float()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromFloat(f), nil
	}
	return decimal.Zero, engine.NewTypeMismatch("", "", v, "INT or FLOAT")
}

// groupKey encodes the group-by values at a row into a collision-free key.
// Each component is length-prefixed so text values containing any byte
// sequence stay unambiguous. Absent slots get their own marker so they group
// together instead of being dropped.
func groupKey(cols []*engine.Column, row int) string {
	if len(cols) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, col := range cols {
		v := col.Value(row)
		if v.IsAbsent() {
			sb.WriteString("-;")
			continue
		}
		k := engine.KeyOf(v)
		sb.WriteString(strconv.Itoa(len(k)))
		sb.WriteByte(';')
		sb.WriteString(k)
	}
	return sb.String()
}
