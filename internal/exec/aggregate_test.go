package exec

import (
	"testing"

	"github.com/leengari/colstore/internal/engine"
	"github.com/leengari/colstore/internal/testutil"
)

func TestAggregate_GroupedSum(t *testing.T) {
	rel := testutil.SalesRelation(t)

	out, err := Aggregate(rel, NewScan(rel), []string{"region"},
		[]AggSpec{{Func: AggSum, Column: "amount"}})
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertRowCount(t, out, 2, "grouped result")
	// Groups appear in first-seen order: east before west.
	testutil.AssertValue(t, out, "region", 0, engine.Text("east"), "first group key")
	testutil.AssertValue(t, out, "sum(amount)", 0, engine.Int(13), "east total")
	testutil.AssertValue(t, out, "region", 1, engine.Text("west"), "second group key")
	testutil.AssertValue(t, out, "sum(amount)", 1, engine.Int(5), "west total")
}

func TestAggregate_MultipleFunctions(t *testing.T) {
	rel := testutil.SalesRelation(t)

	out, err := Aggregate(rel, NewScan(rel), []string{"region"}, []AggSpec{
		{Func: AggCount, Column: "amount", As: "n"},
		{Func: AggMin, Column: "amount", As: "lo"},
		{Func: AggMax, Column: "amount", As: "hi"},
		{Func: AggAvg, Column: "amount", As: "mean"},
	})
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertValue(t, out, "n", 0, engine.Int(2), "east count")
	testutil.AssertValue(t, out, "lo", 0, engine.Int(3), "east min")
	testutil.AssertValue(t, out, "hi", 0, engine.Int(10), "east max")
	testutil.AssertValue(t, out, "mean", 0, engine.Float(6.5), "east avg")
}

func TestAggregate_Global(t *testing.T) {
	rel := testutil.SalesRelation(t)

	out, err := Aggregate(rel, NewScan(rel), nil,
		[]AggSpec{{Func: AggSum, Column: "amount"}, {Func: AggCount, Column: "amount"}})
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertRowCount(t, out, 1, "global result")
	testutil.AssertValue(t, out, "sum(amount)", 0, engine.Int(18), "global sum")
	testutil.AssertValue(t, out, "count(amount)", 0, engine.Int(3), "global count")
}

func TestAggregate_GlobalOverEmptyInput(t *testing.T) {
	rel := testutil.MustRelation(t, "empty",
		[]string{"v"},
		[]engine.ColumnType{engine.TypeInt},
		[][]engine.Value{{}})

	out, err := Aggregate(rel, NewScan(rel), nil, []AggSpec{
		{Func: AggCount, Column: "v"},
		{Func: AggSum, Column: "v"},
		{Func: AggAvg, Column: "v"},
		{Func: AggMin, Column: "v"},
	})
	testutil.AssertNoError(t, err, "aggregate")

	// One row still comes out: count 0, sum 0, avg and min absent.
	testutil.AssertRowCount(t, out, 1, "empty-input result")
	testutil.AssertValue(t, out, "count(v)", 0, engine.Int(0), "count")
	testutil.AssertValue(t, out, "sum(v)", 0, engine.Int(0), "sum")
	testutil.AssertAbsent(t, out, "avg(v)", 0, "avg")
	testutil.AssertAbsent(t, out, "min(v)", 0, "min")
}

func TestAggregate_GroupedOverEmptyInput(t *testing.T) {
	rel := testutil.MustRelation(t, "empty",
		[]string{"k", "v"},
		[]engine.ColumnType{engine.TypeText, engine.TypeInt},
		[][]engine.Value{{}, {}})

	out, err := Aggregate(rel, NewScan(rel), []string{"k"},
		[]AggSpec{{Func: AggSum, Column: "v"}})
	testutil.AssertNoError(t, err, "aggregate")
	testutil.AssertRowCount(t, out, 0, "grouped empty input yields no groups")
}

func TestAggregate_AbsentGroupKey(t *testing.T) {
	rel := testutil.MustRelation(t, "events",
		[]string{"kind", "v"},
		[]engine.ColumnType{engine.TypeText, engine.TypeInt},
		[][]engine.Value{
			{engine.Text("a"), engine.Absent(engine.TypeText), engine.Text("a"), engine.Absent(engine.TypeText)},
			{engine.Int(1), engine.Int(2), engine.Int(3), engine.Int(4)},
		})

	out, err := Aggregate(rel, NewScan(rel), []string{"kind"},
		[]AggSpec{{Func: AggSum, Column: "v"}})
	testutil.AssertNoError(t, err, "aggregate")

	// Rows with an absent key form their own group instead of being dropped.
	testutil.AssertRowCount(t, out, 2, "groups")
	testutil.AssertValue(t, out, "kind", 0, engine.Text("a"), "present group")
	testutil.AssertValue(t, out, "sum(v)", 0, engine.Int(4), "present group sum")
	testutil.AssertAbsent(t, out, "kind", 1, "absent group key")
	testutil.AssertValue(t, out, "sum(v)", 1, engine.Int(6), "absent group sum")
}

func TestAggregate_GroupKeysWithControlBytes(t *testing.T) {
	// Two distinct (a, b) tuples whose raw bytes would concatenate to the
	// same sequence; they must still land in separate groups.
	rel := testutil.MustRelation(t, "tricky",
		[]string{"a", "b", "v"},
		[]engine.ColumnType{engine.TypeText, engine.TypeText, engine.TypeInt},
		[][]engine.Value{
			{engine.Text("a\x00\x02b"), engine.Text("a")},
			{engine.Text("c"), engine.Text("b\x00\x02c")},
			{engine.Int(1), engine.Int(10)},
		})

	out, err := Aggregate(rel, NewScan(rel), []string{"a", "b"},
		[]AggSpec{{Func: AggSum, Column: "v"}})
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertRowCount(t, out, 2, "distinct tuples must not merge")
	testutil.AssertValue(t, out, "sum(v)", 0, engine.Int(1), "first group sum")
	testutil.AssertValue(t, out, "sum(v)", 1, engine.Int(10), "second group sum")
}

func TestAggregate_AbsentSourceValuesSkipped(t *testing.T) {
	rel := testutil.MustRelation(t, "parts",
		[]string{"v"},
		[]engine.ColumnType{engine.TypeInt},
		[][]engine.Value{
			{engine.Int(4), engine.Absent(engine.TypeInt), engine.Int(2)},
		})

	out, err := Aggregate(rel, NewScan(rel), nil, []AggSpec{
		{Func: AggCount, Column: "v"},
		{Func: AggSum, Column: "v"},
		{Func: AggAvg, Column: "v"},
	})
	testutil.AssertNoError(t, err, "aggregate")

	// count sees every row; sum and avg only the present ones.
	testutil.AssertValue(t, out, "count(v)", 0, engine.Int(3), "count")
	testutil.AssertValue(t, out, "sum(v)", 0, engine.Int(6), "sum")
	testutil.AssertValue(t, out, "avg(v)", 0, engine.Float(3), "avg")
}

func TestAggregate_FloatSum(t *testing.T) {
	rel := testutil.OrdersRelation(t)

	out, err := Aggregate(rel, NewScan(rel), nil,
		[]AggSpec{{Func: AggSum, Column: "amount"}})
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertValue(t, out, "sum(amount)", 0, engine.Float(1100.49), "decimal-exact float sum")
}

func TestAggregate_MinMaxOnText(t *testing.T) {
	rel := testutil.SalesRelation(t)

	out, err := Aggregate(rel, NewScan(rel), nil, []AggSpec{
		{Func: AggMin, Column: "region", As: "first"},
		{Func: AggMax, Column: "region", As: "last"},
	})
	testutil.AssertNoError(t, err, "aggregate")

	testutil.AssertValue(t, out, "first", 0, engine.Text("east"), "min text")
	testutil.AssertValue(t, out, "last", 0, engine.Text("west"), "max text")
}

func TestAggregate_Errors(t *testing.T) {
	rel := testutil.SalesRelation(t)

	if _, err := Aggregate(rel, NewScan(rel), nil, nil); !engine.IsSchemaError(err) {
		t.Errorf("no aggregates: expected schema error, got %v", err)
	}
	if _, err := Aggregate(rel, NewScan(rel), []string{"missing"},
		[]AggSpec{{Func: AggCount, Column: "amount"}}); !engine.IsSchemaError(err) {
		t.Errorf("unknown group column: expected schema error, got %v", err)
	}
	if _, err := Aggregate(rel, NewScan(rel), nil,
		[]AggSpec{{Func: AggSum, Column: "region"}}); !engine.IsTypeMismatch(err) {
		t.Errorf("sum over TEXT: expected type mismatch, got %v", err)
	}
}
