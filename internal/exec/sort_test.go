package exec

import (
	"testing"

	"github.com/leengari/colstore/internal/engine"
	"github.com/leengari/colstore/internal/testutil"
)

func TestSort_Ascending(t *testing.T) {
	rel := testutil.SalesRelation(t)
	s, err := NewSort(rel, NewScan(rel), "amount", Asc)
	testutil.AssertNoError(t, err, "build sort")

	rows, err := Drain(s)
	testutil.AssertNoError(t, err, "drain sort")
	want := []int{2, 1, 0} // amounts 3, 5, 10
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("ascending order = %v, want %v", rows, want)
		}
	}
}

func TestSort_Descending(t *testing.T) {
	rel := testutil.SalesRelation(t)
	s, err := NewSort(rel, NewScan(rel), "amount", Desc)
	testutil.AssertNoError(t, err, "build sort")

	rows, err := Drain(s)
	testutil.AssertNoError(t, err, "drain sort")
	want := []int{0, 1, 2}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("descending order = %v, want %v", rows, want)
		}
	}
}

func TestSort_StableOnTies(t *testing.T) {
	rel := testutil.MustRelation(t, "ties",
		[]string{"k"},
		[]engine.ColumnType{engine.TypeInt},
		[][]engine.Value{
			{engine.Int(2), engine.Int(1), engine.Int(2), engine.Int(1)},
		})
	s, err := NewSort(rel, NewScan(rel), "k", Asc)
	testutil.AssertNoError(t, err, "build sort")

	rows, err := Drain(s)
	testutil.AssertNoError(t, err, "drain sort")
	want := []int{1, 3, 0, 2} // ties keep upstream order
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("stable order = %v, want %v", rows, want)
		}
	}
}

func TestSort_AbsentFirstAscending(t *testing.T) {
	rel := testutil.OrdersRelation(t)
	s, err := NewSort(rel, NewScan(rel), "user_id", Asc)
	testutil.AssertNoError(t, err, "build sort")

	rows, err := Drain(s)
	testutil.AssertNoError(t, err, "drain sort")
	if rows[0] != 2 {
		t.Errorf("ascending sort order = %v, want the absent row first", rows)
	}
}

func TestSort_UnknownColumn(t *testing.T) {
	rel := testutil.SalesRelation(t)
	if _, err := NewSort(rel, NewScan(rel), "missing", Asc); !engine.IsSchemaError(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}
