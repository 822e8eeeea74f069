package testutil

import (
	"testing"

	"github.com/leengari/colstore/internal/engine"
)

// MustRelation builds a relation from columns of literal values, failing the
// test on any construction error.
func MustRelation(t *testing.T, name string, cols []string, types []engine.ColumnType, values [][]engine.Value) *engine.Relation {
	t.Helper()
	rel := engine.NewRelation(name)
	for i, colName := range cols {
		col, err := engine.NewColumnOf(types[i], values[i]...)
		if err != nil {
			t.Fatalf("building column %s: %v", colName, err)
		}
		if err := rel.AddColumn(colName, col); err != nil {
			t.Fatalf("adding column %s: %v", colName, err)
		}
	}
	return rel
}

// SalesRelation returns Sales(region TEXT, amount INT) with the rows
// ("east",10), ("west",5), ("east",3).
func SalesRelation(t *testing.T) *engine.Relation {
	t.Helper()
	return MustRelation(t, "sales",
		[]string{"region", "amount"},
		[]engine.ColumnType{engine.TypeText, engine.TypeInt},
		[][]engine.Value{
			{engine.Text("east"), engine.Text("west"), engine.Text("east")},
			{engine.Int(10), engine.Int(5), engine.Int(3)},
		})
}

// UsersRelation returns users(id INT, name TEXT) with three rows; user 3 has
// an absent name.
func UsersRelation(t *testing.T) *engine.Relation {
	t.Helper()
	return MustRelation(t, "users",
		[]string{"id", "name"},
		[]engine.ColumnType{engine.TypeInt, engine.TypeText},
		[][]engine.Value{
			{engine.Int(1), engine.Int(2), engine.Int(3)},
			{engine.Text("alice"), engine.Text("bob"), engine.Absent(engine.TypeText)},
		})
}

// OrdersRelation returns orders(id INT, user_id INT, amount FLOAT); order 3
// has an absent user_id.
func OrdersRelation(t *testing.T) *engine.Relation {
	t.Helper()
	return MustRelation(t, "orders",
		[]string{"id", "user_id", "amount"},
		[]engine.ColumnType{engine.TypeInt, engine.TypeInt, engine.TypeFloat},
		[][]engine.Value{
			{engine.Int(1), engine.Int(2), engine.Int(3)},
			{engine.Int(1), engine.Int(1), engine.Absent(engine.TypeInt)},
			{engine.Float(999.99), engine.Float(25.50), engine.Float(75.00)},
		})
}
