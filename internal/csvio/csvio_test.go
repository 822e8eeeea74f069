package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leengari/colstore/internal/engine"
	"github.com/leengari/colstore/internal/testutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad_TypeInference(t *testing.T) {
	path := writeFile(t, "mixed.csv",
		"id,score,active,label\n"+
			"1,1.5,true,alpha\n"+
			"2,2,false,beta\n")

	rel, err := Load(path, "mixed", 0, nil)
	testutil.AssertNoError(t, err, "load")

	wantTypes := map[string]engine.ColumnType{
		"id":     engine.TypeInt,
		"score":  engine.TypeFloat, // "2" parses as int but "1.5" forces float
		"active": engine.TypeBool,
		"label":  engine.TypeText,
	}
	for name, want := range wantTypes {
		col, err := rel.Column(name)
		testutil.AssertNoError(t, err, "column "+name)
		if col.Type() != want {
			t.Errorf("column %s inferred %s, want %s", name, col.Type(), want)
		}
	}
	testutil.AssertValue(t, rel, "id", 1, engine.Int(2), "int cell")
	testutil.AssertValue(t, rel, "score", 0, engine.Float(1.5), "float cell")
	testutil.AssertValue(t, rel, "active", 0, engine.Bool(true), "bool cell")
	testutil.AssertValue(t, rel, "label", 1, engine.Text("beta"), "text cell")
}

func TestLoad_EmptyFieldsBecomeAbsent(t *testing.T) {
	path := writeFile(t, "gaps.csv",
		"id,name\n"+
			"1,alice\n"+
			"2,\n"+
			"3,carol\n")

	rel, err := Load(path, "people", 0, nil)
	testutil.AssertNoError(t, err, "load")

	testutil.AssertAbsent(t, rel, "name", 1, "empty field")
	testutil.AssertValue(t, rel, "name", 2, engine.Text("carol"), "present field")

	// The id column stays INT: absence never widens a column to text.
	col, err := rel.Column("id")
	testutil.AssertNoError(t, err, "id column")
	if col.Type() != engine.TypeInt {
		t.Errorf("id inferred %s, want INT", col.Type())
	}
}

func TestLoad_AllEmptyColumnIsText(t *testing.T) {
	path := writeFile(t, "blank.csv", "id,note\n1,\n2,\n")

	rel, err := Load(path, "blank", 0, nil)
	testutil.AssertNoError(t, err, "load")

	col, err := rel.Column("note")
	testutil.AssertNoError(t, err, "note column")
	if col.Type() != engine.TypeText {
		t.Errorf("empty column inferred %s, want TEXT", col.Type())
	}
	testutil.AssertAbsent(t, rel, "note", 0, "empty column slot")
}

func TestLoad_SelectColumns(t *testing.T) {
	path := writeFile(t, "wide.csv", "a,b,c\n1,2,3\n")

	rel, err := Load(path, "wide", 0, []string{"c", "a"})
	testutil.AssertNoError(t, err, "load")

	// Kept columns stay in header order regardless of selection order.
	names := rel.ColumnNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("columns = %v, want [a c]", names)
	}
}

func TestLoad_CustomComma(t *testing.T) {
	path := writeFile(t, "semi.csv", "id;name\n1;alice\n")

	rel, err := Load(path, "semi", ';', nil)
	testutil.AssertNoError(t, err, "load")
	testutil.AssertValue(t, rel, "name", 0, engine.Text("alice"), "semicolon-separated cell")
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), "x", 0, nil); err == nil {
		t.Error("missing file: expected an error")
	}

	empty := writeFile(t, "empty.csv", "")
	if _, err := Load(empty, "x", 0, nil); err == nil {
		t.Error("missing header: expected an error")
	}

	path := writeFile(t, "wide.csv", "a,b\n1,2\n")
	if _, err := Load(path, "x", 0, []string{"z"}); err == nil {
		t.Error("unmatched selection: expected an error")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	rel := testutil.MustRelation(t, "orders",
		[]string{"id", "user_id", "amount"},
		[]engine.ColumnType{engine.TypeInt, engine.TypeInt, engine.TypeFloat},
		[][]engine.Value{
			{engine.Int(1), engine.Int(2), engine.Int(3)},
			{engine.Int(1), engine.Int(1), engine.Absent(engine.TypeInt)},
			{engine.Float(999.99), engine.Float(25.5), engine.Float(75)},
		})

	path := filepath.Join(t.TempDir(), "orders.csv")
	testutil.AssertNoError(t, Save(path, rel, 0), "save")

	back, err := Load(path, "orders", 0, nil)
	testutil.AssertNoError(t, err, "load back")

	testutil.AssertRowCount(t, back, 3, "round trip")
	testutil.AssertValue(t, back, "id", 0, engine.Int(1), "int cell")
	testutil.AssertAbsent(t, back, "user_id", 2, "absent slot survives")
	testutil.AssertValue(t, back, "amount", 0, engine.Float(999.99), "float cell")
}
