package engine

import "fmt"

// Row is one tuple keyed by column name, used at the FromRows/IterRows
// boundary with import/export collaborators. The core stores columns, not
// rows.
type Row map[string]Value

// ColumnDef names one column of a relation schema.
type ColumnDef struct {
	Name string
	Type ColumnType
}

// Relation is an in-memory table: an ordered set of equally-long columns.
// The column name set is fixed at creation; only Update mutates cells, and
// only in place.
type Relation struct {
	Name  string
	names []string
	cols  map[string]*Column
}

func NewRelation(name string) *Relation {
	return &Relation{
		Name: name,
		cols: make(map[string]*Column),
	}
}

// AddColumn appends a column to the relation schema. The column's length must
// match the current row count (any length is fine for the first column).
func (r *Relation) AddColumn(name string, col *Column) error {
	if _, exists := r.cols[name]; exists {
		return NewSchemaError(r.Name, name, "duplicate column name")
	}
	if len(r.names) > 0 && col.Len() != r.NumRows() {
		return NewSchemaError(r.Name, name,
			fmt.Sprintf("row count mismatch: column has %d rows, relation has %d", col.Len(), r.NumRows()))
	}
	r.names = append(r.names, name)
	r.cols[name] = col
	return nil
}

// ColumnNames returns the schema order. Callers must not mutate the slice.
func (r *Relation) ColumnNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

func (r *Relation) Column(name string) (*Column, error) {
	col, ok := r.cols[name]
	if !ok {
		return nil, NewUnknownColumn(r.Name, name)
	}
	return col, nil
}

func (r *Relation) HasColumn(name string) bool {
	_, ok := r.cols[name]
	return ok
}

func (r *Relation) NumRows() int {
	if len(r.names) == 0 {
		return 0
	}
	return r.cols[r.names[0]].Len()
}

// Value returns the cell at (column, row).
func (r *Relation) Value(column string, row int) (Value, error) {
	col, err := r.Column(column)
	if err != nil {
		return Value{}, err
	}
	if row < 0 || row >= col.Len() {
		return Value{}, NewSchemaError(r.Name, column, fmt.Sprintf("row %d out of range", row))
	}
	return col.Value(row), nil
}

// FromRows builds a relation from a schema and typed row data. This is the
// entry point for import collaborators; the core never parses raw text.
func FromRows(name string, schema []ColumnDef, rows []Row) (*Relation, error) {
	rel := NewRelation(name)
	for _, def := range schema {
		col, err := NewColumn(def.Type)
		if err != nil {
			return nil, err
		}
		if err := rel.AddColumn(def.Name, col); err != nil {
			return nil, err
		}
	}
	for _, row := range rows {
		if err := rel.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return rel, nil
}

// AppendRow appends one tuple. Missing keys become absent slots; unknown
// keys are a schema error. Appends are all-or-nothing: the row is validated
// against every column type before any column grows.
func (r *Relation) AppendRow(row Row) error {
	for name := range row {
		if !r.HasColumn(name) {
			return NewUnknownColumn(r.Name, name)
		}
	}
	for _, name := range r.names {
		v, ok := row[name]
		if !ok {
			continue
		}
		if !v.absent && v.typ != r.cols[name].typ {
			return NewTypeMismatch(r.Name, name, v, string(r.cols[name].typ))
		}
	}
	for _, name := range r.names {
		col := r.cols[name]
		v, ok := row[name]
		if !ok {
			v = Absent(col.typ)
		}
		if v.absent {
			v = Absent(col.typ)
		}
		if err := col.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// RowAt materializes the tuple at position i.
func (r *Relation) RowAt(i int) Row {
	row := make(Row, len(r.names))
	for _, name := range r.names {
		row[name] = r.cols[name].Value(i)
	}
	return row
}

// IterRows walks every tuple in storage order. This is the export half of the
// row boundary; fn returning an error stops the walk.
func (r *Relation) IterRows(fn func(i int, row Row) error) error {
	for i := 0; i < r.NumRows(); i++ {
		if err := fn(i, r.RowAt(i)); err != nil {
			return err
		}
	}
	return nil
}

// Schema returns the column definitions in schema order.
func (r *Relation) Schema() []ColumnDef {
	defs := make([]ColumnDef, len(r.names))
	for i, name := range r.names {
		defs[i] = ColumnDef{Name: name, Type: r.cols[name].typ}
	}
	return defs
}

// Clone deep-copies the relation; no column storage is shared.
func (r *Relation) Clone() *Relation {
	cp := NewRelation(r.Name)
	for _, name := range r.names {
		cp.names = append(cp.names, name)
		cp.cols[name] = r.cols[name].clone()
	}
	return cp
}

// Equal reports structural equality of schema and data, used to verify
// update atomicity and projection round-trips.
func (r *Relation) Equal(o *Relation) bool {
	if len(r.names) != len(o.names) {
		return false
	}
	for i, name := range r.names {
		if o.names[i] != name {
			return false
		}
		if !r.cols[name].equal(o.cols[name]) {
			return false
		}
	}
	return true
}
