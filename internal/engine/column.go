package engine

// Column is a homogeneous, densely-indexed vector of typed values with a
// parallel presence bitmap. values and present always share the owning
// relation's row count.
type Column struct {
	typ     ColumnType
	values  []Value
	present []bool
}

func NewColumn(t ColumnType) (*Column, error) {
	if err := validType(t); err != nil {
		return nil, err
	}
	return &Column{typ: t}, nil
}

// NewColumnOf builds a column from a typed literal sequence. Absent markers
// are allowed and must carry the same type tag.
func NewColumnOf(t ColumnType, values ...Value) (*Column, error) {
	c, err := NewColumn(t)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := c.Append(v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Column) Type() ColumnType { return c.typ }
func (c *Column) Len() int         { return len(c.values) }

// Present reports whether the slot at position i holds a value.
func (c *Column) Present(i int) bool { return c.present[i] }

// Value returns the cell at position i, as the absence marker when the slot
// is empty.
func (c *Column) Value(i int) Value {
	if !c.present[i] {
		return Absent(c.typ)
	}
	return c.values[i]
}

func (c *Column) Append(v Value) error {
	if v.typ != c.typ {
		return NewTypeMismatch("", "", v, string(c.typ))
	}
	if v.absent {
		c.values = append(c.values, Value{typ: c.typ})
		c.present = append(c.present, false)
		return nil
	}
	c.values = append(c.values, v)
	c.present = append(c.present, true)
	return nil
}

// Set overwrites the slot at position i in place. Used by Update only.
func (c *Column) Set(i int, v Value) error {
	if v.typ != c.typ {
		return NewTypeMismatch("", "", v, string(c.typ))
	}
	if v.absent {
		c.values[i] = Value{typ: c.typ}
		c.present[i] = false
		return nil
	}
	c.values[i] = v
	c.present[i] = true
	return nil
}

func (c *Column) Int(i int) (int64, bool, error) {
	if c.typ != TypeInt {
		return 0, false, NewTypeMismatch("", "", nil, string(TypeInt))
	}
	return c.values[i].i, c.present[i], nil
}

func (c *Column) Float(i int) (float64, bool, error) {
	if c.typ != TypeFloat {
		return 0, false, NewTypeMismatch("", "", nil, string(TypeFloat))
	}
	return c.values[i].f, c.present[i], nil
}

func (c *Column) Text(i int) (string, bool, error) {
	if c.typ != TypeText {
		return "", false, NewTypeMismatch("", "", nil, string(TypeText))
	}
	return c.values[i].s, c.present[i], nil
}

func (c *Column) Bool(i int) (bool, bool, error) {
	if c.typ != TypeBool {
		return false, false, NewTypeMismatch("", "", nil, string(TypeBool))
	}
	return c.values[i].b, c.present[i], nil
}

// clone deep-copies the column so projections never share storage with their
// source (mutation safety).
func (c *Column) clone() *Column {
	cp := &Column{
		typ:     c.typ,
		values:  make([]Value, len(c.values)),
		present: make([]bool, len(c.present)),
	}
	copy(cp.values, c.values)
	copy(cp.present, c.present)
	return cp
}

// equal reports structural equality: same type, length, presence bitmap and
// stored values. Two absent slots are structurally equal even though they
// never match in query semantics.
func (c *Column) equal(o *Column) bool {
	if c.typ != o.typ || len(c.values) != len(o.values) {
		return false
	}
	for i := range c.values {
		if c.present[i] != o.present[i] {
			return false
		}
		if c.present[i] && opsByType[c.typ].compare(c.values[i], o.values[i]) != 0 {
			return false
		}
	}
	return true
}
