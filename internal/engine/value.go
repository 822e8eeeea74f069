package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ColumnType string

const (
	TypeInt   ColumnType = "INT"
	TypeFloat ColumnType = "FLOAT"
	TypeText  ColumnType = "TEXT"
	TypeBool  ColumnType = "BOOL"
)

// Value is a single typed cell. The type tag set is closed; all dispatch
// goes through the per-type ops table below rather than reflection.
type Value struct {
	typ    ColumnType
	absent bool
	i      int64
	f      float64
	s      string
	b      bool
}

func Int(v int64) Value     { return Value{typ: TypeInt, i: v} }
func Float(v float64) Value { return Value{typ: TypeFloat, f: v} }
func Text(v string) Value   { return Value{typ: TypeText, s: v} }
func Bool(v bool) Value     { return Value{typ: TypeBool, b: v} }

// Absent returns the absence marker for the given column type. An absent
// value compares unequal to everything, including another absent value.
func Absent(t ColumnType) Value { return Value{typ: t, absent: true} }

func (v Value) Type() ColumnType { return v.typ }
func (v Value) IsAbsent() bool   { return v.absent }

func (v Value) Int() (int64, error) {
	if v.typ != TypeInt {
		return 0, NewTypeMismatch("", "", v, string(TypeInt))
	}
	return v.i, nil
}

func (v Value) Float() (float64, error) {
	if v.typ != TypeFloat {
		return 0, NewTypeMismatch("", "", v, string(TypeFloat))
	}
	return v.f, nil
}

func (v Value) Text() (string, error) {
	if v.typ != TypeText {
		return "", NewTypeMismatch("", "", v, string(TypeText))
	}
	return v.s, nil
}

func (v Value) Bool() (bool, error) {
	if v.typ != TypeBool {
		return false, NewTypeMismatch("", "", v, string(TypeBool))
	}
	return v.b, nil
}

func (v Value) String() string {
	if v.absent {
		return ""
	}
	switch v.typ {
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// typeOps is the per-type dispatch table for ordering and hash keys.
type typeOps struct {
	compare func(a, b Value) int
	key     func(v Value) string
}

var opsByType = map[ColumnType]typeOps{
	TypeInt: {
		compare: func(a, b Value) int { return compareInt64(a.i, b.i) },
		key:     func(v Value) string { return strconv.FormatInt(v.i, 10) },
	},
	TypeFloat: {
		// NaN orders first so the ordering stays total.
		compare: func(a, b Value) int {
			switch {
			case math.IsNaN(a.f):
				if math.IsNaN(b.f) {
					return 0
				}
				return -1
			case math.IsNaN(b.f):
				return 1
			case a.f < b.f:
				return -1
			case a.f > b.f:
				return 1
			}
			return 0
		},
		// Key by bit pattern so equal floats share a bucket.
		key: func(v Value) string { return strconv.FormatUint(math.Float64bits(v.f), 16) },
	},
	TypeText: {
		compare: func(a, b Value) int { return strings.Compare(a.s, b.s) },
		key:     func(v Value) string { return v.s },
	},
	TypeBool: {
		compare: func(a, b Value) int {
			if a.b == b.b {
				return 0
			}
			if !a.b {
				return -1
			}
			return 1
		},
		key: func(v Value) string { return strconv.FormatBool(v.b) },
	},
}

// Compare orders two values of the same declared type. The ordering is total
// and consistent with Equal. Absent sorts before every present value; two
// absent values order equal here (sorting context only — equality contexts
// never match absent, see Equal).
func Compare(a, b Value) (int, error) {
	if a.typ != b.typ {
		return 0, NewTypeMismatch("", "", b, string(a.typ))
	}
	if a.absent || b.absent {
		switch {
		case a.absent && b.absent:
			return 0, nil
		case a.absent:
			return -1, nil
		default:
			return 1, nil
		}
	}
	return opsByType[a.typ].compare(a, b), nil
}

// Equal reports value equality for filters and join keys. An absent value is
// never equal to anything, including another absent value.
func Equal(a, b Value) (bool, error) {
	if a.typ != b.typ {
		return false, NewTypeMismatch("", "", b, string(a.typ))
	}
	if a.absent || b.absent {
		return false, nil
	}
	return opsByType[a.typ].compare(a, b) == 0, nil
}

// KeyOf returns the hash bucket key for a present value. Keys are only
// comparable between values of the same type; callers exclude absent values
// before keying.
func KeyOf(v Value) string {
	return opsByType[v.typ].key(v)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func validType(t ColumnType) error {
	switch t {
	case TypeInt, TypeFloat, TypeText, TypeBool:
		return nil
	}
	return fmt.Errorf("unknown column type %q", t)
}
