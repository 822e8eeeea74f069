package engine

import (
	"math"
	"testing"
)

func TestCompare_SameType(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"int less", Int(1), Int(2), -1},
		{"int equal", Int(7), Int(7), 0},
		{"int greater", Int(3), Int(-3), 1},
		{"float less", Float(1.5), Float(2.5), -1},
		{"text order", Text("abc"), Text("abd"), -1},
		{"bool order", Bool(false), Bool(true), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Compare failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompare_NaNOrdersFirst(t *testing.T) {
	nan := Float(math.NaN())

	cases := []struct {
		name string
		a, b Value
		want int
	}{
		{"nan before value", nan, Float(1), -1},
		{"value after nan", Float(2), nan, 1},
		{"nan equals nan", nan, Float(math.NaN()), 0},
	}
	for _, c := range cases {
		got, err := Compare(c.a, c.b)
		if err != nil {
			t.Fatalf("%s: Compare failed: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: Compare = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestCompare_CrossTypeFails(t *testing.T) {
	_, err := Compare(Int(1), Text("1"))
	if err == nil {
		t.Fatal("expected TypeMismatch comparing INT with TEXT")
	}
	if !IsTypeMismatch(err) {
		t.Errorf("expected type_mismatch kind, got %v", err)
	}
}

func TestEqual_AbsentNeverMatches(t *testing.T) {
	cases := []struct{ a, b Value }{
		{Absent(TypeInt), Int(1)},
		{Int(1), Absent(TypeInt)},
		{Absent(TypeInt), Absent(TypeInt)},
	}
	for _, c := range cases {
		eq, err := Equal(c.a, c.b)
		if err != nil {
			t.Fatalf("Equal failed: %v", err)
		}
		if eq {
			t.Errorf("Equal(%v, %v) = true, want false (absent never matches)", c.a, c.b)
		}
	}
}

func TestCompare_AbsentOrdersFirst(t *testing.T) {
	got, err := Compare(Absent(TypeText), Text(""))
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if got != -1 {
		t.Errorf("absent should order before present values, got %d", got)
	}
}

func TestKeyOf_EqualValuesShareKey(t *testing.T) {
	if KeyOf(Float(1.5)) != KeyOf(Float(1.5)) {
		t.Error("equal floats must share a hash key")
	}
	if KeyOf(Int(10)) == KeyOf(Int(11)) {
		t.Error("distinct ints must not share a hash key")
	}
}

func TestTypedAccessors(t *testing.T) {
	if _, err := Int(1).Text(); err == nil {
		t.Error("expected TypeMismatch reading INT as TEXT")
	}
	i, err := Int(42).Int()
	if err != nil || i != 42 {
		t.Errorf("Int accessor = (%d, %v), want (42, nil)", i, err)
	}
}
