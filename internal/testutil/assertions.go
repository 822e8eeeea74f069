package testutil

import (
	"testing"

	"github.com/leengari/colstore/internal/engine"
)

// AssertRowCount checks if the relation has the expected number of rows
func AssertRowCount(t *testing.T, rel *engine.Relation, expected int, context string) {
	t.Helper()
	if rel.NumRows() != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, rel.NumRows())
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// AssertValue checks one cell of a relation against an expected value
func AssertValue(t *testing.T, rel *engine.Relation, column string, row int, expected engine.Value, context string) {
	t.Helper()
	got, err := rel.Value(column, row)
	if err != nil {
		t.Errorf("%s: reading %s[%d]: %v", context, column, row, err)
		return
	}
	if got.IsAbsent() != expected.IsAbsent() {
		t.Errorf("%s: %s[%d] presence mismatch: got %v, want %v", context, column, row, !got.IsAbsent(), !expected.IsAbsent())
		return
	}
	if expected.IsAbsent() {
		return
	}
	eq, err := engine.Equal(got, expected)
	if err != nil {
		t.Errorf("%s: comparing %s[%d]: %v", context, column, row, err)
		return
	}
	if !eq {
		t.Errorf("%s: %s[%d] = %s, want %s", context, column, row, got, expected)
	}
}

// AssertAbsent checks that a cell is marked absent
func AssertAbsent(t *testing.T, rel *engine.Relation, column string, row int, context string) {
	t.Helper()
	got, err := rel.Value(column, row)
	if err != nil {
		t.Errorf("%s: reading %s[%d]: %v", context, column, row, err)
		return
	}
	if !got.IsAbsent() {
		t.Errorf("%s: expected %s[%d] absent, got %s", context, column, row, got)
	}
}

// AssertRelationsEqual checks structural equality of two relations
func AssertRelationsEqual(t *testing.T, got, want *engine.Relation, context string) {
	t.Helper()
	if !want.Equal(got) {
		t.Errorf("%s: relations differ (schema or data)", context)
	}
}
