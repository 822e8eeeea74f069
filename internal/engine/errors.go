package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies query errors so callers can branch without string
// matching.
type ErrorKind string

const (
	KindTypeMismatch         ErrorKind = "type_mismatch"
	KindSchema               ErrorKind = "schema"
	KindUnsupportedPredicate ErrorKind = "unsupported_predicate"
)

// QueryError reports a failed construction or evaluation step. All failures
// surface synchronously to the caller; no partial results accompany one.
type QueryError struct {
	Relation string      // relation name (empty if not tied to one)
	Column   string      // column name (empty if relation-level)
	Value    interface{} // offending value (may be nil)
	Kind     ErrorKind
	Reason   string // human-readable explanation
}

func (e *QueryError) Error() string {
	var parts []string

	where := e.Relation
	if e.Column != "" {
		if where != "" {
			where += "."
		}
		where += e.Column
	}
	if where != "" {
		parts = append(parts, fmt.Sprintf("query error in %s", where))
	} else {
		parts = append(parts, "query error")
	}

	parts = append(parts, fmt.Sprintf("(%s)", e.Kind))

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewTypeMismatch(relation, column string, value interface{}, expected string) *QueryError {
	return &QueryError{
		Relation: relation,
		Column:   column,
		Value:    value,
		Kind:     KindTypeMismatch,
		Reason:   fmt.Sprintf("expected type %s", expected),
	}
}

func NewSchemaError(relation, column, reason string) *QueryError {
	return &QueryError{
		Relation: relation,
		Column:   column,
		Kind:     KindSchema,
		Reason:   reason,
	}
}

func NewUnknownColumn(relation, column string) *QueryError {
	return NewSchemaError(relation, column, "unknown column")
}

func NewUnsupportedPredicate(reason string) *QueryError {
	return &QueryError{
		Kind:   KindUnsupportedPredicate,
		Reason: reason,
	}
}

func isKind(err error, kind ErrorKind) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Kind == kind
}

func IsTypeMismatch(err error) bool         { return isKind(err, KindTypeMismatch) }
func IsSchemaError(err error) bool          { return isKind(err, KindSchema) }
func IsUnsupportedPredicate(err error) bool { return isKind(err, KindUnsupportedPredicate) }
