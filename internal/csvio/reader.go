// Package csvio is the import/export collaborator: it owns all text and
// number parsing and talks to the core only through the relation API. The
// core never sees raw CSV.
package csvio

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/leengari/colstore/internal/engine"
)

// Load reads a CSV file into a relation named name. The first record is the
// header. When selectCols is non-empty, only those columns are kept, in
// header order. Empty fields become absent slots; each column's type is
// inferred from its present fields (int, then float, then bool, then text).
func Load(path, name string, comma rune, selectCols []string) (*engine.Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	if comma != 0 {
		rdr.Comma = comma
	}

	records, err := rdr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("%s: missing header record", path)
	}

	header := records[0]
	keep := make([]int, 0, len(header))
	for i, h := range header {
		if len(selectCols) == 0 || contains(selectCols, h) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, errors.Errorf("%s: no selected columns in header", path)
	}

	rows := records[1:]
	rel := engine.NewRelation(name)
	for _, ci := range keep {
		fields := make([]string, 0, len(rows))
		for _, rec := range rows {
			fields = append(fields, field(rec, ci))
		}
		col, err := buildColumn(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", header[ci])
		}
		if err := rel.AddColumn(header[ci], col); err != nil {
			return nil, err
		}
	}
	return rel, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// field tolerates ragged records by treating missing cells as empty.
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// buildColumn infers the narrowest type admitting every present field and
// materializes the column.
func buildColumn(fields []string) (*engine.Column, error) {
	typ := inferType(fields)
	col, err := engine.NewColumn(typ)
	if err != nil {
		return nil, err
	}
	for _, s := range fields {
		if s == "" {
			if err := col.Append(engine.Absent(typ)); err != nil {
				return nil, err
			}
			continue
		}
		v, err := parseAs(typ, s)
		if err != nil {
			return nil, err
		}
		if err := col.Append(v); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func inferType(fields []string) engine.ColumnType {
	isInt, isFloat, isBool, any := true, true, true, false
	for _, s := range fields {
		if s == "" {
			continue
		}
		any = true
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			isFloat = false
		}
		if s != "true" && s != "false" {
			isBool = false
		}
	}
	switch {
	case !any:
		return engine.TypeText
	case isInt:
		return engine.TypeInt
	case isFloat:
		return engine.TypeFloat
	case isBool:
		return engine.TypeBool
	default:
		return engine.TypeText
	}
}

func parseAs(t engine.ColumnType, s string) (engine.Value, error) {
	switch t {
	case engine.TypeInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return engine.Value{}, errors.Wrapf(err, "parsing %q as int", s)
		}
		return engine.Int(i), nil
	case engine.TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return engine.Value{}, errors.Wrapf(err, "parsing %q as float", s)
		}
		return engine.Float(f), nil
	case engine.TypeBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return engine.Value{}, errors.Wrapf(err, "parsing %q as bool", s)
		}
		return engine.Bool(b), nil
	default:
		return engine.Text(s), nil
	}
}
