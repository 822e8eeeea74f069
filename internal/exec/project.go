package exec

import (
	"github.com/leengari/colstore/internal/engine"
)

// OutputColumn names one output column of a projection. As renames the
// column; empty keeps the source name.
type OutputColumn struct {
	Source string
	As     string
}

func (oc OutputColumn) name() string {
	if oc.As != "" {
		return oc.As
	}
	return oc.Source
}

// AllColumns projects every column of rel in schema order, unrenamed.
func AllColumns(rel *engine.Relation) []OutputColumn {
	names := rel.ColumnNames()
	cols := make([]OutputColumn, len(names))
	for i, name := range names {
		cols[i] = OutputColumn{Source: name}
	}
	return cols
}

// Project materializes the requested columns for the rows surviving the
// upstream stream, preserving stream order. Output may reorder, subset or
// rename; duplicate output names are a SchemaError. Column values are
// copied, never shared, so the result is safe to mutate independently.
func Project(rel *engine.Relation, stream RowStream, cols []OutputColumn) (*engine.Relation, error) {
	if len(cols) == 0 {
		return nil, engine.NewSchemaError(rel.Name, "", "projection needs at least one output column")
	}

	seen := make(map[string]bool, len(cols))
	sources := make([]*engine.Column, len(cols))
	for i, oc := range cols {
		src, err := rel.Column(oc.Source)
		if err != nil {
			return nil, err
		}
		name := oc.name()
		if seen[name] {
			return nil, engine.NewSchemaError(rel.Name, name, "duplicate output column name")
		}
		seen[name] = true
		sources[i] = src
	}

	out := engine.NewRelation(rel.Name)
	outCols := make([]*engine.Column, len(cols))
	for i, oc := range cols {
		col, err := engine.NewColumn(sources[i].Type())
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(oc.name(), col); err != nil {
			return nil, err
		}
		outCols[i] = col
	}

	err := Each(stream, func(row int) error {
		for i, src := range sources {
			if err := outCols[i].Append(src.Value(row)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
