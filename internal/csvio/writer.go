package csvio

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"

	"github.com/leengari/colstore/internal/engine"
)

// Save writes a relation to path as CSV: header record in schema order, then
// one record per row. Absent slots become empty fields, mirroring Load.
func Save(path string, rel *engine.Relation, comma rune) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if comma != 0 {
		w.Comma = comma
	}

	names := rel.ColumnNames()
	if err := w.Write(names); err != nil {
		return errors.Wrapf(err, "writing header for %s", rel.Name)
	}

	record := make([]string, len(names))
	err = rel.IterRows(func(i int, row engine.Row) error {
		for ci, name := range names {
			record[ci] = row[name].String() // absent renders empty
		}
		return w.Write(record)
	})
	if err != nil {
		return errors.Wrapf(err, "writing rows for %s", rel.Name)
	}

	w.Flush()
	return errors.Wrapf(w.Error(), "flushing %s", path)
}
