package exec

// RowStream is the pull contract between operators: a finite, single-pass,
// lazily produced sequence of row positions into one relation. Streams are
// not restartable — operators hold internal state (hash tables, sort
// buffers) that is consumed while iterating — so re-reading means rebuilding
// the pipeline. A stream must not be consumed from more than one place.
type RowStream interface {
	// Open prepares the stream. Expensive phases (hash build, sort) run
	// here so construction stays cheap and validation-only.
	Open() error

	// Next produces the next row identifier, reporting ok=false at end.
	Next() (row int, ok bool, err error)

	// Close releases internal state. Safe to call more than once.
	Close() error
}

// Drain opens a stream, pulls it dry and closes it, returning the row
// identifiers in production order.
func Drain(s RowStream) ([]int, error) {
	if err := s.Open(); err != nil {
		return nil, err
	}
	defer s.Close()

	var rows []int
	for {
		row, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}
}

// Each pulls a stream to exhaustion, applying fn to every row identifier.
func Each(s RowStream, fn func(row int) error) error {
	if err := s.Open(); err != nil {
		return err
	}
	defer s.Close()

	for {
		row, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
