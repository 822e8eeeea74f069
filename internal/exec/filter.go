package exec

import "fmt"

// Filter passes through upstream row identifiers whose predicate holds.
type Filter struct {
	child RowStream
	pred  Predicate
}

func NewFilter(child RowStream, pred Predicate) (*Filter, error) {
	if pred == nil {
		return nil, fmt.Errorf("predicate cannot be nil")
	}
	if child == nil {
		return nil, fmt.Errorf("child stream cannot be nil")
	}
	return &Filter{child: child, pred: pred}, nil
}

func (f *Filter) Open() error {
	if err := f.child.Open(); err != nil {
		return fmt.Errorf("failed to open child stream: %w", err)
	}
	return nil
}

func (f *Filter) Next() (int, bool, error) {
	for {
		row, ok, err := f.child.Next()
		if err != nil || !ok {
			return 0, false, err
		}
		passes, err := f.pred.Eval(row)
		if err != nil {
			return 0, false, fmt.Errorf("predicate evaluation failed: %w", err)
		}
		if passes {
			return row, true, nil
		}
	}
}

func (f *Filter) Close() error { return f.child.Close() }
