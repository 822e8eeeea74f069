package exec

import (
	"time"

	"github.com/google/uuid"

	"github.com/leengari/colstore/internal/engine"
)

// EventType marks a phase in a pipeline run.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventRunEnd   EventType = "run_end"
	EventRunError EventType = "run_error"
)

// Event is one lifecycle notification from a pipeline run.
type Event struct {
	Type      EventType
	RunID     string // unique per Run call, for tracing
	Relation  string
	Timestamp time.Time
	Data      interface{} // phase-specific payload (row counts, error text)
}

// Observer receives pipeline lifecycle events.
type Observer interface {
	OnEvent(event Event)
}

// Pipeline composes a root stream over one relation and drains it into a
// materialized output on Run. The root is pulled depth-first by Run; nothing
// executes before that. Each run is tagged with a fresh ID for tracing
// through observers.
type Pipeline struct {
	rel       *engine.Relation
	root      RowStream
	cols      []OutputColumn
	observers []Observer
}

func NewPipeline(rel *engine.Relation, root RowStream, cols []OutputColumn) *Pipeline {
	if len(cols) == 0 {
		cols = AllColumns(rel)
	}
	return &Pipeline{rel: rel, root: root, cols: cols}
}

// AddObserver registers an observer for lifecycle events.
func (p *Pipeline) AddObserver(o Observer) {
	p.observers = append(p.observers, o)
}

// Run pulls the root stream dry and materializes the projected result.
// Streams are single-pass, so a pipeline runs once; build a new one to
// re-execute.
func (p *Pipeline) Run() (*engine.Relation, error) {
	runID := uuid.New().String()
	p.notify(Event{Type: EventRunStart, RunID: runID, Relation: p.rel.Name, Data: p.rel.NumRows()})

	out, err := Project(p.rel, p.root, p.cols)
	if err != nil {
		p.notify(Event{Type: EventRunError, RunID: runID, Relation: p.rel.Name, Data: err.Error()})
		return nil, err
	}

	p.notify(Event{Type: EventRunEnd, RunID: runID, Relation: p.rel.Name, Data: map[string]interface{}{
		"rows_in":  p.rel.NumRows(),
		"rows_out": out.NumRows(),
	}})
	return out, nil
}

func (p *Pipeline) notify(event Event) {
	event.Timestamp = time.Now()
	for _, o := range p.observers {
		o.OnEvent(event)
	}
}
