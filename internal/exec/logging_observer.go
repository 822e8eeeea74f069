package exec

import "log/slog"

// LoggingObserver logs every pipeline event with structured fields.
type LoggingObserver struct {
	logger *slog.Logger
}

func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{logger: slog.Default()}
}

// OnEvent implements the Observer interface.
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Info("pipeline_lifecycle",
		"event", event.Type,
		"run_id", event.RunID,
		"relation", event.Relation,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
