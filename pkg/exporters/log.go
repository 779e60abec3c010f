package exporters

import (
	"context"
	"fmt"
)

// logExporter writes snapshots to the structured log, useful as a smoke-test
// sink and for local development.
type logExporter struct {
	id  string
	typ string
	log Logger
}

func newLogExporter(_ context.Context, cfg ExporterConfig, log Logger) (Exporter, error) {
	if log == nil {
		return nil, fmt.Errorf("log exporter %q requires a logger", cfg.ID)
	}
	return &logExporter{
		id:  cfg.ID,
		typ: TypeLog,
		log: log,
	}, nil
}

func (l *logExporter) ID() string   { return l.id }
func (l *logExporter) Type() string { return l.typ }

func (l *logExporter) Export(_ context.Context, snap Snapshot) error {
	l.log.InfoObj("snapshot exported", "snapshot", map[string]any{
		"gauge_id": snap.GaugeID,
		"endpoint": snap.Endpoint,
		"status":   snap.Status,
		"bytes":    len(snap.Payload),
	})
	return nil
}
