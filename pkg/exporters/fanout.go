package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Fanout dispatches snapshots to all configured exporters.
type Fanout struct {
	exporters []Exporter
}

// NewFanout builds a dispatcher that fans out snapshots across exporters.
func NewFanout(exps []Exporter) *Fanout {
	cp := make([]Exporter, 0, len(exps))
	for _, e := range exps {
		if e == nil {
			continue
		}
		cp = append(cp, e)
	}
	return &Fanout{exporters: cp}
}

// Export forwards the snapshot to every registered exporter.
// It returns the number of exporters that successfully handled the snapshot.
func (f *Fanout) Export(ctx context.Context, snap Snapshot) (int, error) {
	if f == nil || len(f.exporters) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, e := range f.exporters {
		if err := e.Export(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("%s exporter[%s]: %w", e.Type(), e.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active exporters.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.exporters)
}

// Close shuts down every exporter that holds resources (buffered clients,
// connections); exporters without a Close are skipped.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}

	var errs []error
	for _, e := range f.exporters {
		closer, ok := e.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s exporter[%s] close: %w", e.Type(), e.ID(), err))
		}
	}
	return errors.Join(errs...)
}
