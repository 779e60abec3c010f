package exporters

import "context"

// Exporter sends snapshots to a downstream sink (SQS, SNS, Pub/Sub, HTTP, log).
type Exporter interface {
	ID() string
	Type() string
	Export(ctx context.Context, snap Snapshot) error
}
