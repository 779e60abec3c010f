package exporters

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubsubExporter implements the Exporter interface for GCP Pub/Sub.
type pubsubExporter struct {
	id     string
	typ    string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    Logger
}

// newPubSubExporter creates a new Pub/Sub exporter with the given configuration.
func newPubSubExporter(ctx context.Context, cfg ExporterConfig, log Logger) (Exporter, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("exporter %q missing pubsub configuration", cfg.ID)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubExporter{
		id:     cfg.ID,
		typ:    TypePubSub,
		client: client,
		topic:  client.Topic(cfg.PubSub.Topic),
		log:    ensureLogger(log),
	}, nil
}

func (p *pubsubExporter) ID() string   { return p.id }
func (p *pubsubExporter) Type() string { return p.typ }

// Close flushes buffered publishes and releases the Pub/Sub client.
func (p *pubsubExporter) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	p.topic.Stop()
	return p.client.Close()
}

// Export publishes the snapshot to the configured Pub/Sub topic and waits
// for the server acknowledgement.
func (p *pubsubExporter) Export(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"gauge_id": snap.GaugeID,
			"endpoint": snap.Endpoint,
		},
	})

	if _, err := result.Get(ctx); err != nil {
		p.log.ErrorObj("pubsub exporter publish failed", "exporter_pubsub_error", map[string]any{
			"exporter_id": p.id,
			"error":       err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	p.log.DebugObj("pubsub exporter delivered snapshot", "exporter_pubsub_delivery", map[string]any{
		"exporter_id": p.id,
	})
	return nil
}
