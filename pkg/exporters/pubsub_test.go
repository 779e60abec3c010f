package exporters

import (
	"context"
	"io"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestPubSubExporterPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "topic-1"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	exporter, err := newPubSubExporter(ctx, ExporterConfig{
		ID:   "p1",
		Type: TypePubSub,
		PubSub: &PubSubExporterConfig{
			ProjectID: "test-project",
			Topic:     "topic-1",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubExporter: %v", err)
	}

	err = exporter.Export(ctx, NewSnapshot("g1", "Site", "traffic", 200, []byte(`{}`)))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	closer, ok := exporter.(io.Closer)
	if !ok {
		t.Fatalf("pubsub exporter should be closable")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
