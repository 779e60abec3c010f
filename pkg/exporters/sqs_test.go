package exporters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSExporterExportSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	exporter := &sqsExporter{
		id:       "q1",
		typ:      TypeSQS,
		queueURL: "https://sqs.example/queue",
		client:   client,
		log:      noopLogger{},
	}

	err := exporter.Export(context.Background(), NewSnapshot("g1", "Site", "traffic", 200, []byte(`{"views":12}`)))
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.example/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["gauge_id"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "g1" {
		t.Fatalf("gauge_id attribute missing or wrong: %#v", attr)
	}
	if client.input.MessageBody == nil || !strings.Contains(aws.ToString(client.input.MessageBody), `"gauge_id":"g1"`) {
		t.Fatalf("MessageBody missing gauge_id: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSExporterExportError(t *testing.T) {
	client := &fakeSQSClient{err: errors.New("throttled")}
	exporter := &sqsExporter{
		id:       "q1",
		typ:      TypeSQS,
		queueURL: "https://sqs.example/queue",
		client:   client,
		log:      noopLogger{},
	}

	err := exporter.Export(context.Background(), Snapshot{GaugeID: "g1", Endpoint: "traffic"})
	if err == nil {
		t.Fatalf("expected error from SendMessage")
	}
	if !strings.Contains(err.Error(), "throttled") {
		t.Fatalf("error should wrap cause: %v", err)
	}
}
