package exporters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSExporterExportSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	exporter := &snsExporter{
		id:       "t1",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      noopLogger{},
	}

	err := exporter.Export(context.Background(), NewSnapshot("g1", "Site", "referrers", 200, []byte(`[]`)))
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["endpoint"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "referrers" {
		t.Fatalf("endpoint attribute missing or wrong: %#v", attr)
	}
	if attr.DataType == nil || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if client.input.Message == nil || !strings.Contains(aws.ToString(client.input.Message), `"endpoint":"referrers"`) {
		t.Fatalf("Message missing endpoint: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSExporterExportError(t *testing.T) {
	client := &fakeSNSClient{err: errors.New("access denied")}
	exporter := &snsExporter{
		id:       "t1",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      noopLogger{},
	}

	err := exporter.Export(context.Background(), Snapshot{GaugeID: "g1", Endpoint: "referrers"})
	if err == nil {
		t.Fatalf("expected error from Publish")
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("error should wrap cause: %v", err)
	}
}
