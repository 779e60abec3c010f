package gauges

import (
	"context"
	"testing"

	"github.com/pawelkruzynski/gauges/pkg/httpclient"
)

// fakeCaller records the arguments each facade method shapes.
type fakeCaller struct {
	op     string
	method string
	path   string
	params Params
}

func (f *fakeCaller) Call(_ context.Context, op, method, path string, params Params) (httpclient.Response, error) {
	f.op = op
	f.method = method
	f.path = path
	f.params = params
	return &httpclient.StaticResponse{Status: 200}, nil
}

func newFakeClient() (*Client, *fakeCaller) {
	caller := &fakeCaller{}
	return &Client{caller: caller}, caller
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for empty token")
	}
	client, err := New(Config{Token: "tok"})
	if err != nil || client == nil {
		t.Fatalf("New: %v", err)
	}
}

func TestOperationTable(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		invoke func(c *Client) error
		method string
		path   string
	}{
		{"Profile", func(c *Client) error { _, err := c.Profile(ctx); return err }, "GET", "me"},
		{"UpdateProfile", func(c *Client) error { _, err := c.UpdateProfile(ctx, ProfileUpdate{}); return err }, "PUT", "me"},
		{"ListClients", func(c *Client) error { _, err := c.ListClients(ctx); return err }, "GET", "clients"},
		{"CreateClient", func(c *Client) error { _, err := c.CreateClient(ctx, ClientCreate{}); return err }, "POST", "clients"},
		{"DeleteClient", func(c *Client) error { _, err := c.DeleteClient(ctx, "42"); return err }, "DELETE", "clients/42"},
		{"ListGauges", func(c *Client) error { _, err := c.ListGauges(ctx, ListGaugesOptions{}); return err }, "GET", "gauges"},
		{"CreateGauge", func(c *Client) error {
			_, err := c.CreateGauge(ctx, GaugeParams{Title: "Site", TZ: "UTC"})
			return err
		}, "POST", "gauges"},
		{"Gauge", func(c *Client) error { _, err := c.Gauge(ctx, "g1"); return err }, "GET", "gauges/g1"},
		{"UpdateGauge", func(c *Client) error {
			_, err := c.UpdateGauge(ctx, "g1", GaugeParams{Title: "Site", TZ: "UTC"})
			return err
		}, "PUT", "gauges/g1"},
		{"DeleteGauge", func(c *Client) error { _, err := c.DeleteGauge(ctx, "g1"); return err }, "DELETE", "gauges/g1"},
		{"Shares", func(c *Client) error { _, err := c.Shares(ctx, "g1"); return err }, "GET", "gauges/g1/shares"},
		{"Share", func(c *Client) error { _, err := c.Share(ctx, "g1", "ann@example.com"); return err }, "POST", "gauges/g1/shares"},
		{"Unshare", func(c *Client) error { _, err := c.Unshare(ctx, "g1", "u7"); return err }, "DELETE", "gauges/g1/shares/u7"},
		{"Content", func(c *Client) error { _, err := c.Content(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/content"},
		{"Referrers", func(c *Client) error { _, err := c.Referrers(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/referrers"},
		{"Traffic", func(c *Client) error { _, err := c.Traffic(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/traffic"},
		{"Resolutions", func(c *Client) error { _, err := c.Resolutions(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/resolutions"},
		{"Technology", func(c *Client) error { _, err := c.Technology(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/technology"},
		{"Terms", func(c *Client) error { _, err := c.Terms(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/terms"},
		{"Engines", func(c *Client) error { _, err := c.Engines(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/engines"},
		{"Locations", func(c *Client) error { _, err := c.Locations(ctx, "g1", ReportOptions{}); return err }, "GET", "gauges/g1/locations"},
	}

	for _, tc := range cases {
		client, caller := newFakeClient()
		if err := tc.invoke(client); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if caller.op != tc.name {
			t.Fatalf("%s: operation name %q", tc.name, caller.op)
		}
		if caller.method != tc.method || caller.path != tc.path {
			t.Fatalf("%s: dispatched %s %s, want %s %s", tc.name, caller.method, caller.path, tc.method, tc.path)
		}
	}
}

func TestUpdateProfileOmitsAbsentFields(t *testing.T) {
	client, caller := newFakeClient()

	if _, err := client.UpdateProfile(context.Background(), ProfileUpdate{}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if len(caller.params) != 0 {
		t.Fatalf("expected empty params, got %#v", caller.params)
	}

	if _, err := client.UpdateProfile(context.Background(), ProfileUpdate{FirstName: String("Ann")}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if len(caller.params) != 1 || caller.params["first_name"] != "Ann" {
		t.Fatalf("expected exactly first_name=Ann, got %#v", caller.params)
	}
	if _, ok := caller.params["last_name"]; ok {
		t.Fatalf("last_name should be omitted, got %#v", caller.params)
	}
}

func TestListGaugesSendsPageAsInteger(t *testing.T) {
	client, caller := newFakeClient()

	if _, err := client.ListGauges(context.Background(), ListGaugesOptions{Page: Int(3)}); err != nil {
		t.Fatalf("ListGauges: %v", err)
	}
	page, ok := caller.params["page"]
	if !ok {
		t.Fatalf("page missing: %#v", caller.params)
	}
	if v, isInt := page.(int); !isInt || v != 3 {
		t.Fatalf("page = %#v, want int 3", page)
	}

	// page=0 is legitimate, not an absent value
	if _, err := client.ListGauges(context.Background(), ListGaugesOptions{Page: Int(0)}); err != nil {
		t.Fatalf("ListGauges: %v", err)
	}
	if v, isInt := caller.params["page"].(int); !isInt || v != 0 {
		t.Fatalf("page = %#v, want int 0", caller.params["page"])
	}
}

func TestCreateGaugeSendsExactParamSet(t *testing.T) {
	client, caller := newFakeClient()

	if _, err := client.CreateGauge(context.Background(), GaugeParams{Title: "Site", TZ: "UTC"}); err != nil {
		t.Fatalf("CreateGauge: %v", err)
	}
	if len(caller.params) != 2 || caller.params["title"] != "Site" || caller.params["tz"] != "UTC" {
		t.Fatalf("params = %#v", caller.params)
	}

	if _, err := client.CreateGauge(context.Background(), GaugeParams{
		Title:        "Site",
		TZ:           "UTC",
		AllowedHosts: String("example.com"),
	}); err != nil {
		t.Fatalf("CreateGauge: %v", err)
	}
	if caller.params["allowed_hosts"] != "example.com" {
		t.Fatalf("params = %#v", caller.params)
	}
}

func TestNewWithResponseBypassesNetwork(t *testing.T) {
	client, canned := NewWithResponse("tok", &httpclient.StaticResponse{
		Status:  200,
		Payload: []byte(`[]`),
	})

	resp, err := client.DeleteClient(context.Background(), "42")
	if err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if resp.StatusCode() != 200 || string(resp.Body()) != `[]` {
		t.Fatalf("canned response not returned: %d %s", resp.StatusCode(), resp.Body())
	}

	last, ok := canned.LastRequest()
	if !ok {
		t.Fatalf("no request recorded")
	}
	if last.Method != "DELETE" || last.URL != BaseURL+"/clients/42" {
		t.Fatalf("recorded %s %s", last.Method, last.URL)
	}
	if last.Headers[TokenHeader] != "tok" {
		t.Fatalf("token header missing: %#v", last.Headers)
	}
}
