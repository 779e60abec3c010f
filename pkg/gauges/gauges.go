// Package gauges is a thin client for the Gauges analytics REST API
// (https://secure.gaug.es). It exposes one method per API endpoint and
// returns the raw HTTP response; decoding the JSON body is left to the
// caller. Authentication is a bearer token sent as the X-Gauges-Token
// header on every request.
package gauges

import (
	"context"
	"errors"

	"github.com/pawelkruzynski/gauges/pkg/httpclient"
)

// Config holds construction-time settings for a Client.
type Config struct {
	// Token authenticates every request. Required.
	Token string

	// HTTP carries transport defaults (timeout, proxy, extra headers)
	// applied uniformly to all requests. Ignored when Transport is set.
	HTTP httpclient.Defaults

	// Transport overrides the default resty-backed transport.
	Transport httpclient.Client

	// Logger receives one debug line per dispatched call. Optional.
	Logger Logger

	// LogFormat renders that line; only meaningful with a Logger.
	// Defaults to DefaultLogFormat.
	LogFormat LogFormat
}

// Client is the endpoint facade: one method per Gauges API operation. The
// token, base URL and transport defaults are fixed at construction, so a
// single Client is safe for concurrent use as long as its transport is.
type Client struct {
	caller Caller
}

// New builds a Client from config. The token is required.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.New("gauges: token is required")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = httpclient.NewRestyClient(cfg.HTTP)
	}

	return &Client{
		caller: NewRequester(transport, cfg.Token, cfg.Logger, cfg.LogFormat),
	}, nil
}

// NewWithResponse builds a Client wired to a canned response, bypassing the
// network entirely. The canned transport is returned alongside the client so
// tests can inspect the requests it received.
func NewWithResponse(token string, resp httpclient.Response) (*Client, *httpclient.Canned) {
	canned := httpclient.NewCanned(resp)
	client := &Client{
		caller: NewRequester(canned, token, nil, nil),
	}
	return client, canned
}

// ProfileUpdate holds the optional fields of UpdateProfile. Nil fields are
// omitted from the request entirely.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}

// ClientCreate holds the optional fields of CreateClient.
type ClientCreate struct {
	Description *string
}

// ListGaugesOptions holds the optional fields of ListGauges.
type ListGaugesOptions struct {
	Page *int
}

// GaugeParams holds the fields accepted when creating or updating a gauge.
// Title and TZ are required by the API.
type GaugeParams struct {
	Title        string
	TZ           string
	AllowedHosts *string
}

// ReportOptions holds the optional fields of the per-gauge report endpoints.
// Date is formatted YYYY-MM-DD.
type ReportOptions struct {
	Page *int
	Date *string
}

// Profile returns the authenticated user's information.
func (c *Client) Profile(ctx context.Context) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Profile", "GET", "me", nil)
}

// UpdateProfile updates the authenticated user's information.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (httpclient.Response, error) {
	params := Params{}
	if upd.FirstName != nil {
		params["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		params["last_name"] = *upd.LastName
	}
	return c.caller.Call(ctx, "UpdateProfile", "PUT", "me", params)
}

// ListClients returns the API clients issued for the account.
func (c *Client) ListClients(ctx context.Context) (httpclient.Response, error) {
	return c.caller.Call(ctx, "ListClients", "GET", "clients", nil)
}

// CreateClient issues a new API client credential.
func (c *Client) CreateClient(ctx context.Context, create ClientCreate) (httpclient.Response, error) {
	params := Params{}
	if create.Description != nil {
		params["description"] = *create.Description
	}
	return c.caller.Call(ctx, "CreateClient", "POST", "clients", params)
}

// DeleteClient revokes an API client credential.
func (c *Client) DeleteClient(ctx context.Context, id string) (httpclient.Response, error) {
	return c.caller.Call(ctx, "DeleteClient", "DELETE", "clients/"+id, nil)
}

// ListGauges returns the account's gauges, one page at a time.
func (c *Client) ListGauges(ctx context.Context, opts ListGaugesOptions) (httpclient.Response, error) {
	params := Params{}
	if opts.Page != nil {
		params["page"] = *opts.Page
	}
	return c.caller.Call(ctx, "ListGauges", "GET", "gauges", params)
}

// CreateGauge creates a gauge for a tracked site.
func (c *Client) CreateGauge(ctx context.Context, gauge GaugeParams) (httpclient.Response, error) {
	return c.caller.Call(ctx, "CreateGauge", "POST", "gauges", gaugeParams(gauge))
}

// Gauge returns a single gauge.
func (c *Client) Gauge(ctx context.Context, id string) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Gauge", "GET", "gauges/"+id, nil)
}

// UpdateGauge updates a gauge.
func (c *Client) UpdateGauge(ctx context.Context, id string, gauge GaugeParams) (httpclient.Response, error) {
	return c.caller.Call(ctx, "UpdateGauge", "PUT", "gauges/"+id, gaugeParams(gauge))
}

// DeleteGauge permanently deletes a gauge.
func (c *Client) DeleteGauge(ctx context.Context, id string) (httpclient.Response, error) {
	return c.caller.Call(ctx, "DeleteGauge", "DELETE", "gauges/"+id, nil)
}

// Shares lists the people a gauge is shared with.
func (c *Client) Shares(ctx context.Context, id string) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Shares", "GET", "gauges/"+id+"/shares", nil)
}

// Share shares a gauge with the given email address.
func (c *Client) Share(ctx context.Context, id, email string) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Share", "POST", "gauges/"+id+"/shares", Params{"email": email})
}

// Unshare removes a user's access to a gauge.
func (c *Client) Unshare(ctx context.Context, id, userID string) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Unshare", "DELETE", "gauges/"+id+"/shares/"+userID, nil)
}

// Content returns a gauge's top content.
func (c *Client) Content(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Content", "GET", "gauges/"+id+"/content", reportParams(opts))
}

// Referrers returns a gauge's top referrers.
func (c *Client) Referrers(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Referrers", "GET", "gauges/"+id+"/referrers", reportParams(opts))
}

// Traffic returns a gauge's traffic counts.
func (c *Client) Traffic(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Traffic", "GET", "gauges/"+id+"/traffic", reportParams(opts))
}

// Resolutions returns a gauge's screen and browser resolution breakdown.
func (c *Client) Resolutions(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Resolutions", "GET", "gauges/"+id+"/resolutions", reportParams(opts))
}

// Technology returns a gauge's browser and platform breakdown.
func (c *Client) Technology(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Technology", "GET", "gauges/"+id+"/technology", reportParams(opts))
}

// Terms returns a gauge's top search terms.
func (c *Client) Terms(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Terms", "GET", "gauges/"+id+"/terms", reportParams(opts))
}

// Engines returns a gauge's top search engines.
func (c *Client) Engines(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Engines", "GET", "gauges/"+id+"/engines", reportParams(opts))
}

// Locations returns a gauge's visitor locations.
func (c *Client) Locations(ctx context.Context, id string, opts ReportOptions) (httpclient.Response, error) {
	return c.caller.Call(ctx, "Locations", "GET", "gauges/"+id+"/locations", reportParams(opts))
}

func gaugeParams(gauge GaugeParams) Params {
	params := Params{
		"title": gauge.Title,
		"tz":    gauge.TZ,
	}
	if gauge.AllowedHosts != nil {
		params["allowed_hosts"] = *gauge.AllowedHosts
	}
	return params
}

func reportParams(opts ReportOptions) Params {
	params := Params{}
	if opts.Page != nil {
		params["page"] = *opts.Page
	}
	if opts.Date != nil {
		params["date"] = *opts.Date
	}
	return params
}
