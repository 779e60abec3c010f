package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the given transport defaults.
func NewRestyClient(defaults Defaults) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(defaults)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom wiring.
func NewRestyHTTPClient(defaults Defaults) *resty.Client {
	return newRestyBaseClient(defaults)
}

// newRestyBaseClient creates a new resty.Client configured from defaults.
func newRestyBaseClient(defaults Defaults) *resty.Client {
	c := resty.New()

	timeout := defaults.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.SetTimeout(timeout)

	if defaults.Proxy != "" {
		c.SetProxy(defaults.Proxy)
	}
	if len(defaults.Headers) > 0 {
		c.SetHeaders(defaults.Headers)
	}

	return c
}

// Do performs an HTTP request with the specified method, URL, headers, and query parameters.
func (r *RestyClient) Do(ctx context.Context, method, url string, headers, query map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
