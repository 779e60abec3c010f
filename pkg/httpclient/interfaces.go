package httpclient

import (
	"context"
	"net/http"
	"time"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, method, url string, headers, query map[string]string) (Response, error)
}

// Defaults carries transport settings fixed at construction and applied to
// every request issued through one client.
type Defaults struct {
	Timeout time.Duration
	Proxy   string
	Headers map[string]string
}
