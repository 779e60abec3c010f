package httpclient

import (
	"context"
	"net/http"
	"sync"
)

// RecordedRequest captures the arguments of one Do call for later inspection.
type RecordedRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
}

// Canned is a Client that returns a fixed response without touching the
// network and records every request it receives.
type Canned struct {
	mu       sync.Mutex
	response Response
	err      error
	requests []RecordedRequest
}

// NewCanned builds a canned transport returning resp for every call.
func NewCanned(resp Response) *Canned {
	return &Canned{response: resp}
}

// NewCannedError builds a canned transport failing every call with err.
func NewCannedError(err error) *Canned {
	return &Canned{err: err}
}

// Do records the request and returns the canned response or error.
func (c *Canned) Do(_ context.Context, method, url string, headers, query map[string]string) (Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, RecordedRequest{
		Method:  method,
		URL:     url,
		Headers: cloneMap(headers),
		Query:   cloneMap(query),
	})
	c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	return c.response, nil
}

// Requests returns a copy of all recorded requests.
func (c *Canned) Requests() []RecordedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RecordedRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// LastRequest returns the most recent recorded request, if any.
func (c *Canned) LastRequest() (RecordedRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return RecordedRequest{}, false
	}
	return c.requests[len(c.requests)-1], true
}

func cloneMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// StaticResponse is a Response with fixed fields, handy for canned transports.
type StaticResponse struct {
	Status  int
	Payload []byte
	Headers http.Header
}

func (s *StaticResponse) Body() []byte    { return s.Payload }
func (s *StaticResponse) StatusCode() int { return s.Status }

func (s *StaticResponse) Header() http.Header {
	if s.Headers == nil {
		return http.Header{}
	}
	return s.Headers
}
