package gauges

import (
	"context"
	"net/http"
	"strings"

	"github.com/pawelkruzynski/gauges/pkg/httpclient"
)

const (
	// BaseURL is fixed for the lifetime of a client; the API has no
	// per-call host selection.
	BaseURL = "https://secure.gaug.es"

	// TokenHeader carries the bearer token on every outgoing request.
	TokenHeader = "X-Gauges-Token"
)

// Caller issues one authenticated API call and returns the raw response.
type Caller interface {
	Call(ctx context.Context, op, method, path string, params Params) (httpclient.Response, error)
}

// Requester builds and dispatches authenticated requests against the fixed
// base URL. It validates the verb, normalizes the path, attaches the token
// header and the query parameters, and hands the response back untouched.
type Requester struct {
	transport httpclient.Client
	baseURL   string
	token     string
	log       Logger
	format    LogFormat
}

// NewRequester wires a requester to a transport. log may be nil; format
// falls back to DefaultLogFormat.
func NewRequester(transport httpclient.Client, token string, log Logger, format LogFormat) *Requester {
	if format == nil {
		format = DefaultLogFormat
	}
	return &Requester{
		transport: transport,
		baseURL:   BaseURL,
		token:     token,
		log:       log,
		format:    format,
	}
}

// Call dispatches one API call. The verb is normalized to uppercase and must
// be one of GET, POST, PUT, DELETE; anything else fails with
// *InvalidMethodError before the transport is touched. Params travel as
// query-string parameters for every verb, POST and PUT included (the
// wrapped API reads them from the query string, never from a body).
//
// Non-200 responses are not errors here; callers inspect the status code.
func (r *Requester) Call(ctx context.Context, op, method, path string, params Params) (httpclient.Response, error) {
	verb, err := normalizeMethod(method)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	resp, err := r.transport.Do(ctx, verb, r.baseURL+path,
		map[string]string{TokenHeader: r.token},
		params.queryValues(),
	)
	if err != nil {
		return nil, err
	}

	if r.log != nil {
		r.log.Debug(r.format(op, r.baseURL, resp.StatusCode()))
	}
	return resp, nil
}

// normalizeMethod uppercases the verb and validates it against the fixed set.
func normalizeMethod(method string) (string, error) {
	verb := strings.ToUpper(strings.TrimSpace(method))
	switch verb {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return verb, nil
	default:
		return "", &InvalidMethodError{Method: method}
	}
}
