package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsHeadersAndQuery(t *testing.T) {
	var gotMethod, gotToken, gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotToken = r.Header.Get("X-Test-Token")
		gotPage = r.URL.Query().Get("page")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewRestyClient(Defaults{Timeout: 2 * time.Second})
	resp, err := client.Do(context.Background(), http.MethodPost, srv.URL,
		map[string]string{"X-Test-Token": "abc"},
		map[string]string{"page": "3"},
	)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotToken != "abc" {
		t.Fatalf("token header = %q", gotToken)
	}
	if gotPage != "3" {
		t.Fatalf("page query = %q", gotPage)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("body = %s", resp.Body())
	}
}

func TestRestyClientAppliesDefaultHeaders(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewRestyClient(Defaults{
		Timeout: 2 * time.Second,
		Headers: map[string]string{"User-Agent": "gauges-go-test"},
	})
	if _, err := client.Do(context.Background(), http.MethodGet, srv.URL, nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotUA != "gauges-go-test" {
		t.Fatalf("User-Agent = %q", gotUA)
	}
}

func TestCannedRecordsRequests(t *testing.T) {
	canned := NewCanned(&StaticResponse{Status: 404, Payload: []byte("gone")})

	resp, err := canned.Do(context.Background(), http.MethodDelete, "https://example.com/x",
		map[string]string{"H": "1"}, map[string]string{"q": "v"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != 404 || string(resp.Body()) != "gone" {
		t.Fatalf("unexpected canned response: %d %s", resp.StatusCode(), resp.Body())
	}

	req, ok := canned.LastRequest()
	if !ok {
		t.Fatalf("no request recorded")
	}
	if req.Method != http.MethodDelete || req.URL != "https://example.com/x" {
		t.Fatalf("recorded %s %s", req.Method, req.URL)
	}
	if req.Headers["H"] != "1" || req.Query["q"] != "v" {
		t.Fatalf("recorded headers/query wrong: %#v %#v", req.Headers, req.Query)
	}
}
