package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/personavault/vaultshell/internal/bridge"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8000" {
		t.Fatalf("default url = %q, want http://127.0.0.1:8000", u.String())
	}

	u, err = parseBaseURL("example.com:1234")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("host:port url = %q, want http://example.com:1234", u.String())
	}

	u, err = parseBaseURL("https://example.com/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_FetchTextReturnsBodyVerbatim(t *testing.T) {
	t.Parallel()

	type request struct{ path, userAgent string }
	seen := make(chan request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- request{path: r.URL.Path, userAgent: r.Header.Get("User-Agent")}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Hello from backend"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	got, err := c.FetchText(ctx)
	if err != nil {
		t.Fatalf("FetchText returned error: %v", err)
	}
	if got != `{"message":"Hello from backend"}` {
		t.Fatalf("FetchText = %q, want raw body", got)
	}
	req := <-seen
	if req.path != "/" {
		t.Fatalf("path = %q, want /", req.path)
	}
	if !strings.HasPrefix(req.userAgent, "vaultshell/") {
		t.Fatalf("User-Agent = %q, want vaultshell/*", req.userAgent)
	}
}

func TestClient_BodyAtLimitIsReturnedWhole(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("a", maxBodyBytes)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	got, err := c.FetchText(context.Background())
	if err != nil {
		t.Fatalf("FetchText returned error: %v", err)
	}
	if len(got) != maxBodyBytes {
		t.Fatalf("FetchText returned %d bytes, want %d", len(got), maxBodyBytes)
	}
}

func TestClient_OversizedBodyFails(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("a", maxBodyBytes+1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	got, err := c.FetchText(context.Background())
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("FetchText error = %v, want size limit error", err)
	}
	if got != "" {
		t.Fatalf("FetchText returned %d bytes alongside the error, want none", len(got))
	}
}

func TestClient_HTTPErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchText(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchText error = %v, want status 500 error", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchText(context.Background())
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("FetchText error = %v, want execute request error", err)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchText(context.Background()); err == nil {
		t.Fatalf("FetchText on nil client returned nil error")
	}
}

type stubFetcher struct {
	text string
	err  error
}

func (s stubFetcher) FetchText(context.Context) (string, error) { return s.text, s.err }

func TestRegister_BindsOperation(t *testing.T) {
	reg := bridge.NewRegistry()
	Register(reg, stubFetcher{text: "hi"})

	got, err := reg.Invoke(context.Background(), OpFetchData)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if got != "hi" {
		t.Fatalf("Invoke = %q, want hi", got)
	}
}

func TestRegister_FailureIsBridgeCallFailed(t *testing.T) {
	reg := bridge.NewRegistry()
	Register(reg, stubFetcher{err: errors.New("connection refused")})

	_, err := reg.Invoke(context.Background(), OpFetchData)
	if !errors.Is(err, bridge.ErrCallFailed) {
		t.Fatalf("Invoke error = %v, want ErrCallFailed", err)
	}
}
