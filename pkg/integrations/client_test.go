package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/observability"
)

func TestNewClientDefaultHeaders(t *testing.T) {
	client := NewClient(Options{Headers: map[string]string{"X-Extra": "1"}})

	if client.http == nil {
		t.Fatal("NewClient() http client is nil")
	}
	if client.headers["Accept"] != "application/json" {
		t.Errorf("Accept header = %q, want application/json", client.headers["Accept"])
	}
	if client.headers["X-Extra"] != "1" {
		t.Error("NewClient() should keep extra headers")
	}
}

func TestClientGetSendsBasicAuth(t *testing.T) {
	var gotUser, gotPass, gotAccept string
	var gotOK bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		gotAccept = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(map[string]string{"message": "hello"})
	}))
	defer server.Close()

	client := NewClient(Options{Username: "admin", Password: "s3cret"})
	client.http = server.Client()

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !gotOK || gotUser != "admin" || gotPass != "s3cret" {
		t.Errorf("basic auth = (%q, %q, %v), want (admin, s3cret, true)", gotUser, gotPass, gotOK)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if resp["message"] != "hello" {
		t.Errorf("Get() message = %q, want %q", resp["message"], "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var receivedHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeader = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(Options{})
	client.http = server.Client()

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"Accept": "application/vnd.test+json"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if receivedHeader != "application/vnd.test+json" {
		t.Errorf("Accept = %q, want override", receivedHeader)
	}
}

func TestClientGetErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   errors.Code
	}{
		{"unauthorized", http.StatusUnauthorized, errors.ErrCodeUnauthorized},
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound},
		{"server error", http.StatusInternalServerError, errors.ErrCodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(Options{})
			client.http = server.Client()

			var resp map[string]any
			err := client.Get(context.Background(), server.URL, &resp)
			if !errors.Is(err, tt.want) {
				t.Errorf("Get() error = %v, want code %s", err, tt.want)
			}
			if calls != 1 {
				t.Errorf("server called %d times, want exactly 1 (no retries)", calls)
			}
		})
	}
}

func TestClientGetInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login</html>"))
	}))
	defer server.Close()

	client := NewClient(Options{})
	client.http = server.Client()

	var resp map[string]any
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Get() error = %v, want INVALID_FORMAT", err)
	}
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Options{})
	var resp map[string]any
	err := client.Get(context.Background(), url, &resp)
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("Get() error = %v, want NETWORK_ERROR", err)
	}
}

func TestClientTLSVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	var resp map[string]string

	secure := NewClient(Options{})
	if err := secure.Get(context.Background(), server.URL, &resp); err == nil {
		t.Error("Get() against self-signed server should fail with verification enabled")
	}

	insecure := NewClient(Options{InsecureSkipVerify: true})
	if err := insecure.Get(context.Background(), server.URL, &resp); err != nil {
		t.Errorf("Get() with InsecureSkipVerify error: %v", err)
	}
}

func TestClientReportsHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := NewClient(Options{})
	client.http = server.Client()

	var resp map[string]any
	if err := client.Get(context.Background(), server.URL+"/vmrest/x", &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hooks.requests != 1 || hooks.responses != 1 {
		t.Errorf("hooks = %d requests, %d responses, want 1 and 1", hooks.requests, hooks.responses)
	}
	if hooks.lastPath != "/vmrest/x" {
		t.Errorf("hook path = %q, want /vmrest/x", hooks.lastPath)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	requests, responses int
	lastPath            string
}

func (h *recordingHooks) OnRequest(_ context.Context, _, _, path string) {
	h.requests++
	h.lastPath = path
}

func (h *recordingHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
	h.responses++
}
