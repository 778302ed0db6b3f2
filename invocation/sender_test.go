package invocation_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hookwire/hookwire/id"
	"github.com/hookwire/hookwire/invocation"
	"github.com/hookwire/hookwire/webhook"
)

func TestResultSuccessRange(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{199, false},
		{200, true},
		{201, true},
		{204, true},
		{299, true},
		{300, true}, // upper bound is inclusive
		{301, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		got := invocation.Result{StatusCode: tt.status}.Success()
		if got != tt.want {
			t.Errorf("Success() for %d = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestNewTargetGETWithoutBody(t *testing.T) {
	in := invocation.Input{ExecutionURL: "https://x/test"}
	cfg := &webhook.Config{ID: id.NewWebhookConfigID(), Name: "n"}

	target := invocation.NewTarget(in, cfg)

	if target.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", target.Method)
	}
	if target.Body != nil {
		t.Error("body should be nil")
	}
	if len(target.Header) != 0 {
		t.Errorf("no headers expected without auth token, got %v", target.Header)
	}
}

func TestNewTargetPOSTWithBodyAndAuth(t *testing.T) {
	in := invocation.Input{ExecutionURL: "https://x/test", Body: []byte(`{}`)}
	cfg := &webhook.Config{ID: id.NewWebhookConfigID(), Name: "n", AuthToken: "tok"}

	target := invocation.NewTarget(in, cfg)

	if target.Method != http.MethodPost {
		t.Errorf("method = %q, want POST", target.Method)
	}
	if string(target.Body) != `{}` {
		t.Errorf("body = %q", target.Body)
	}
	if target.Header.Get("Content-Type") != "application/json" {
		t.Error("missing Content-Type")
	}
	if target.Header.Get("Authorization") != "Bearer tok" {
		t.Errorf("Authorization = %q", target.Header.Get("Authorization"))
	}
}

func TestTargetHost(t *testing.T) {
	target := invocation.Target{URL: "https://hooks.example.com:8443/path"}
	if target.Host() != "hooks.example.com:8443" {
		t.Errorf("Host() = %q", target.Host())
	}
}

func TestSenderDeliversRequest(t *testing.T) {
	var gotMethod string
	var gotBody string
	var gotHeader http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotHeader = r.Header
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`accepted`))
	}))
	defer srv.Close()

	sender := invocation.NewSender(5 * time.Second)
	in := invocation.Input{ExecutionURL: srv.URL, Body: []byte(`{"k":"v"}`)}
	cfg := &webhook.Config{ID: id.NewWebhookConfigID(), Name: "n", AuthToken: "tok"}

	result, err := sender.Send(context.Background(), invocation.NewTarget(in, cfg))
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if result.StatusCode != 200 {
		t.Errorf("status = %d", result.StatusCode)
	}
	if result.Response != "accepted" {
		t.Errorf("response = %q", result.Response)
	}
	if result.LatencyMs < 0 {
		t.Error("latency should be non-negative")
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %q", gotMethod)
	}
	if gotBody != `{"k":"v"}` {
		t.Errorf("body = %q", gotBody)
	}
	if gotHeader.Get("Authorization") != "Bearer tok" {
		t.Errorf("Authorization = %q", gotHeader.Get("Authorization"))
	}
}

func TestSenderNoAuthHeadersWithoutToken(t *testing.T) {
	var gotHeader http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := invocation.NewSender(5 * time.Second)
	in := invocation.Input{ExecutionURL: srv.URL}
	cfg := &webhook.Config{ID: id.NewWebhookConfigID(), Name: "n"}

	if _, err := sender.Send(context.Background(), invocation.NewTarget(in, cfg)); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotHeader.Get("Authorization") != "" {
		t.Error("Authorization should not be set")
	}
	if gotHeader.Get("Content-Type") != "" {
		t.Error("Content-Type should not be set")
	}
}

func TestSenderReturnsErrorStatusAsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	sender := invocation.NewSender(5 * time.Second)
	in := invocation.Input{ExecutionURL: srv.URL}
	cfg := &webhook.Config{ID: id.NewWebhookConfigID(), Name: "n"}

	result, err := sender.Send(context.Background(), invocation.NewTarget(in, cfg))
	if err != nil {
		t.Fatalf("delivered response must not be an error: %v", err)
	}
	if result.StatusCode != 500 {
		t.Errorf("status = %d", result.StatusCode)
	}
	if result.Response != "boom" {
		t.Errorf("response = %q", result.Response)
	}
}

func TestSenderTransportErrors(t *testing.T) {
	sender := invocation.NewSender(50 * time.Millisecond)
	in := invocation.Input{ExecutionURL: "http://127.0.0.1:1"} // refuses connections
	cfg := &webhook.Config{ID: id.NewWebhookConfigID(), Name: "n"}

	if _, err := sender.Send(context.Background(), invocation.NewTarget(in, cfg)); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestSenderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := invocation.NewSender(50 * time.Millisecond)
	in := invocation.Input{ExecutionURL: srv.URL}
	cfg := &webhook.Config{ID: id.NewWebhookConfigID(), Name: "n"}

	if _, err := sender.Send(context.Background(), invocation.NewTarget(in, cfg)); err == nil {
		t.Fatal("expected timeout error")
	}
}
