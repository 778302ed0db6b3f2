package invocation

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hookwire/hookwire/webhook"
)

const maxResponseBody = 1024 // 1KB cap on response body kept for diagnostics

// Target is the fully prepared outgoing request. Keeping it separate from
// http.Request lets the sender rebuild the request body on every retry.
type Target struct {
	Method string
	URL    string
	Body   []byte
	Header http.Header
}

// NewTarget builds the outgoing request description for an invocation. A nil
// body means a plain GET; a present body is sent as a POST. When the selected
// configuration carries an auth token the JSON content type and bearer
// authorization headers are attached; otherwise no headers are set.
func NewTarget(in Input, cfg *webhook.Config) Target {
	t := Target{
		Method: http.MethodGet,
		URL:    in.ExecutionURL,
		Header: http.Header{},
	}
	if in.Body != nil {
		t.Method = http.MethodPost
		t.Body = in.Body
	}
	if cfg.AuthToken != "" {
		t.Header.Set("Content-Type", "application/json")
		t.Header.Set("Authorization", "Bearer "+cfg.AuthToken)
	}

	return t
}

// Host returns the target URL's host, used as the rate limit key.
// Returns an empty string for unparseable URLs.
func (t Target) Host() string {
	u, err := url.Parse(t.URL)
	if err != nil {
		return ""
	}

	return u.Host
}

// Result holds the outcome of a successfully delivered HTTP exchange.
type Result struct {
	StatusCode int
	Response   string
	LatencyMs  int
}

// Success reports whether the response status falls in the accepted range.
// The upper bound is inclusive: a 300 response counts as success.
func (r Result) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 300
}

// Sender performs the HTTP dispatch for webhook invocations.
type Sender struct {
	client *http.Client
}

// NewSender creates a sender with the given HTTP timeout.
func NewSender(timeout time.Duration) *Sender {
	return &Sender{
		client: &http.Client{Timeout: timeout},
	}
}

// NewSenderWithClient creates a sender using an existing HTTP client.
func NewSenderWithClient(client *http.Client) *Sender {
	return &Sender{client: client}
}

// Send dispatches a single attempt to the target. A non-nil error means the
// exchange did not complete (connection failure, timeout) and the attempt may
// be retried; a delivered response is returned as a Result regardless of its
// status code.
func (s *Sender) Send(ctx context.Context, t Target) (Result, error) {
	var body io.Reader
	if t.Body != nil {
		body = bytes.NewReader(t.Body)
	}

	req, err := http.NewRequestWithContext(ctx, t.Method, t.URL, body)
	if err != nil {
		return Result{}, err
	}
	for key, values := range t.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	start := time.Now()
	resp, err := s.client.Do(req) //nolint:gosec // G704: URL is a user-configured webhook destination; SSRF is by design.
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	return Result{
		StatusCode: resp.StatusCode,
		Response:   string(respBody),
		LatencyMs:  int(latency),
	}, nil
}
