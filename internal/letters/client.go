// Package letters is the client for the generation service: it submits the
// assembled request, tracks the in-flight state machine, and decodes the
// letter plus the anonymization debug contract from the response.
package letters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/ghostwriter/internal/models"
)

// State is the orchestrator's observable lifecycle phase.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrSubmissionInFlight is returned when Submit is called while another
// submission is outstanding.
var ErrSubmissionInFlight = fmt.Errorf("a generation request is already in flight")

// NetworkError is a transport failure reaching the service. The message is
// surfaced verbatim; no automatic retry is performed.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError is a non-success response from the service, with the
// human-readable reason from the body's detail field when one was parsable.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// Result is a successful generation. The debug fields are optional: a nil
// MapCount means the service did not report one, which is distinct from a
// count of zero.
type Result struct {
	Letter            string
	AnonymizedPreview string
	MapCount          *int
}

// Client submits generation requests to the service. One submission may be
// in flight at a time; a second Submit is rejected rather than interleaved.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	state State
}

// DefaultBaseURL resolves the service base URL from the environment,
// defaulting to the local development server.
func DefaultBaseURL() string {
	if url := os.Getenv("GHOSTWRITER_SERVER_URL"); url != "" {
		return url
	}
	return "http://localhost:8000"
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// uses DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute, // model calls can be slow
		},
		state: StateIdle,
	}
}

// State returns the current lifecycle phase.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit posts the request to the service and decodes the outcome. Failures
// are returned as *NetworkError or *ServiceError; the caller's input state
// is never touched, so any error can be corrected and resubmitted.
func (c *Client) Submit(ctx context.Context, request *models.GenerateRequest) (*Result, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	result, err := c.post(ctx, request)

	c.mu.Lock()
	if err != nil {
		c.state = StateFailed
	} else {
		c.state = StateSucceeded
	}
	c.mu.Unlock()

	return result, err
}

func (c *Client) post(ctx context.Context, request *models.GenerateRequest) (*Result, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("Submitting generation request",
		"url", c.baseURL+"/api/generate",
		"samples", len(request.Samples),
		"images", len(request.SampleImages))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serviceError(resp.StatusCode, respBody)
	}

	var decoded models.GenerateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		// A 2xx with an unparsable body is still a service-side failure.
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: "generation failed"}
	}

	return &Result{
		Letter:            decoded.Letter,
		AnonymizedPreview: decoded.DebugAnonymizedSent,
		MapCount:          decoded.DebugMapCount,
	}, nil
}

// serviceError extracts the detail message from an error body, falling back
// to a generic message when the body cannot be parsed.
func serviceError(status int, body []byte) *ServiceError {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
		return &ServiceError{StatusCode: status, Message: errResp.Detail}
	}
	return &ServiceError{StatusCode: status, Message: "generation failed"}
}
