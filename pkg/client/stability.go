package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gomcpgo/stability_image_ai/pkg/config"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

const (
	stabilityAPIURL = "https://api.stability.ai"

	acceptImage = "image/*"
	acceptJSON  = "application/json"
)

// StabilityClient handles communication with the Stability AI API.
// It holds only read-only configuration; concurrent calls share no
// mutable state.
type StabilityClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	timeouts   config.TimeoutConfig
	debug      bool
}

// NewStabilityClient creates a client with default timeouts.
func NewStabilityClient(apiKey string) *StabilityClient {
	return NewStabilityClientWithTimeouts(apiKey, config.DefaultTimeouts(), false)
}

// NewStabilityClientWithTimeouts creates a client with explicit timeout
// configuration. Tests use config.TestTimeouts() to shrink poll intervals.
func NewStabilityClientWithTimeouts(apiKey string, timeouts config.TimeoutConfig, debug bool) *StabilityClient {
	return &StabilityClient{
		apiKey:     apiKey,
		baseURL:    stabilityAPIURL,
		httpClient: &http.Client{},
		timeouts:   timeouts,
		debug:      debug,
	}
}

// SetBaseURL overrides the upstream base URL. Used by tests to point
// the client at a local fake server.
func (c *StabilityClient) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Execute runs one operation end to end: encode the form, issue the
// request, and either decode the binary response directly or run the
// submit-then-poll protocol when the operation is asynchronous.
// No retries: a failure is surfaced immediately.
func (c *StabilityClient) Execute(ctx context.Context, op Operation, form *Form) (*types.Result, error) {
	if op.Async {
		return c.submitAndPoll(ctx, op, form)
	}
	return c.fetchBinary(ctx, op, form)
}

// fetchBinary posts the form to a synchronous endpoint and decodes the
// binary response. Binary-producing calls get an extended timeout since
// generation latency is far higher than ordinary API calls.
func (c *StabilityClient) fetchBinary(ctx context.Context, op Operation, form *Form) (*types.Result, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}

	timeout := c.timeouts.RequestTimeout * time.Duration(c.timeouts.BinaryTimeoutFactor)
	status, header, respBody, err := c.do(ctx, http.MethodPost, op.Path, body, contentType, acceptImage, timeout)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return nil, &APIError{StatusCode: status, Body: string(respBody)}
	}

	return decodeResult(header, respBody), nil
}

// submitAndPoll posts the form to a job-submission endpoint, then polls
// the results endpoint at a fixed interval until the job reaches a
// terminal state or the attempt ceiling is exhausted.
func (c *StabilityClient) submitAndPoll(ctx context.Context, op Operation, form *Form) (*types.Result, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}

	status, _, respBody, err := c.do(ctx, http.MethodPost, op.Path, body, contentType, acceptJSON, c.timeouts.RequestTimeout)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return nil, &APIError{StatusCode: status, Body: string(respBody)}
	}

	var submit types.SubmitResponse
	if err := json.Unmarshal(respBody, &submit); err != nil {
		return nil, fmt.Errorf("failed to decode job submission response: %w", err)
	}
	if submit.ID == "" {
		return nil, fmt.Errorf("job submission response missing id: %s", string(respBody))
	}

	if c.debug {
		log.Printf("DEBUG: %s submitted, job id %s", op.Name, submit.ID)
	}

	return c.pollResult(ctx, op, submit.ID)
}

// pollResult drives the POLLING state of an async job: wait the fixed
// interval, GET the results endpoint, and loop on 202. Any other
// non-2xx response aborts the job; the attempt ceiling marks it timed
// out, which is a distinct condition from a transport timeout.
func (c *StabilityClient) pollResult(ctx context.Context, op Operation, jobID string) (*types.Result, error) {
	resultPath := ResultsPath + "/" + jobID
	timeout := c.timeouts.RequestTimeout * time.Duration(c.timeouts.BinaryTimeoutFactor)

	for attempt := 1; attempt <= c.timeouts.MaxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.timeouts.PollInterval):
		}

		status, header, respBody, err := c.do(ctx, http.MethodGet, resultPath, nil, "", acceptImage, timeout)
		if err != nil {
			return nil, err
		}

		if status == http.StatusAccepted {
			if c.debug {
				log.Printf("DEBUG: poll #%d for job %s: still in progress", attempt, jobID)
			}
			continue
		}

		if status < 200 || status > 299 {
			return nil, &APIError{StatusCode: status, Body: string(respBody)}
		}

		if c.debug {
			log.Printf("DEBUG: job %s completed after %d polls", jobID, attempt)
		}
		return decodeResult(header, respBody), nil
	}

	return nil, &PollTimeoutError{
		JobID:    jobID,
		Attempts: c.timeouts.MaxPollAttempts,
		Interval: c.timeouts.PollInterval,
	}
}

// Balance fetches the remaining account credits.
func (c *StabilityClient) Balance(ctx context.Context) (float64, error) {
	status, _, respBody, err := c.do(ctx, http.MethodGet, BalancePath, nil, "", acceptJSON, c.timeouts.RequestTimeout)
	if err != nil {
		return 0, err
	}

	if status < 200 || status > 299 {
		return 0, &APIError{StatusCode: status, Body: string(respBody)}
	}

	var balance types.BalanceResponse
	if err := json.Unmarshal(respBody, &balance); err != nil {
		return 0, fmt.Errorf("failed to decode balance response: %w", err)
	}

	return balance.Credits, nil
}

// do issues one HTTP request with bearer authorization and a bounded
// timeout, returning the status, headers and full body. A deadline
// elapse is classified as a TimeoutError so callers can tell it apart
// from an upstream failure.
func (c *StabilityClient) do(ctx context.Context, method, path string, body []byte, contentType, accept string, timeout time.Duration) (int, http.Header, []byte, error) {
	url := c.baseURL + path

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", accept)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.debug {
		log.Printf("DEBUG: %s %s (%d bytes, timeout %v)", method, url, len(body), timeout)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return 0, nil, nil, &TimeoutError{URL: url, Timeout: timeout}
		}
		return 0, nil, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Printf("DEBUG: response status %d (%d bytes)", resp.StatusCode, len(respBody))
	}

	return resp.StatusCode, resp.Header, respBody, nil
}

// decodeResult turns a successful binary response into a Result: the
// format comes from the Content-Type header, and the seed/finish-reason
// headers are extracted best-effort since not every endpoint sets them.
func decodeResult(header http.Header, body []byte) *types.Result {
	result := &types.Result{
		Data:         body,
		Format:       formatFromContentType(header.Get("Content-Type")),
		FinishReason: header.Get("finish-reason"),
	}

	if seedHeader := header.Get("seed"); seedHeader != "" {
		if seed, err := strconv.ParseInt(seedHeader, 10, 64); err == nil {
			result.Seed = &seed
		}
	}

	return result
}

// formatFromContentType maps a response content type onto an output
// format, defaulting to png for anything unrecognized.
func formatFromContentType(contentType string) types.OutputFormat {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "jpeg"):
		return types.FormatJPEG
	case strings.Contains(ct, "webp"):
		return types.FormatWEBP
	case strings.Contains(ct, "gltf"):
		return types.FormatGLB
	default:
		return types.DefaultOutputFormat
	}
}
