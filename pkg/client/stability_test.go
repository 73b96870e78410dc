package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gomcpgo/stability_image_ai/pkg/config"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*StabilityClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewStabilityClientWithTimeouts("test-key", config.TestTimeouts(), false)
	c.SetBaseURL(srv.URL)
	return c, srv
}

func textForm(t *testing.T) *Form {
	t.Helper()
	form := NewForm()
	form.SetField("prompt", "a test prompt")
	return form
}

// TestExecute_DecodesBinaryResult tests that a synchronous success is
// decoded into data, format and the seed/finish-reason headers
func TestExecute_DecodesBinaryResult(t *testing.T) {
	var gotAuth, gotAccept string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("seed", "42")
		w.Header().Set("finish-reason", "SUCCESS")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("jpeg-bytes"))
	}))

	op, err := GenerationEndpoint("core")
	require.NoError(t, err)

	result, err := c.Execute(context.Background(), op, textForm(t))
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "image/*", gotAccept)
	assert.Equal(t, []byte("jpeg-bytes"), result.Data)
	assert.Equal(t, types.FormatJPEG, result.Format)
	require.NotNil(t, result.Seed)
	assert.Equal(t, int64(42), *result.Seed)
	assert.Equal(t, "SUCCESS", result.FinishReason)
}

func TestExecute_DefaultsToPNGFormat(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("payload"))
	}))

	op, _ := GenerationEndpoint("ultra")
	result, err := c.Execute(context.Background(), op, textForm(t))
	require.NoError(t, err)

	assert.Equal(t, types.FormatPNG, result.Format)
	assert.Nil(t, result.Seed)
}

// TestExecute_ErrorClassification tests that 401/402/429 responses are
// classified into their own failure categories
func TestExecute_ErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
		name   string
	}{
		{http.StatusUnauthorized, IsAuthError, "auth 401"},
		{http.StatusForbidden, IsAuthError, "auth 403"},
		{http.StatusPaymentRequired, IsInsufficientCredits, "credits 402"},
		{http.StatusTooManyRequests, IsRateLimited, "rate limit 429"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"errors":["nope"]}`))
			}))

			op, _ := GenerationEndpoint("core")
			_, err := c.Execute(context.Background(), op, textForm(t))
			require.Error(t, err)
			assert.True(t, tc.check(err))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Body, "nope")
		})
	}
}

func TestExecute_GenericAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))

	op, _ := GenerationEndpoint("core")
	_, err := c.Execute(context.Background(), op, textForm(t))
	require.Error(t, err)

	assert.False(t, IsAuthError(err))
	assert.False(t, IsInsufficientCredits(err))
	assert.False(t, IsRateLimited(err))
	assert.Contains(t, err.Error(), "API error (status 500)")
}

// TestExecute_AsyncPolling tests the submit-then-poll protocol: 202
// keeps polling, the first 200 delivers the result
func TestExecute_AsyncPolling(t *testing.T) {
	var polls int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"job-abc123"}`))
			return
		}

		assert.Equal(t, ResultsPath+"/job-abc123", r.URL.Path)
		if atomic.AddInt32(&polls, 1) < 4 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("finish-reason", "SUCCESS")
		w.Write([]byte("upscaled"))
	}))

	op, err := UpscaleEndpoint("creative")
	require.NoError(t, err)

	result, err := c.Execute(context.Background(), op, textForm(t))
	require.NoError(t, err)

	assert.Equal(t, int32(4), atomic.LoadInt32(&polls))
	assert.Equal(t, []byte("upscaled"), result.Data)
	assert.Equal(t, types.FormatPNG, result.Format)
}

// TestExecute_PollCeiling tests that a job stuck in progress surfaces a
// PollTimeoutError rather than hanging forever
func TestExecute_PollCeiling(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"id":"job-stuck"}`))
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	c.timeouts.MaxPollAttempts = 5

	op, _ := UpscaleEndpoint("creative")
	_, err := c.Execute(context.Background(), op, textForm(t))
	require.Error(t, err)

	var pollErr *PollTimeoutError
	require.ErrorAs(t, err, &pollErr)
	assert.Equal(t, "job-stuck", pollErr.JobID)
	assert.Equal(t, 5, pollErr.Attempts)
}

func TestExecute_AsyncSubmissionMissingID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	op, _ := UpscaleEndpoint("creative")
	_, err := c.Execute(context.Background(), op, textForm(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestExecute_AsyncErrorDuringPoll(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"id":"job-err"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no such job"))
	}))

	op, _ := UpscaleEndpoint("creative")
	_, err := c.Execute(context.Background(), op, textForm(t))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

// TestExecute_ContextCancelDuringPoll tests that cancelling the MCP
// request context stops the poll loop
func TestExecute_ContextCancelDuringPoll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"id":"job-cancel"}`))
			return
		}
		// Cancel once the job is confirmed to be polling
		cancel()
		w.WriteHeader(http.StatusAccepted)
	}))

	op, _ := UpscaleEndpoint("creative")
	_, err := c.Execute(ctx, op, textForm(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, BalancePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"credits": 123.45}`))
	}))
	defer srv.Close()

	c := NewStabilityClient("test-key")
	c.SetBaseURL(srv.URL)

	credits, err := c.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 123.45, credits)
}

func TestBalance_AuthFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid key"))
	}))

	_, err := c.Balance(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}
