package config

import (
	"os"
	"strconv"
	"time"
)

// TimeoutConfig holds all configurable timeout values
type TimeoutConfig struct {
	// RequestTimeout bounds ordinary JSON/status API calls
	RequestTimeout time.Duration

	// BinaryTimeoutFactor multiplies RequestTimeout for image/mesh
	// producing calls, since generation latency is much higher
	BinaryTimeoutFactor int

	// PollInterval is how long to wait between async result polls
	PollInterval time.Duration

	// MaxPollAttempts is how many polls to issue before giving up
	MaxPollAttempts int
}

// DefaultTimeouts returns the default timeout configuration:
// 60s base requests, 3x for binary calls, and a 5s/60-attempt
// polling ceiling (5 minutes worst case) for async jobs.
func DefaultTimeouts() TimeoutConfig {
	return TimeoutConfig{
		RequestTimeout:      60 * time.Second,
		BinaryTimeoutFactor: 3,
		PollInterval:        5 * time.Second,
		MaxPollAttempts:     60,
	}
}

// LoadTimeouts loads timeout configuration from environment variables
func LoadTimeouts() TimeoutConfig {
	config := DefaultTimeouts()

	if val := os.Getenv("STABILITY_TIMEOUT_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			config.RequestTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	return config
}

// TestTimeouts returns timeout configuration suitable for testing
func TestTimeouts() TimeoutConfig {
	return TimeoutConfig{
		RequestTimeout:      2 * time.Second,
		BinaryTimeoutFactor: 3,
		PollInterval:        10 * time.Millisecond,
		MaxPollAttempts:     60,
	}
}
