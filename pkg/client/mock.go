package client

import (
	"context"
	"sync"

	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

// onePixelPNG is a valid 1x1 transparent PNG used as the default mock payload.
var onePixelPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x64, 0x60, 0xf8, 0x5f,
	0x0f, 0x00, 0x02, 0x87, 0x01, 0x80, 0xeb, 0x47, 0xba, 0x92, 0x00, 0x00,
	0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// MockClient is a mock implementation of the Client interface for testing.
// It records every call so tests can assert which operations were (or were
// not) dispatched and what forms they carried.
type MockClient struct {
	// Control behavior
	Result  *types.Result
	Err     error
	Credits float64

	// Track calls for assertions
	ExecuteCalls []ExecuteCall
	BalanceCalls int

	mu sync.Mutex
}

// ExecuteCall records one call to Execute.
type ExecuteCall struct {
	Op   Operation
	Form *Form
}

// NewMockClient creates a mock client that answers every Execute call
// with a small PNG result.
func NewMockClient() *MockClient {
	seed := int64(1234)
	return &MockClient{
		Result: &types.Result{
			Data:         onePixelPNG,
			Format:       types.FormatPNG,
			Seed:         &seed,
			FinishReason: "SUCCESS",
		},
		Credits: 100,
	}
}

// Execute records the call and returns the configured result or error.
func (m *MockClient) Execute(ctx context.Context, op Operation, form *Form) (*types.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExecuteCalls = append(m.ExecuteCalls, ExecuteCall{Op: op, Form: form})

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// Balance records the call and returns the configured credit count.
func (m *MockClient) Balance(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BalanceCalls++

	if m.Err != nil {
		return 0, m.Err
	}
	return m.Credits, nil
}

// LastCall returns the most recent Execute call, or nil when none happened.
func (m *MockClient) LastCall() *ExecuteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.ExecuteCalls) == 0 {
		return nil
	}
	return &m.ExecuteCalls[len(m.ExecuteCalls)-1]
}

// Reset clears all recorded state for a fresh test.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ExecuteCalls = nil
	m.BalanceCalls = 0
	m.Err = nil
}

// Ensure MockClient implements the Client interface
var _ Client = (*MockClient)(nil)
