package client

import (
	"context"

	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

// Client defines the interface for dispatching operations against the
// Stability AI API.
type Client interface {
	// Execute runs one operation (sync or async) and returns its Result
	Execute(ctx context.Context, op Operation, form *Form) (*types.Result, error)

	// Balance fetches the remaining account credits
	Balance(ctx context.Context) (float64, error)
}

// Ensure StabilityClient implements the Client interface
var _ Client = (*StabilityClient)(nil)
