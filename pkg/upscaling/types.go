package upscaling

import "github.com/gomcpgo/stability_image_ai/pkg/types"

// Upscale modes. Fast is a plain 4x upscaler; conservative and creative
// are prompt-guided. Creative is the one asynchronous operation: its
// endpoint returns a job id that is polled for the finished image.
const (
	ModeFast         = "fast"
	ModeConservative = "conservative"
	ModeCreative     = "creative"
)

// Creativity bounds per mode.
const (
	ConservativeCreativityMin = 0.2
	ConservativeCreativityMax = 0.5
	CreativeCreativityMax     = 0.35
)

// UpscaleParams contains parameters for image upscaling
type UpscaleParams struct {
	Mode      string
	ImagePath string

	// Prompt is required for the conservative and creative modes and
	// ignored entirely by fast.
	Prompt         string
	NegativePrompt string
	Creativity     *float64
	Seed           *int64
	OutputFormat   string

	Filename string // Optional filename hint
}

// UpscaleResult contains the result of an upscale operation
type UpscaleResult struct {
	ID             string
	FilePath       string
	Mode           string
	Format         types.OutputFormat
	Seed           *int64
	FinishReason   string
	GenerationTime float64
	FileSize       int64
}
