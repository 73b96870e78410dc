package generation

import "github.com/gomcpgo/stability_image_ai/pkg/types"

// GenerateParams contains parameters for image generation. Optional
// numeric fields are pointers: nil means "unset" and keeps the field
// off the wire entirely.
type GenerateParams struct {
	Prompt         string
	Model          string
	NegativePrompt string
	AspectRatio    string
	StylePreset    string
	OutputFormat   string
	Seed           *int64

	// ImagePath switches the request from text-to-image to
	// image-to-image; Strength is only meaningful alongside it.
	ImagePath string
	Strength  *float64

	Filename string // Optional filename hint
}

// GenerateResult contains the result of an image generation
type GenerateResult struct {
	ID             string
	FilePath       string
	Model          string
	ModelName      string
	Format         types.OutputFormat
	Seed           *int64
	FinishReason   string
	GenerationTime float64
	FileSize       int64
}
