package editing

import "github.com/gomcpgo/stability_image_ai/pkg/types"

// EditParams contains parameters for image editing. Which fields are
// required or even allowed depends on the operation; optional numerics
// are pointers so "unset" stays off the wire.
type EditParams struct {
	Operation string
	ImagePath string

	Prompt         string // required for inpaint, search-and-replace, search-and-recolor
	SearchPrompt   string // search-and-replace: what to find
	SelectPrompt   string // search-and-recolor: what to select
	MaskPath       string // optional for erase, inpaint
	NegativePrompt string
	GrowMask       *float64
	Seed           *int64
	OutputFormat   string

	// Outpaint directions in pixels; at least one must be positive
	Left  *int64
	Right *int64
	Up    *int64
	Down  *int64
	// Outpaint creativity knob
	Creativity *float64

	// Replace-background-and-relight fields
	BackgroundPrompt     string
	ForegroundPrompt     string
	LightSourceDirection string
	LightSourceStrength  *float64

	Filename string // Optional filename hint
}

// EditResult contains the result of an edit operation
type EditResult struct {
	ID             string
	FilePath       string
	Operation      string
	Format         types.OutputFormat
	Seed           *int64
	FinishReason   string
	GenerationTime float64
	FileSize       int64
}
