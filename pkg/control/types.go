package control

import "github.com/gomcpgo/stability_image_ai/pkg/types"

// Control-guided generation operations.
const (
	OpSketch        = "sketch"
	OpStructure     = "structure"
	OpStyle         = "style"
	OpStyleTransfer = "style-transfer"
)

// ControlParams contains parameters for control-guided generation.
// Sketch and structure take a control_strength knob, style takes a
// fidelity knob, and style-transfer takes a second style image with
// its own strength knobs.
type ControlParams struct {
	Operation string
	ImagePath string

	// StyleImagePath is the second image for style-transfer
	StyleImagePath string

	Prompt         string
	NegativePrompt string

	ControlStrength *float64 // sketch, structure: [0,1]
	Fidelity        *float64 // style: [0,1]
	StyleStrength   *float64 // style-transfer: [0,1]
	ChangeStrength  *float64 // style-transfer: [0,1]

	Seed         *int64
	OutputFormat string

	Filename string // Optional filename hint
}

// ControlResult contains the result of a control-guided generation
type ControlResult struct {
	ID             string
	FilePath       string
	Operation      string
	Format         types.OutputFormat
	Seed           *int64
	FinishReason   string
	GenerationTime float64
	FileSize       int64
}
