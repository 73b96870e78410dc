package control

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gomcpgo/stability_image_ai/pkg/client"
	"github.com/gomcpgo/stability_image_ai/pkg/storage"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

const maxSeed = 4294967294

// Controller handles control-guided generation operations
type Controller struct {
	client  client.Client
	storage *storage.Storage
	debug   bool
}

// NewController creates a new Controller instance
func NewController(c client.Client, store *storage.Storage, debug bool) *Controller {
	return &Controller{
		client:  c,
		storage: store,
		debug:   debug,
	}
}

// Generate runs one of the four control-guided operations, steering the
// output with a sketch, structure reference, or style image.
func (c *Controller) Generate(ctx context.Context, params ControlParams) (*ControlResult, error) {
	startTime := time.Now()

	op, err := client.ControlEndpoint(params.Operation)
	if err != nil {
		return nil, types.OperationError{
			Code:    "invalid_parameters",
			Message: err.Error(),
		}
	}

	if err := validateControlParams(&params); err != nil {
		return nil, err
	}

	form, err := buildControlForm(&params)
	if err != nil {
		return nil, err
	}

	if c.debug {
		log.Printf("DEBUG: control generation with %s, fields %v", op.Name, form.FieldNames())
	}

	result, err := c.client.Execute(ctx, op, form)
	if err != nil {
		return nil, err
	}

	return c.saveResult(op, &params, result, startTime)
}

func validateControlParams(params *ControlParams) error {
	if params.ImagePath == "" {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}

	switch params.Operation {
	case OpSketch, OpStructure, OpStyle:
		if params.Prompt == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: fmt.Sprintf("prompt is required for %s", params.Operation),
			}
		}
	case OpStyleTransfer:
		if params.StyleImagePath == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "style image path is required for style-transfer",
			}
		}
	}

	for name, v := range map[string]*float64{
		"control_strength": params.ControlStrength,
		"fidelity":         params.Fidelity,
		"style_strength":   params.StyleStrength,
		"change_strength":  params.ChangeStrength,
	} {
		if v != nil && (*v < 0 || *v > 1) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: fmt.Sprintf("%s must be between 0 and 1", name),
			}
		}
	}

	if params.Seed != nil && (*params.Seed < 0 || *params.Seed > maxSeed) {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: fmt.Sprintf("seed must be between 0 and %d", maxSeed),
		}
	}

	switch params.OutputFormat {
	case "", "png", "jpeg", "webp":
	default:
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: fmt.Sprintf("invalid output format: %q (png, jpeg, webp)", params.OutputFormat),
		}
	}

	return nil
}

func buildControlForm(params *ControlParams) (*client.Form, error) {
	form := client.NewForm()

	switch params.Operation {
	case OpStyleTransfer:
		if err := form.SetFile("init_image", params.ImagePath); err != nil {
			return nil, err
		}
		if err := form.SetFile("style_image", params.StyleImagePath); err != nil {
			return nil, err
		}
		if params.Prompt != "" {
			form.SetField("prompt", params.Prompt)
		}
		if params.StyleStrength != nil {
			form.SetFloat("style_strength", *params.StyleStrength)
		}
		if params.ChangeStrength != nil {
			form.SetFloat("change_strength", *params.ChangeStrength)
		}
	default:
		if err := form.SetFile("image", params.ImagePath); err != nil {
			return nil, err
		}
		form.SetField("prompt", params.Prompt)
		switch params.Operation {
		case OpSketch, OpStructure:
			if params.ControlStrength != nil {
				form.SetFloat("control_strength", *params.ControlStrength)
			}
		case OpStyle:
			if params.Fidelity != nil {
				form.SetFloat("fidelity", *params.Fidelity)
			}
		}
	}

	if params.NegativePrompt != "" {
		form.SetField("negative_prompt", params.NegativePrompt)
	}
	if params.Seed != nil {
		form.SetInt("seed", *params.Seed)
	}

	outputFormat := params.OutputFormat
	if outputFormat == "" {
		outputFormat = string(types.DefaultOutputFormat)
	}
	form.SetField("output_format", outputFormat)

	return form, nil
}

func (c *Controller) saveResult(op client.Operation, params *ControlParams, result *types.Result, startTime time.Time) (*ControlResult, error) {
	id, err := c.storage.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	hint := params.Prompt
	if hint == "" {
		hint = params.Operation
	}
	filename := storage.DeriveFilename(params.Filename, hint, "control_"+params.Operation, result.Format)
	artifactPath, err := c.storage.SaveArtifact(id, result.Data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	elapsed := time.Since(startTime).Seconds()
	metadata := &types.ArtifactMetadata{
		ID:        id,
		Operation: "control_" + params.Operation,
		Timestamp: time.Now(),
		Endpoint:  op.Name,
		Parameters: map[string]interface{}{
			"prompt": params.Prompt,
			"image":  params.ImagePath,
		},
		Result: &types.ArtifactResult{
			Filename:       filename,
			Format:         string(result.Format),
			GenerationTime: elapsed,
			Seed:           result.Seed,
			FinishReason:   result.FinishReason,
			FileSize:       int64(len(result.Data)),
		},
	}
	if err := c.storage.SaveMetadata(id, metadata); err != nil && c.debug {
		log.Printf("DEBUG: failed to save metadata: %v", err)
	}

	return &ControlResult{
		ID:             id,
		FilePath:       artifactPath,
		Operation:      params.Operation,
		Format:         result.Format,
		Seed:           result.Seed,
		FinishReason:   result.FinishReason,
		GenerationTime: elapsed,
		FileSize:       int64(len(result.Data)),
	}, nil
}
