package editing

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

// Editor handles image editing operations
type Editor struct {
	client  client.Client
	storage *storage.Storage
	debug   bool
}

// NewEditor creates a new Editor instance
func NewEditor(c client.Client, store *storage.Storage, debug bool) *Editor {
	return &Editor{
		client:  c,
		storage: store,
		debug:   debug,
	}
}

// Edit runs one of the seven edit operations against a local image.
func (e *Editor) Edit(ctx context.Context, params EditParams) (*EditResult, error) {
	startTime := time.Now()

	op, err := client.EditEndpoint(params.Operation)
	if err != nil {
		return nil, types.OperationError{
			Code:    "invalid_parameters",
			Message: err.Error(),
		}
	}

	if err := validateEditParams(&params); err != nil {
		return nil, err
	}

	form, err := buildEditForm(&params)
	if err != nil {
		return nil, err
	}

	if e.debug {
		log.Printf("DEBUG: editing with %s, fields %v", op.Name, form.FieldNames())
	}

	result, err := e.client.Execute(ctx, op, form)
	if err != nil {
		return nil, err
	}

	return e.saveResult(op, &params, result, startTime)
}

func validateEditParams(params *EditParams) error {
	if params.ImagePath == "" {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}

	switch params.Operation {
	case OpInpaint:
		if params.Prompt == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "prompt is required for inpaint",
			}
		}
	case OpSearchAndReplace:
		if params.Prompt == "" || params.SearchPrompt == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "prompt and search_prompt are required for search-and-replace",
			}
		}
	case OpSearchAndRecolor:
		if params.Prompt == "" || params.SelectPrompt == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "prompt and select_prompt are required for search-and-recolor",
			}
		}
	case OpOutpaint:
		if !hasOutpaintDirection(params) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "outpaint needs at least one direction (left, right, up, down)",
			}
		}
		for _, d := range outpaintDirections(params) {
			if d.value != nil && (*d.value < 0 || *d.value > 2000) {
				return types.OperationError{
					Code:    "invalid_parameters",
					Message: fmt.Sprintf("%s must be between 0 and 2000 pixels", d.name),
				}
			}
		}
		if params.Creativity != nil && (*params.Creativity < 0 || *params.Creativity > 1) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "creativity must be between 0 and 1",
			}
		}
	case OpReplaceBackground:
		if params.BackgroundPrompt == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "background_prompt is required for replace-background-and-relight",
			}
		}
		switch params.LightSourceDirection {
		case "", "above", "below", "left", "right":
		default:
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: fmt.Sprintf("invalid light source direction: %q", params.LightSourceDirection),
			}
		}
		if params.LightSourceStrength != nil && (*params.LightSourceStrength < 0 || *params.LightSourceStrength > 1) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "light_source_strength must be between 0 and 1",
			}
		}
	}

	if params.GrowMask != nil && (*params.GrowMask < 0 || *params.GrowMask > 100) {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: "grow_mask must be between 0 and 100",
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

type outpaintDirection struct {
	name  string
	value *int64
}

func outpaintDirections(params *EditParams) []outpaintDirection {
	return []outpaintDirection{
		{"left", params.Left},
		{"right", params.Right},
		{"up", params.Up},
		{"down", params.Down},
	}
}

func hasOutpaintDirection(params *EditParams) bool {
	for _, d := range outpaintDirections(params) {
		if d.value != nil && *d.value > 0 {
			return true
		}
	}
	return false
}

// buildEditForm assembles the per-operation field set. The image part
// name differs for replace-background-and-relight, which takes the
// subject separately from an optional background reference.
func buildEditForm(params *EditParams) (*client.Form, error) {
	form := client.NewForm()

	imageField := "image"
	if params.Operation == OpReplaceBackground {
		imageField = "subject_image"
	}
	if err := form.SetFile(imageField, params.ImagePath); err != nil {
		return nil, err
	}

	switch params.Operation {
	case OpInpaint, OpSearchAndReplace, OpSearchAndRecolor:
		form.SetField("prompt", params.Prompt)
	case OpOutpaint:
		if params.Prompt != "" {
			form.SetField("prompt", params.Prompt)
		}
	}

	if params.Operation == OpSearchAndReplace {
		form.SetField("search_prompt", params.SearchPrompt)
	}
	if params.Operation == OpSearchAndRecolor {
		form.SetField("select_prompt", params.SelectPrompt)
	}

	if params.MaskPath != "" {
		if err := form.SetFile("mask", params.MaskPath); err != nil {
			return nil, err
		}
	}

	if params.Operation == OpOutpaint {
		for _, d := range outpaintDirections(params) {
			if d.value != nil {
				form.SetInt(d.name, *d.value)
			}
		}
		if params.Creativity != nil {
			form.SetFloat("creativity", *params.Creativity)
		}
	}

	if params.Operation == OpReplaceBackground {
		form.SetField("background_prompt", params.BackgroundPrompt)
		if params.ForegroundPrompt != "" {
			form.SetField("foreground_prompt", params.ForegroundPrompt)
		}
		if params.LightSourceDirection != "" {
			form.SetField("light_source_direction", params.LightSourceDirection)
		}
		if params.LightSourceStrength != nil {
			form.SetFloat("light_source_strength", *params.LightSourceStrength)
		}
	}

	if params.NegativePrompt != "" {
		form.SetField("negative_prompt", params.NegativePrompt)
	}
	if params.GrowMask != nil {
		form.SetFloat("grow_mask", *params.GrowMask)
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

func (e *Editor) saveResult(op client.Operation, params *EditParams, result *types.Result, startTime time.Time) (*EditResult, error) {
	id, err := e.storage.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	hint := params.Prompt
	if hint == "" {
		hint = params.Operation
	}
	filename := storage.DeriveFilename(params.Filename, hint, params.Operation, result.Format)
	artifactPath, err := e.storage.SaveArtifact(id, result.Data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	elapsed := time.Since(startTime).Seconds()
	metadata := &types.ArtifactMetadata{
		ID:        id,
		Operation: params.Operation,
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
	if err := e.storage.SaveMetadata(id, metadata); err != nil && e.debug {
		log.Printf("DEBUG: failed to save metadata: %v", err)
	}

	return &EditResult{
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
