package generation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gomcpgo/stability_image_ai/pkg/client"
	"github.com/gomcpgo/stability_image_ai/pkg/storage"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

// maxSeed is the largest seed the API accepts.
const maxSeed = 4294967294

// Generator handles image generation operations
type Generator struct {
	client  client.Client
	storage *storage.Storage
	debug   bool
}

// NewGenerator creates a new Generator instance
func NewGenerator(c client.Client, store *storage.Storage, debug bool) *Generator {
	return &Generator{
		client:  c,
		storage: store,
		debug:   debug,
	}
}

// Generate produces an image from a text prompt, optionally guided by a
// starting image (image-to-image). Validation happens entirely before
// the request is dispatched.
func (g *Generator) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	startTime := time.Now()

	model := ResolveModelAlias(params.Model)

	// Resolve the endpoint first: an unknown variant is a caller
	// contract violation, not a network error.
	op, err := client.GenerationEndpoint(model)
	if err != nil {
		return nil, types.OperationError{
			Code:    "invalid_parameters",
			Message: err.Error(),
		}
	}

	if err := validateGenerateParams(&params, model); err != nil {
		return nil, err
	}

	form, err := buildGenerateForm(&params, model)
	if err != nil {
		return nil, err
	}

	if g.debug {
		log.Printf("DEBUG: generating with %s, fields %v", op.Name, form.FieldNames())
	}

	result, err := g.client.Execute(ctx, op, form)
	if err != nil {
		return nil, err
	}

	return g.saveResult(op, model, &params, result, startTime)
}

// validateGenerateParams enforces the documented parameter bounds
// before any network I/O.
func validateGenerateParams(params *GenerateParams, model string) error {
	if params.Prompt == "" {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: "prompt is required",
		}
	}

	if params.Seed != nil && (*params.Seed < 0 || *params.Seed > maxSeed) {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: fmt.Sprintf("seed must be between 0 and %d", maxSeed),
		}
	}

	if params.Strength != nil {
		if params.ImagePath == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "strength is only valid together with an image",
			}
		}
		if *params.Strength < 0 || *params.Strength > 1 {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "strength must be between 0 and 1",
			}
		}
	}

	if params.ImagePath != "" && model == ModelCore {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: "the core model does not support image-to-image; use ultra or an sd3.5 variant",
		}
	}

	if params.AspectRatio != "" && !AspectRatios[params.AspectRatio] {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: fmt.Sprintf("invalid aspect ratio: %q", params.AspectRatio),
		}
	}

	if params.StylePreset != "" && !StylePresets[params.StylePreset] {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: fmt.Sprintf("invalid style preset: %q", params.StylePreset),
		}
	}

	if err := validateOutputFormat(params.OutputFormat); err != nil {
		return err
	}

	return nil
}

func validateOutputFormat(format string) error {
	switch format {
	case "", "png", "jpeg", "webp":
		return nil
	default:
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: fmt.Sprintf("invalid output format: %q (png, jpeg, webp)", format),
		}
	}
}

// buildGenerateForm encodes the per-model branching rules: sd3 variants
// carry model and mode fields, and a supplied image switches the mode
// to image-to-image with the image part and optional strength attached.
func buildGenerateForm(params *GenerateParams, model string) (*client.Form, error) {
	form := client.NewForm()
	form.SetField("prompt", params.Prompt)

	if IsSD3Model(model) {
		form.SetField("model", model)
		if params.ImagePath != "" {
			form.SetField("mode", "image-to-image")
		} else {
			form.SetField("mode", "text-to-image")
		}
	}

	if params.ImagePath != "" {
		if err := form.SetFile("image", params.ImagePath); err != nil {
			return nil, err
		}
		if params.Strength != nil {
			form.SetFloat("strength", *params.Strength)
		}
	} else if params.AspectRatio != "" {
		// aspect_ratio only applies when generating from scratch
		form.SetField("aspect_ratio", params.AspectRatio)
	}

	if params.NegativePrompt != "" {
		form.SetField("negative_prompt", params.NegativePrompt)
	}
	if params.StylePreset != "" {
		form.SetField("style_preset", params.StylePreset)
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

// saveResult persists the binary payload and metadata sidecar and
// assembles the caller-facing result.
func (g *Generator) saveResult(op client.Operation, model string, params *GenerateParams, result *types.Result, startTime time.Time) (*GenerateResult, error) {
	id, err := g.storage.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	filename := storage.DeriveFilename(params.Filename, params.Prompt, model, result.Format)
	artifactPath, err := g.storage.SaveArtifact(id, result.Data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	elapsed := time.Since(startTime).Seconds()
	metadata := &types.ArtifactMetadata{
		ID:        id,
		Operation: "generate_image",
		Timestamp: time.Now(),
		Endpoint:  op.Name,
		Parameters: map[string]interface{}{
			"prompt": params.Prompt,
			"model":  model,
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
	if err := g.storage.SaveMetadata(id, metadata); err != nil && g.debug {
		log.Printf("DEBUG: failed to save metadata: %v", err)
	}

	return &GenerateResult{
		ID:             id,
		FilePath:       artifactPath,
		Model:          model,
		ModelName:      GetModelInfo(model).Name,
		Format:         result.Format,
		Seed:           result.Seed,
		FinishReason:   result.FinishReason,
		GenerationTime: elapsed,
		FileSize:       int64(len(result.Data)),
	}, nil
}
