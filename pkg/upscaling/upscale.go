package upscaling

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

// Upscaler handles image upscaling operations
type Upscaler struct {
	client  client.Client
	storage *storage.Storage
	debug   bool
}

// NewUpscaler creates a new Upscaler instance
func NewUpscaler(c client.Client, store *storage.Storage, debug bool) *Upscaler {
	return &Upscaler{
		client:  c,
		storage: store,
		debug:   debug,
	}
}

// Upscale enlarges a local image in one of three modes. The creative
// mode runs through the async submit-and-poll protocol; for the caller
// the difference is invisible beyond latency.
func (u *Upscaler) Upscale(ctx context.Context, params UpscaleParams) (*UpscaleResult, error) {
	startTime := time.Now()

	op, err := client.UpscaleEndpoint(params.Mode)
	if err != nil {
		return nil, types.OperationError{
			Code:    "invalid_parameters",
			Message: err.Error(),
		}
	}

	if err := validateUpscaleParams(&params); err != nil {
		return nil, err
	}

	form, err := buildUpscaleForm(&params)
	if err != nil {
		return nil, err
	}

	if u.debug {
		log.Printf("DEBUG: upscaling with %s (async=%v), fields %v", op.Name, op.Async, form.FieldNames())
	}

	result, err := u.client.Execute(ctx, op, form)
	if err != nil {
		return nil, err
	}

	return u.saveResult(op, &params, result, startTime)
}

func validateUpscaleParams(params *UpscaleParams) error {
	if params.ImagePath == "" {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}

	switch params.Mode {
	case ModeFast:
		// fast takes no prompt or creativity knobs
	case ModeConservative:
		if params.Prompt == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "prompt is required for conservative upscaling",
			}
		}
		if params.Creativity != nil &&
			(*params.Creativity < ConservativeCreativityMin || *params.Creativity > ConservativeCreativityMax) {
			return types.OperationError{
				Code: "invalid_parameters",
				Message: fmt.Sprintf("creativity must be between %g and %g for conservative upscaling",
					ConservativeCreativityMin, ConservativeCreativityMax),
			}
		}
	case ModeCreative:
		if params.Prompt == "" {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "prompt is required for creative upscaling",
			}
		}
		if params.Creativity != nil &&
			(*params.Creativity <= 0 || *params.Creativity > CreativeCreativityMax) {
			return types.OperationError{
				Code: "invalid_parameters",
				Message: fmt.Sprintf("creativity must be between 0 and %g for creative upscaling",
					CreativeCreativityMax),
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

func buildUpscaleForm(params *UpscaleParams) (*client.Form, error) {
	form := client.NewForm()

	if err := form.SetFile("image", params.ImagePath); err != nil {
		return nil, err
	}

	if params.Mode != ModeFast {
		form.SetField("prompt", params.Prompt)
		if params.NegativePrompt != "" {
			form.SetField("negative_prompt", params.NegativePrompt)
		}
		if params.Creativity != nil {
			form.SetFloat("creativity", *params.Creativity)
		}
		if params.Seed != nil {
			form.SetInt("seed", *params.Seed)
		}
	}

	outputFormat := params.OutputFormat
	if outputFormat == "" {
		outputFormat = string(types.DefaultOutputFormat)
	}
	form.SetField("output_format", outputFormat)

	return form, nil
}

func (u *Upscaler) saveResult(op client.Operation, params *UpscaleParams, result *types.Result, startTime time.Time) (*UpscaleResult, error) {
	id, err := u.storage.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	hint := params.Prompt
	if hint == "" {
		hint = "upscaled"
	}
	filename := storage.DeriveFilename(params.Filename, hint, "upscale_"+params.Mode, result.Format)
	artifactPath, err := u.storage.SaveArtifact(id, result.Data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	elapsed := time.Since(startTime).Seconds()
	metadata := &types.ArtifactMetadata{
		ID:        id,
		Operation: "upscale_image",
		Timestamp: time.Now(),
		Endpoint:  op.Name,
		Parameters: map[string]interface{}{
			"mode":  params.Mode,
			"image": params.ImagePath,
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
	if err := u.storage.SaveMetadata(id, metadata); err != nil && u.debug {
		log.Printf("DEBUG: failed to save metadata: %v", err)
	}

	return &UpscaleResult{
		ID:             id,
		FilePath:       artifactPath,
		Mode:           params.Mode,
		Format:         result.Format,
		Seed:           result.Seed,
		FinishReason:   result.FinishReason,
		GenerationTime: elapsed,
		FileSize:       int64(len(result.Data)),
	}, nil
}
