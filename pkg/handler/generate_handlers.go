package handler

import (
	"context"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/generation"
	"github.com/gomcpgo/stability_image_ai/pkg/responses"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

// handleGenerateImage handles the generate_image tool
func (h *StabilityImageHandler) handleGenerateImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	prompt := stringArg(args, "prompt")
	if prompt == "" {
		return h.errorResponse("generate_image", "invalid_parameters", "prompt parameter is required", nil)
	}

	params := generation.GenerateParams{
		Prompt:         prompt,
		Model:          stringArg(args, "model"),
		NegativePrompt: stringArg(args, "negative_prompt"),
		AspectRatio:    stringArg(args, "aspect_ratio"),
		StylePreset:    stringArg(args, "style_preset"),
		OutputFormat:   stringArg(args, "output_format"),
		Seed:           intArg(args, "seed"),
		ImagePath:      stringArg(args, "image_path"),
		Strength:       floatArg(args, "strength"),
		Filename:       stringArg(args, "filename"),
	}

	result, err := h.generator.Generate(ctx, params)
	if err != nil {
		return h.operationError("generate_image", err)
	}

	return h.successResponse(buildArtifactResponse("generate_image", result.ID, result.FilePath, map[string]interface{}{
		"prompt": params.Prompt,
		"model":  result.Model,
	}, result.Format, result.Seed, result.FinishReason, result.GenerationTime, result.FileSize))
}

// buildArtifactResponse assembles the uniform success payload every
// binary-producing tool returns.
func buildArtifactResponse(operation, id, filePath string, params map[string]interface{}, format types.OutputFormat, seed *int64, finishReason string, generationTime float64, fileSize int64) string {
	paths := map[string]string{
		"file_path": filePath,
	}

	metrics := map[string]interface{}{
		"generation_time": generationTime,
		"file_size":       fileSize,
		"format":          string(format),
	}
	if seed != nil {
		metrics["seed"] = *seed
	}
	if finishReason != "" {
		metrics["finish_reason"] = finishReason
	}

	return responses.BuildSuccessResponse(operation, id, paths, params, metrics)
}
