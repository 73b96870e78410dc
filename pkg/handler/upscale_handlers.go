package handler

import (
	"context"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/upscaling"
)

// handleUpscaleImage handles the upscale_image tool
func (h *StabilityImageHandler) handleUpscaleImage(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	imagePath := stringArg(args, "image_path")
	if imagePath == "" {
		return h.errorResponse("upscale_image", "invalid_parameters", "image_path parameter is required", nil)
	}

	mode := stringArg(args, "mode")
	if mode == "" {
		mode = upscaling.ModeFast
	}

	params := upscaling.UpscaleParams{
		Mode:           mode,
		ImagePath:      imagePath,
		Prompt:         stringArg(args, "prompt"),
		NegativePrompt: stringArg(args, "negative_prompt"),
		Creativity:     floatArg(args, "creativity"),
		Seed:           intArg(args, "seed"),
		OutputFormat:   stringArg(args, "output_format"),
		Filename:       stringArg(args, "filename"),
	}

	result, err := h.upscaler.Upscale(ctx, params)
	if err != nil {
		return h.operationError("upscale_image", err)
	}

	return h.successResponse(buildArtifactResponse("upscale_image", result.ID, result.FilePath, map[string]interface{}{
		"mode":   result.Mode,
		"prompt": params.Prompt,
	}, result.Format, result.Seed, result.FinishReason, result.GenerationTime, result.FileSize))
}
