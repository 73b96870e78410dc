package handler

import (
	"context"
	"strings"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/control"
)

// handleControl handles the four control-guided generation tools.
func (h *StabilityImageHandler) handleControl(ctx context.Context, operation string, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	toolName := "control_" + strings.ReplaceAll(operation, "-", "_")

	imagePath := stringArg(args, "image_path")
	if imagePath == "" {
		return h.errorResponse(toolName, "invalid_parameters", "image_path parameter is required", nil)
	}

	params := control.ControlParams{
		Operation:       operation,
		ImagePath:       imagePath,
		StyleImagePath:  stringArg(args, "style_image_path"),
		Prompt:          stringArg(args, "prompt"),
		NegativePrompt:  stringArg(args, "negative_prompt"),
		ControlStrength: floatArg(args, "control_strength"),
		Fidelity:        floatArg(args, "fidelity"),
		StyleStrength:   floatArg(args, "style_strength"),
		ChangeStrength:  floatArg(args, "change_strength"),
		Seed:            intArg(args, "seed"),
		OutputFormat:    stringArg(args, "output_format"),
		Filename:        stringArg(args, "filename"),
	}

	result, err := h.controller.Generate(ctx, params)
	if err != nil {
		return h.operationError(toolName, err)
	}

	return h.successResponse(buildArtifactResponse(toolName, result.ID, result.FilePath, map[string]interface{}{
		"operation": operation,
		"prompt":    params.Prompt,
	}, result.Format, result.Seed, result.FinishReason, result.GenerationTime, result.FileSize))
}
