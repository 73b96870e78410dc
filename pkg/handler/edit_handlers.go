package handler

import (
	"context"
	"strings"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/editing"
)

// handleEdit handles all seven edit tools; the operation determines
// which arguments are required, enforced by the editing package.
func (h *StabilityImageHandler) handleEdit(ctx context.Context, operation string, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	toolName := editToolName(operation)

	imagePath := stringArg(args, "image_path")
	if imagePath == "" {
		return h.errorResponse(toolName, "invalid_parameters", "image_path parameter is required", nil)
	}

	params := editing.EditParams{
		Operation:            operation,
		ImagePath:            imagePath,
		Prompt:               stringArg(args, "prompt"),
		SearchPrompt:         stringArg(args, "search_prompt"),
		SelectPrompt:         stringArg(args, "select_prompt"),
		MaskPath:             stringArg(args, "mask_path"),
		NegativePrompt:       stringArg(args, "negative_prompt"),
		GrowMask:             floatArg(args, "grow_mask"),
		Seed:                 intArg(args, "seed"),
		OutputFormat:         stringArg(args, "output_format"),
		Left:                 intArg(args, "left"),
		Right:                intArg(args, "right"),
		Up:                   intArg(args, "up"),
		Down:                 intArg(args, "down"),
		Creativity:           floatArg(args, "creativity"),
		BackgroundPrompt:     stringArg(args, "background_prompt"),
		ForegroundPrompt:     stringArg(args, "foreground_prompt"),
		LightSourceDirection: stringArg(args, "light_source_direction"),
		LightSourceStrength:  floatArg(args, "light_source_strength"),
		Filename:             stringArg(args, "filename"),
	}

	result, err := h.editor.Edit(ctx, params)
	if err != nil {
		return h.operationError(toolName, err)
	}

	return h.successResponse(buildArtifactResponse(toolName, result.ID, result.FilePath, map[string]interface{}{
		"operation": operation,
		"prompt":    params.Prompt,
	}, result.Format, result.Seed, result.FinishReason, result.GenerationTime, result.FileSize))
}

// editToolName maps an edit operation back onto its MCP tool name.
func editToolName(operation string) string {
	switch operation {
	case editing.OpErase:
		return "erase_object"
	case editing.OpInpaint:
		return "inpaint_image"
	case editing.OpOutpaint:
		return "outpaint_image"
	default:
		return strings.ReplaceAll(operation, "-", "_")
	}
}
