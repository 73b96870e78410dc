package handler

import (
	"context"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/threed"
)

func (h *StabilityImageHandler) handleGenerate3DModel(ctx context.Context, args map[string]interface{}) (*protocol.CallToolResponse, error) {
	imagePath := stringArg(args, "image_path")
	if imagePath == "" {
		return h.errorResponse("generate_3d_model", "invalid_parameters", "image_path parameter is required", nil)
	}

	params := threed.MeshParams{
		Model:             stringArg(args, "model"),
		ImagePath:         imagePath,
		TextureResolution: intArg(args, "texture_resolution"),
		ForegroundRatio:   floatArg(args, "foreground_ratio"),
		Remesh:            stringArg(args, "remesh"),
		TargetType:        stringArg(args, "target_type"),
		TargetCount:       intArg(args, "target_count"),
		GuidanceScale:     intArg(args, "guidance_scale"),
		Filename:          stringArg(args, "filename"),
	}

	result, err := h.mesher.Generate(ctx, params)
	if err != nil {
		return h.operationError("generate_3d_model", err)
	}

	return h.successResponse(buildArtifactResponse("generate_3d_model", result.ID, result.FilePath, map[string]interface{}{
		"model": result.Model,
	}, result.Format, nil, "", result.GenerationTime, result.FileSize))
}
