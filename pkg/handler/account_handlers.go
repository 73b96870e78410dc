package handler

import (
	"context"
	"fmt"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/responses"
)

func (h *StabilityImageHandler) handleGetBalance(ctx context.Context) (*protocol.CallToolResponse, error) {
	credits, err := h.client.Balance(ctx)
	if err != nil {
		return h.operationError("get_balance", err)
	}

	return h.successResponse(responses.BuildSimpleSuccessResponse("get_balance",
		fmt.Sprintf("%.2f credits remaining", credits),
		map[string]interface{}{
			"credits": credits,
		}))
}

func (h *StabilityImageHandler) handleListImages(ctx context.Context) (*protocol.CallToolResponse, error) {
	artifacts, err := h.imageStore.ListArtifacts()
	if err != nil {
		return h.errorResponse("list_images", "storage_error", err.Error(), nil)
	}

	items := make([]map[string]interface{}, 0, len(artifacts))
	for _, a := range artifacts {
		items = append(items, map[string]interface{}{
			"id":        a.ID,
			"operation": a.Operation,
			"timestamp": a.Timestamp,
			"file_path": a.FilePath,
			"file_size": responses.GetFileSize(a.FilePath),
		})
	}

	return h.successResponse(responses.BuildSimpleSuccessResponse("list_images",
		fmt.Sprintf("%d stored images", len(items)),
		map[string]interface{}{
			"images": items,
		}))
}
