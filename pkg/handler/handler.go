package handler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/client"
	"github.com/gomcpgo/stability_image_ai/pkg/config"
	"github.com/gomcpgo/stability_image_ai/pkg/control"
	"github.com/gomcpgo/stability_image_ai/pkg/editing"
	"github.com/gomcpgo/stability_image_ai/pkg/generation"
	"github.com/gomcpgo/stability_image_ai/pkg/responses"
	"github.com/gomcpgo/stability_image_ai/pkg/storage"
	"github.com/gomcpgo/stability_image_ai/pkg/threed"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
	"github.com/gomcpgo/stability_image_ai/pkg/upscaling"
)

// StabilityImageHandler handles MCP requests for Stability AI operations
type StabilityImageHandler struct {
	generator  *generation.Generator
	editor     *editing.Editor
	upscaler   *upscaling.Upscaler
	controller *control.Controller
	mesher     *threed.Mesher
	imageStore *storage.Storage
	client     client.Client
	debug      bool
}

// NewStabilityImageHandler creates a new handler instance
func NewStabilityImageHandler(cfg *config.Config) (*StabilityImageHandler, error) {
	timeouts := config.DefaultTimeouts()
	timeouts.RequestTimeout = cfg.RequestTimeout

	stabilityClient := client.NewStabilityClientWithTimeouts(cfg.StabilityAPIKey, timeouts, cfg.DebugMode)

	imageStore := storage.NewStorage(cfg.ImagesRoot)
	meshStore := storage.NewStorage(cfg.MeshesRoot)

	return &StabilityImageHandler{
		generator:  generation.NewGenerator(stabilityClient, imageStore, cfg.DebugMode),
		editor:     editing.NewEditor(stabilityClient, imageStore, cfg.DebugMode),
		upscaler:   upscaling.NewUpscaler(stabilityClient, imageStore, cfg.DebugMode),
		controller: control.NewController(stabilityClient, imageStore, cfg.DebugMode),
		mesher:     threed.NewMesher(stabilityClient, meshStore, cfg.DebugMode),
		imageStore: imageStore,
		client:     stabilityClient,
		debug:      cfg.DebugMode,
	}, nil
}

// CallTool handles execution of the Stability tools
func (h *StabilityImageHandler) CallTool(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResponse, error) {
	if h.debug {
		log.Printf("DEBUG: MCP CallTool received: %s", req.Name)
	}

	switch req.Name {
	// Generation
	case "generate_image":
		return h.handleGenerateImage(ctx, req.Arguments)

	// Editing
	case "erase_object":
		return h.handleEdit(ctx, editing.OpErase, req.Arguments)
	case "inpaint_image":
		return h.handleEdit(ctx, editing.OpInpaint, req.Arguments)
	case "outpaint_image":
		return h.handleEdit(ctx, editing.OpOutpaint, req.Arguments)
	case "search_and_replace":
		return h.handleEdit(ctx, editing.OpSearchAndReplace, req.Arguments)
	case "search_and_recolor":
		return h.handleEdit(ctx, editing.OpSearchAndRecolor, req.Arguments)
	case "remove_background":
		return h.handleEdit(ctx, editing.OpRemoveBackground, req.Arguments)
	case "replace_background_and_relight":
		return h.handleEdit(ctx, editing.OpReplaceBackground, req.Arguments)

	// Upscaling
	case "upscale_image":
		return h.handleUpscaleImage(ctx, req.Arguments)

	// Control-guided generation
	case "control_sketch":
		return h.handleControl(ctx, control.OpSketch, req.Arguments)
	case "control_structure":
		return h.handleControl(ctx, control.OpStructure, req.Arguments)
	case "control_style":
		return h.handleControl(ctx, control.OpStyle, req.Arguments)
	case "control_style_transfer":
		return h.handleControl(ctx, control.OpStyleTransfer, req.Arguments)

	// 3D generation
	case "generate_3d_model":
		return h.handleGenerate3DModel(ctx, req.Arguments)

	// Account and storage
	case "get_balance":
		return h.handleGetBalance(ctx)
	case "list_images":
		return h.handleListImages(ctx)

	default:
		return nil, fmt.Errorf("unknown tool: %s", req.Name)
	}
}

// operationError maps an error from the core onto a structured tool
// response with a category the caller can act on.
func (h *StabilityImageHandler) operationError(operation string, err error) (*protocol.CallToolResponse, error) {
	var opErr types.OperationError
	if errors.As(err, &opErr) {
		return h.errorResponse(operation, opErr.Code, opErr.Message, opErr.Details)
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		code := "api_error"
		switch {
		case client.IsAuthError(err):
			code = "authentication_error"
		case client.IsInsufficientCredits(err):
			code = "insufficient_credits"
		case client.IsRateLimited(err):
			code = "rate_limited"
		}
		return h.errorResponse(operation, code, apiErr.Error(), map[string]interface{}{
			"status_code": apiErr.StatusCode,
		})
	}

	var timeoutErr *client.TimeoutError
	if errors.As(err, &timeoutErr) {
		return h.errorResponse(operation, "timeout", timeoutErr.Error(), nil)
	}

	var pollErr *client.PollTimeoutError
	if errors.As(err, &pollErr) {
		return h.errorResponse(operation, "poll_timeout", pollErr.Error(), map[string]interface{}{
			"job_id":   pollErr.JobID,
			"attempts": pollErr.Attempts,
		})
	}

	return h.errorResponse(operation, "operation_error", err.Error(), nil)
}

// errorResponse builds an error response
func (h *StabilityImageHandler) errorResponse(operation, code, message string, details map[string]interface{}) (*protocol.CallToolResponse, error) {
	content := responses.BuildErrorResponse(operation, code, message, details)

	return &protocol.CallToolResponse{
		Content: []protocol.ToolContent{
			{
				Type: "text",
				Text: content,
			},
		},
	}, nil
}

// successResponse builds a success response
func (h *StabilityImageHandler) successResponse(content string) (*protocol.CallToolResponse, error) {
	return &protocol.CallToolResponse{
		Content: []protocol.ToolContent{
			{
				Type: "text",
				Text: content,
			},
		},
	}, nil
}

// Argument extraction helpers. MCP arguments arrive as JSON-decoded
// map values, so numbers are float64.

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]interface{}, key string) *int64 {
	if v, ok := args[key].(float64); ok {
		i := int64(v)
		return &i
	}
	return nil
}

func floatArg(args map[string]interface{}, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		f := v
		return &f
	}
	return nil
}
