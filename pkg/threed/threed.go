package threed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gomcpgo/stability_image_ai/pkg/client"
	"github.com/gomcpgo/stability_image_ai/pkg/storage"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

// Mesher handles 3D mesh generation operations. Meshes are saved under
// their own storage root, separate from images.
type Mesher struct {
	client  client.Client
	storage *storage.Storage
	debug   bool
}

// NewMesher creates a new Mesher instance
func NewMesher(c client.Client, store *storage.Storage, debug bool) *Mesher {
	return &Mesher{
		client:  c,
		storage: store,
		debug:   debug,
	}
}

// Generate produces a glTF binary mesh from a single input image.
func (m *Mesher) Generate(ctx context.Context, params MeshParams) (*MeshResult, error) {
	startTime := time.Now()

	model := params.Model
	if model == "" {
		model = DefaultModel
	}

	op, err := client.ThreeDEndpoint(model)
	if err != nil {
		return nil, types.OperationError{
			Code:    "invalid_parameters",
			Message: err.Error(),
		}
	}

	if err := validateMeshParams(&params, model); err != nil {
		return nil, err
	}

	form, err := buildMeshForm(&params, model)
	if err != nil {
		return nil, err
	}

	if m.debug {
		log.Printf("DEBUG: 3d generation with %s, fields %v", op.Name, form.FieldNames())
	}

	result, err := m.client.Execute(ctx, op, form)
	if err != nil {
		return nil, err
	}

	return m.saveResult(op, model, &params, result, startTime)
}

func validateMeshParams(params *MeshParams, model string) error {
	if params.ImagePath == "" {
		return types.OperationError{
			Code:    "invalid_parameters",
			Message: "image path is required",
		}
	}

	if params.TextureResolution != nil {
		switch *params.TextureResolution {
		case 512, 1024, 2048:
		default:
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "texture_resolution must be 512, 1024 or 2048",
			}
		}
	}

	switch model {
	case ModelStableFast3D:
		if params.ForegroundRatio != nil && (*params.ForegroundRatio < 0.1 || *params.ForegroundRatio > 1) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "foreground_ratio must be between 0.1 and 1 for stable-fast-3d",
			}
		}
		switch params.Remesh {
		case "", "none", "quad", "triangle":
		default:
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: fmt.Sprintf("invalid remesh algorithm: %q (none, quad, triangle)", params.Remesh),
			}
		}
	case ModelStablePointAware3D:
		if params.ForegroundRatio != nil && (*params.ForegroundRatio < 1 || *params.ForegroundRatio > 2) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "foreground_ratio must be between 1 and 2 for stable-point-aware-3d",
			}
		}
		switch params.TargetType {
		case "", "none", "vertex", "face":
		default:
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: fmt.Sprintf("invalid target type: %q (none, vertex, face)", params.TargetType),
			}
		}
		if params.TargetCount != nil && (*params.TargetCount < 100 || *params.TargetCount > 20000) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "target_count must be between 100 and 20000",
			}
		}
		if params.GuidanceScale != nil && (*params.GuidanceScale < 1 || *params.GuidanceScale > 10) {
			return types.OperationError{
				Code:    "invalid_parameters",
				Message: "guidance_scale must be between 1 and 10",
			}
		}
	}

	return nil
}

func buildMeshForm(params *MeshParams, model string) (*client.Form, error) {
	form := client.NewForm()

	if err := form.SetFile("image", params.ImagePath); err != nil {
		return nil, err
	}

	if params.TextureResolution != nil {
		form.SetInt("texture_resolution", *params.TextureResolution)
	}
	if params.ForegroundRatio != nil {
		form.SetFloat("foreground_ratio", *params.ForegroundRatio)
	}

	switch model {
	case ModelStableFast3D:
		if params.Remesh != "" {
			form.SetField("remesh", params.Remesh)
		}
	case ModelStablePointAware3D:
		if params.TargetType != "" {
			form.SetField("target_type", params.TargetType)
		}
		if params.TargetCount != nil {
			form.SetInt("target_count", *params.TargetCount)
		}
		if params.GuidanceScale != nil {
			form.SetInt("guidance_scale", *params.GuidanceScale)
		}
	}

	return form, nil
}

func (m *Mesher) saveResult(op client.Operation, model string, params *MeshParams, result *types.Result, startTime time.Time) (*MeshResult, error) {
	id, err := m.storage.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	// 3D endpoints always answer with glTF binary regardless of the
	// content-type substring matching used for images.
	format := types.FormatGLB

	filename := storage.DeriveFilename(params.Filename, model, "mesh", format)
	artifactPath, err := m.storage.SaveArtifact(id, result.Data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save mesh: %w", err)
	}

	elapsed := time.Since(startTime).Seconds()
	metadata := &types.ArtifactMetadata{
		ID:        id,
		Operation: "generate_3d_model",
		Timestamp: time.Now(),
		Endpoint:  op.Name,
		Parameters: map[string]interface{}{
			"model": model,
			"image": params.ImagePath,
		},
		Result: &types.ArtifactResult{
			Filename:       filename,
			Format:         string(format),
			GenerationTime: elapsed,
			FileSize:       int64(len(result.Data)),
		},
	}
	if err := m.storage.SaveMetadata(id, metadata); err != nil && m.debug {
		log.Printf("DEBUG: failed to save metadata: %v", err)
	}

	return &MeshResult{
		ID:             id,
		FilePath:       artifactPath,
		Model:          model,
		Format:         format,
		GenerationTime: elapsed,
		FileSize:       int64(len(result.Data)),
	}, nil
}
