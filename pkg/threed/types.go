package threed

import "github.com/gomcpgo/stability_image_ai/pkg/types"

// 3D generation model variants.
const (
	ModelStableFast3D       = "stable-fast-3d"
	ModelStablePointAware3D = "stable-point-aware-3d"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = ModelStableFast3D

// MeshParams contains parameters for 3D mesh generation from a single
// image. Which knobs apply depends on the model: stable-fast-3d takes a
// remesh algorithm, stable-point-aware-3d takes target/guidance knobs.
type MeshParams struct {
	Model     string
	ImagePath string

	TextureResolution *int64   // 512, 1024 or 2048
	ForegroundRatio   *float64 // fast-3d: [0.1,1]; point-aware: [1,2]
	Remesh            string   // fast-3d: none, quad, triangle
	TargetType        string   // point-aware: none, vertex, face
	TargetCount       *int64   // point-aware: [100,20000]
	GuidanceScale     *int64   // point-aware: [1,10]

	Filename string // Optional filename hint
}

// MeshResult contains the result of a 3D generation
type MeshResult struct {
	ID             string
	FilePath       string
	Model          string
	Format         types.OutputFormat
	GenerationTime float64
	FileSize       int64
}
