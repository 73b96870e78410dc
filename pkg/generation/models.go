package generation

// Generation model variants. The three SD3.5 variants share the sd3
// endpoint and are selected with a model form field; ultra and core
// each have their own endpoint.
const (
	ModelUltra          = "ultra"
	ModelCore           = "core"
	ModelSD35Large      = "sd3.5-large"
	ModelSD35LargeTurbo = "sd3.5-large-turbo"
	ModelSD35Medium     = "sd3.5-medium"
)

// DefaultModel is used when the caller does not pick one.
const DefaultModel = ModelCore

// ModelInfo contains information about a generation model
type ModelInfo struct {
	ID          string
	Name        string
	Description string
	Features    []string
}

// GetModelInfo returns information about a generation model
func GetModelInfo(model string) ModelInfo {
	models := map[string]ModelInfo{
		ModelUltra: {
			ID:          ModelUltra,
			Name:        "Stable Image Ultra",
			Description: "Highest quality generation, photorealism and typography",
			Features:    []string{"highest-quality", "image-to-image", "typography"},
		},
		ModelCore: {
			ID:          ModelCore,
			Name:        "Stable Image Core",
			Description: "Fast, affordable generation for everyday use",
			Features:    []string{"fast", "affordable", "style-presets"},
		},
		ModelSD35Large: {
			ID:          ModelSD35Large,
			Name:        "Stable Diffusion 3.5 Large",
			Description: "8B parameter model with strong prompt adherence",
			Features:    []string{"prompt-adherence", "image-to-image", "high-resolution"},
		},
		ModelSD35LargeTurbo: {
			ID:          ModelSD35LargeTurbo,
			Name:        "Stable Diffusion 3.5 Large Turbo",
			Description: "Distilled SD3.5 Large for 4-step generation",
			Features:    []string{"ultra-fast", "4-step", "image-to-image"},
		},
		ModelSD35Medium: {
			ID:          ModelSD35Medium,
			Name:        "Stable Diffusion 3.5 Medium",
			Description: "2.5B parameter model balancing quality and speed",
			Features:    []string{"balanced", "efficient", "image-to-image"},
		},
	}

	if info, ok := models[model]; ok {
		return info
	}

	return ModelInfo{
		ID:   model,
		Name: "Unknown Model",
	}
}

// ResolveModelAlias maps common aliases onto canonical variant names.
// Unknown names pass through unchanged so the endpoint registry can
// reject them before any network call.
func ResolveModelAlias(alias string) string {
	switch alias {
	case "":
		return DefaultModel
	case "sd3", "sd3.5", "large":
		return ModelSD35Large
	case "turbo", "large-turbo":
		return ModelSD35LargeTurbo
	case "medium":
		return ModelSD35Medium
	default:
		return alias
	}
}

// IsSD3Model reports whether the variant rides the shared sd3 endpoint
// and therefore needs model and mode form fields.
func IsSD3Model(model string) bool {
	switch model {
	case ModelSD35Large, ModelSD35LargeTurbo, ModelSD35Medium:
		return true
	default:
		return false
	}
}

// AspectRatios supported by the generation endpoints.
var AspectRatios = map[string]bool{
	"16:9": true, "1:1": true, "21:9": true, "2:3": true, "3:2": true,
	"4:5": true, "5:4": true, "9:16": true, "9:21": true,
}

// StylePresets supported by the generation endpoints.
var StylePresets = map[string]bool{
	"3d-model": true, "analog-film": true, "anime": true, "cinematic": true,
	"comic-book": true, "digital-art": true, "enhance": true, "fantasy-art": true,
	"isometric": true, "line-art": true, "low-poly": true, "modeling-compound": true,
	"neon-punk": true, "origami": true, "photographic": true, "pixel-art": true,
	"tile-texture": true,
}
