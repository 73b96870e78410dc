package client

import (
	"fmt"
)

// Upstream paths for the Stability AI v2beta API
const (
	GenerateUltraPath = "/v2beta/stable-image/generate/ultra"
	GenerateCorePath  = "/v2beta/stable-image/generate/core"
	GenerateSD3Path   = "/v2beta/stable-image/generate/sd3"

	EditBasePath    = "/v2beta/stable-image/edit"
	UpscaleBasePath = "/v2beta/stable-image/upscale"
	ControlBasePath = "/v2beta/stable-image/control"
	ThreeDBasePath  = "/v2beta/3d"

	ResultsPath = "/v2beta/results"
	BalancePath = "/v1/user/balance"
)

// Operation identifies one resolved upstream capability: the logical
// name used in logs and metadata, the upstream path, and whether the
// endpoint answers synchronously with binary content or hands back a
// job id to be polled.
type Operation struct {
	Name  string
	Path  string
	Async bool
}

// GenerationEndpoint resolves a generation model variant to its upstream
// path. The three SD3.5 variants share the sd3 path and are told apart
// by a model form field, which the request builder attaches.
func GenerationEndpoint(model string) (Operation, error) {
	switch model {
	case "ultra":
		return Operation{Name: "generate/ultra", Path: GenerateUltraPath}, nil
	case "core":
		return Operation{Name: "generate/core", Path: GenerateCorePath}, nil
	case "sd3.5-large", "sd3.5-large-turbo", "sd3.5-medium":
		return Operation{Name: "generate/sd3", Path: GenerateSD3Path}, nil
	default:
		return Operation{}, fmt.Errorf("unknown generation model: %q", model)
	}
}

// EditEndpoint resolves an edit operation to its upstream path.
func EditEndpoint(op string) (Operation, error) {
	switch op {
	case "erase", "inpaint", "outpaint",
		"search-and-replace", "search-and-recolor",
		"remove-background", "replace-background-and-relight":
		return Operation{Name: "edit/" + op, Path: EditBasePath + "/" + op}, nil
	default:
		return Operation{}, fmt.Errorf("unknown edit operation: %q", op)
	}
}

// UpscaleEndpoint resolves an upscale mode to its upstream path.
// The creative mode is the one asynchronous operation in the API:
// it returns a job id instead of a binary body.
func UpscaleEndpoint(mode string) (Operation, error) {
	switch mode {
	case "fast", "conservative":
		return Operation{Name: "upscale/" + mode, Path: UpscaleBasePath + "/" + mode}, nil
	case "creative":
		return Operation{Name: "upscale/creative", Path: UpscaleBasePath + "/creative", Async: true}, nil
	default:
		return Operation{}, fmt.Errorf("unknown upscale mode: %q", mode)
	}
}

// ControlEndpoint resolves a control-guided generation operation to its
// upstream path.
func ControlEndpoint(op string) (Operation, error) {
	switch op {
	case "sketch", "structure", "style", "style-transfer":
		return Operation{Name: "control/" + op, Path: ControlBasePath + "/" + op}, nil
	default:
		return Operation{}, fmt.Errorf("unknown control operation: %q", op)
	}
}

// ThreeDEndpoint resolves a 3D model variant to its upstream path.
func ThreeDEndpoint(model string) (Operation, error) {
	switch model {
	case "stable-fast-3d", "stable-point-aware-3d":
		return Operation{Name: "3d/" + model, Path: ThreeDBasePath + "/" + model}, nil
	default:
		return Operation{}, fmt.Errorf("unknown 3d model: %q", model)
	}
}
