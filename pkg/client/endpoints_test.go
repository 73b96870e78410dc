package client

import (
	"testing"
)

// TestGenerationEndpoint_SharedSD3Path tests that all SD3.5 variants
// resolve to the shared sd3 path
func TestGenerationEndpoint_SharedSD3Path(t *testing.T) {
	for _, model := range []string{"sd3.5-large", "sd3.5-large-turbo", "sd3.5-medium"} {
		op, err := GenerationEndpoint(model)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", model, err)
		}
		if op.Path != GenerateSD3Path {
			t.Errorf("expected %s for %s, got %s", GenerateSD3Path, model, op.Path)
		}
		if op.Async {
			t.Errorf("generation endpoints are synchronous, %s marked async", model)
		}
	}
}

func TestGenerationEndpoint_DedicatedPaths(t *testing.T) {
	cases := map[string]string{
		"ultra": GenerateUltraPath,
		"core":  GenerateCorePath,
	}
	for model, want := range cases {
		op, err := GenerationEndpoint(model)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", model, err)
		}
		if op.Path != want {
			t.Errorf("expected %s for %s, got %s", want, model, op.Path)
		}
	}
}

// TestGenerationEndpoint_Unknown tests that unknown variants are
// rejected before any request could be built
func TestGenerationEndpoint_Unknown(t *testing.T) {
	if _, err := GenerationEndpoint("dall-e-3"); err == nil {
		t.Error("expected error for unknown model, got nil")
	}
	if _, err := GenerationEndpoint(""); err == nil {
		t.Error("expected error for empty model, got nil")
	}
}

func TestEditEndpoint(t *testing.T) {
	op, err := EditEndpoint("search-and-replace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Path != "/v2beta/stable-image/edit/search-and-replace" {
		t.Errorf("unexpected path: %s", op.Path)
	}

	if _, err := EditEndpoint("upscale"); err == nil {
		t.Error("expected error for non-edit operation, got nil")
	}
}

// TestUpscaleEndpoint_CreativeIsAsync tests that creative upscaling is
// the only asynchronous operation
func TestUpscaleEndpoint_CreativeIsAsync(t *testing.T) {
	for _, mode := range []string{"fast", "conservative"} {
		op, err := UpscaleEndpoint(mode)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", mode, err)
		}
		if op.Async {
			t.Errorf("%s upscaling should be synchronous", mode)
		}
	}

	op, err := UpscaleEndpoint("creative")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !op.Async {
		t.Error("creative upscaling should be asynchronous")
	}
}

func TestControlEndpoint(t *testing.T) {
	op, err := ControlEndpoint("style-transfer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Path != "/v2beta/stable-image/control/style-transfer" {
		t.Errorf("unexpected path: %s", op.Path)
	}

	if _, err := ControlEndpoint("pose"); err == nil {
		t.Error("expected error for unknown control operation, got nil")
	}
}

func TestThreeDEndpoint(t *testing.T) {
	op, err := ThreeDEndpoint("stable-fast-3d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Path != "/v2beta/3d/stable-fast-3d" {
		t.Errorf("unexpected path: %s", op.Path)
	}

	if _, err := ThreeDEndpoint("stable-zero123"); err == nil {
		t.Error("expected error for unknown 3d model, got nil")
	}
}
