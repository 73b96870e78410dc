package control

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gomcpgo/stability_image_ai/pkg/client"
	"github.com/gomcpgo/stability_image_ai/pkg/storage"
	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

func newTestController(t *testing.T) (*Controller, *client.MockClient) {
	t.Helper()
	mock := client.NewMockClient()
	store := storage.NewStorage(t.TempDir())
	return NewController(mock, store, false), mock
}

func writeTestImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestControl_Sketch tests the sketch field set: image part, prompt and
// the control_strength knob
func TestControl_Sketch(t *testing.T) {
	controller, mock := newTestController(t)

	strength := 0.7
	result, err := controller.Generate(context.Background(), ControlParams{
		Operation:       OpSketch,
		ImagePath:       writeTestImage(t, "sketch.png"),
		Prompt:          "a medieval castle",
		ControlStrength: &strength,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := mock.LastCall()
	if call.Op.Path != "/v2beta/stable-image/control/sketch" {
		t.Errorf("unexpected path: %s", call.Op.Path)
	}
	if !call.Form.HasField("image") {
		t.Error("expected image part")
	}
	if got, _ := call.Form.Field("control_strength"); got != "0.7" {
		t.Errorf("unexpected control_strength: %q", got)
	}

	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("expected artifact on disk: %v", err)
	}
}

func TestControl_StyleUsesFidelity(t *testing.T) {
	controller, mock := newTestController(t)

	fidelity := 0.9
	_, err := controller.Generate(context.Background(), ControlParams{
		Operation: OpStyle,
		ImagePath: writeTestImage(t, "ref.png"),
		Prompt:    "a city street",
		Fidelity:  &fidelity,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := mock.LastCall()
	if got, _ := call.Form.Field("fidelity"); got != "0.9" {
		t.Errorf("unexpected fidelity: %q", got)
	}
	if call.Form.HasField("control_strength") {
		t.Error("style must not send control_strength")
	}
}

// TestControl_StyleTransfer tests the two-image field set and that no
// prompt is required
func TestControl_StyleTransfer(t *testing.T) {
	controller, mock := newTestController(t)

	styleStrength := 0.8
	_, err := controller.Generate(context.Background(), ControlParams{
		Operation:      OpStyleTransfer,
		ImagePath:      writeTestImage(t, "content.png"),
		StyleImagePath: writeTestImage(t, "style.png"),
		StyleStrength:  &styleStrength,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := mock.LastCall()
	files := call.Form.FileNames()
	if len(files) != 2 || files[0] != "init_image" || files[1] != "style_image" {
		t.Errorf("unexpected file parts: %v", files)
	}
	if call.Form.HasField("prompt") {
		t.Error("style-transfer sends no prompt when none was given")
	}
	if got, _ := call.Form.Field("style_strength"); got != "0.8" {
		t.Errorf("unexpected style_strength: %q", got)
	}
}

// TestControl_ValidationBeforeDispatch tests per-operation requirements
// with zero network calls
func TestControl_ValidationBeforeDispatch(t *testing.T) {
	badKnob := 1.2

	cases := []struct {
		name   string
		params ControlParams
	}{
		{"missing image", ControlParams{Operation: OpSketch, Prompt: "x"}},
		{"unknown operation", ControlParams{Operation: "depth", ImagePath: "in.png", Prompt: "x"}},
		{"sketch without prompt", ControlParams{Operation: OpSketch, ImagePath: "in.png"}},
		{"structure without prompt", ControlParams{Operation: OpStructure, ImagePath: "in.png"}},
		{"style without prompt", ControlParams{Operation: OpStyle, ImagePath: "in.png"}},
		{"style-transfer without style image", ControlParams{Operation: OpStyleTransfer, ImagePath: "in.png"}},
		{"control strength out of range", ControlParams{Operation: OpSketch, ImagePath: "in.png", Prompt: "x", ControlStrength: &badKnob}},
		{"fidelity out of range", ControlParams{Operation: OpStyle, ImagePath: "in.png", Prompt: "x", Fidelity: &badKnob}},
		{"bad output format", ControlParams{Operation: OpSketch, ImagePath: "in.png", Prompt: "x", OutputFormat: "heic"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			controller, mock := newTestController(t)

			_, err := controller.Generate(context.Background(), tc.params)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			opErr, ok := err.(types.OperationError)
			if !ok {
				t.Fatalf("expected OperationError, got %T: %v", err, err)
			}
			if opErr.Code != "invalid_parameters" {
				t.Errorf("expected code invalid_parameters, got %q", opErr.Code)
			}
			if len(mock.ExecuteCalls) != 0 {
				t.Errorf("expected no dispatched operations, got %d", len(mock.ExecuteCalls))
			}
		})
	}
}
