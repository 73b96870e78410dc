package handler

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gomcpgo/mcp/pkg/protocol"
	"github.com/gomcpgo/stability_image_ai/pkg/client"
	"github.com/gomcpgo/stability_image_ai/pkg/control"
	"github.com/gomcpgo/stability_image_ai/pkg/editing"
	"github.com/gomcpgo/stability_image_ai/pkg/generation"
	"github.com/gomcpgo/stability_image_ai/pkg/storage"
	"github.com/gomcpgo/stability_image_ai/pkg/threed"
	"github.com/gomcpgo/stability_image_ai/pkg/upscaling"
)

func newTestHandler(t *testing.T) (*StabilityImageHandler, *client.MockClient) {
	t.Helper()

	mock := client.NewMockClient()
	imageStore := storage.NewStorage(t.TempDir())
	meshStore := storage.NewStorage(t.TempDir())

	h := &StabilityImageHandler{
		generator:  generation.NewGenerator(mock, imageStore, false),
		editor:     editing.NewEditor(mock, imageStore, false),
		upscaler:   upscaling.NewUpscaler(mock, imageStore, false),
		controller: control.NewController(mock, imageStore, false),
		mesher:     threed.NewMesher(mock, meshStore, false),
		imageStore: imageStore,
		client:     mock,
		debug:      false,
	}
	return h, mock
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.png")
	if err := os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func callTool(t *testing.T, h *StabilityImageHandler, name string, args map[string]interface{}) map[string]interface{} {
	t.Helper()

	resp, err := h.CallTool(context.Background(), &protocol.CallToolRequest{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s) failed: %v", name, err)
	}
	if len(resp.Content) == 0 {
		t.Fatalf("expected content in %s response", name)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Content[0].Text), &data); err != nil {
		t.Fatalf("failed to parse %s response: %v\n%s", name, err, resp.Content[0].Text)
	}
	return data
}

// TestCallTool_UnknownTool tests that unrecognized tool names are a
// protocol error, not a tool response
func TestCallTool_UnknownTool(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.CallTool(context.Background(), &protocol.CallToolRequest{
		Name:      "make_video",
		Arguments: map[string]interface{}{},
	})
	if err == nil {
		t.Fatal("expected error for unknown tool, got nil")
	}
}

// TestCallTool_GenerateImage tests the happy path end to end: tool call
// to saved artifact
func TestCallTool_GenerateImage(t *testing.T) {
	h, mock := newTestHandler(t)

	data := callTool(t, h, "generate_image", map[string]interface{}{
		"prompt": "a red barn",
		"model":  "ultra",
	})

	if data["success"] != true {
		t.Fatalf("expected success, got: %v", data)
	}
	if len(mock.ExecuteCalls) != 1 {
		t.Errorf("expected 1 dispatched operation, got %d", len(mock.ExecuteCalls))
	}

	paths, _ := data["paths"].(map[string]interface{})
	filePath, _ := paths["file_path"].(string)
	if filePath == "" {
		t.Fatal("expected file_path in response")
	}
	if _, err := os.Stat(filePath); err != nil {
		t.Errorf("expected artifact on disk: %v", err)
	}
}

// TestCallTool_MissingRequiredArg tests that a missing required
// argument yields a structured error without any dispatch
func TestCallTool_MissingRequiredArg(t *testing.T) {
	h, mock := newTestHandler(t)

	cases := []struct {
		tool string
		args map[string]interface{}
	}{
		{"generate_image", map[string]interface{}{}},
		{"erase_object", map[string]interface{}{}},
		{"upscale_image", map[string]interface{}{}},
		{"control_sketch", map[string]interface{}{"prompt": "x"}},
		{"generate_3d_model", map[string]interface{}{}},
	}

	for _, tc := range cases {
		data := callTool(t, h, tc.tool, tc.args)
		if data["success"] != false {
			t.Errorf("%s: expected failure response, got: %v", tc.tool, data)
		}
	}

	if len(mock.ExecuteCalls) != 0 {
		t.Errorf("expected no dispatched operations, got %d", len(mock.ExecuteCalls))
	}
}

// TestCallTool_ErrorClassification tests that client failures map onto
// their response categories
func TestCallTool_ErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"auth", &client.APIError{StatusCode: 401, Body: "bad key"}, "authentication_error"},
		{"credits", &client.APIError{StatusCode: 402, Body: "empty"}, "insufficient_credits"},
		{"rate limit", &client.APIError{StatusCode: 429, Body: "slow down"}, "rate_limited"},
		{"upstream", &client.APIError{StatusCode: 500, Body: "boom"}, "api_error"},
		{"poll ceiling", &client.PollTimeoutError{JobID: "job-1", Attempts: 60}, "poll_timeout"},
		{"plain", errors.New("something broke"), "operation_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock := newTestHandler(t)
			mock.Err = tc.err

			data := callTool(t, h, "generate_image", map[string]interface{}{
				"prompt": "a red barn",
			})
			if data["success"] != false {
				t.Fatalf("expected failure response, got: %v", data)
			}

			errData, _ := data["error"].(map[string]interface{})
			if errData["type"] != tc.want {
				t.Errorf("expected error type %q, got %v", tc.want, errData["type"])
			}
			if errData["suggestion"] == "" {
				t.Error("expected a suggestion in the error response")
			}
		})
	}
}

func TestCallTool_EditDispatch(t *testing.T) {
	h, mock := newTestHandler(t)

	data := callTool(t, h, "search_and_replace", map[string]interface{}{
		"image_path":    writeTestImage(t),
		"prompt":        "a golden retriever",
		"search_prompt": "the cat",
	})
	if data["success"] != true {
		t.Fatalf("expected success, got: %v", data)
	}

	call := mock.LastCall()
	if call.Op.Path != "/v2beta/stable-image/edit/search-and-replace" {
		t.Errorf("unexpected path: %s", call.Op.Path)
	}
}

func TestCallTool_GetBalance(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.Credits = 42.5

	data := callTool(t, h, "get_balance", map[string]interface{}{})
	if data["success"] != true {
		t.Fatalf("expected success, got: %v", data)
	}
	if data["credits"] != 42.5 {
		t.Errorf("expected 42.5 credits, got %v", data["credits"])
	}
	if mock.BalanceCalls != 1 {
		t.Errorf("expected 1 balance call, got %d", mock.BalanceCalls)
	}
}

// TestCallTool_ListImages tests that stored artifacts show up in the
// listing after generation
func TestCallTool_ListImages(t *testing.T) {
	h, _ := newTestHandler(t)

	callTool(t, h, "generate_image", map[string]interface{}{"prompt": "first"})
	callTool(t, h, "generate_image", map[string]interface{}{"prompt": "second"})

	data := callTool(t, h, "list_images", map[string]interface{}{})
	if data["success"] != true {
		t.Fatalf("expected success, got: %v", data)
	}

	images, _ := data["images"].([]interface{})
	if len(images) != 2 {
		t.Errorf("expected 2 stored images, got %d", len(images))
	}
}

// TestListTools verifies the advertised tool surface and that every
// schema is valid JSON
func TestListTools(t *testing.T) {
	h, _ := newTestHandler(t)

	resp, err := h.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}

	want := map[string]bool{
		"generate_image":                 false,
		"erase_object":                   false,
		"inpaint_image":                  false,
		"outpaint_image":                 false,
		"search_and_replace":             false,
		"search_and_recolor":             false,
		"remove_background":              false,
		"replace_background_and_relight": false,
		"upscale_image":                  false,
		"control_sketch":                 false,
		"control_structure":              false,
		"control_style":                  false,
		"control_style_transfer":         false,
		"generate_3d_model":              false,
		"get_balance":                    false,
		"list_images":                    false,
	}

	for _, tool := range resp.Tools {
		if _, ok := want[tool.Name]; !ok {
			t.Errorf("unexpected tool: %s", tool.Name)
			continue
		}
		want[tool.Name] = true

		var schema map[string]interface{}
		if err := json.Unmarshal(tool.InputSchema, &schema); err != nil {
			t.Errorf("tool %s has invalid schema: %v", tool.Name, err)
		}
	}

	for name, seen := range want {
		if !seen {
			t.Errorf("tool %s not advertised", name)
		}
	}
}
