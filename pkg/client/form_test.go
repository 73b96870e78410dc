package client

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

// TestForm_OptionalFieldsAbsent tests that unset fields never reach the
// wire body
func TestForm_OptionalFieldsAbsent(t *testing.T) {
	form := NewForm()
	form.SetField("prompt", "a test prompt")

	if form.HasField("negative_prompt") {
		t.Error("expected negative_prompt to be absent")
	}
	if form.HasField("seed") {
		t.Error("expected seed to be absent")
	}

	fields := readParts(t, form)
	if len(fields) != 1 {
		t.Fatalf("expected 1 part in encoded body, got %d", len(fields))
	}
	if fields["prompt"] != "a test prompt" {
		t.Errorf("unexpected prompt value: %q", fields["prompt"])
	}
}

func TestForm_NumericEncoding(t *testing.T) {
	form := NewForm()
	form.SetInt("seed", 4294967294)
	form.SetFloat("strength", 0.75)
	form.SetFloat("creativity", 0.3)

	fields := readParts(t, form)
	if fields["seed"] != "4294967294" {
		t.Errorf("unexpected seed encoding: %q", fields["seed"])
	}
	if fields["strength"] != "0.75" {
		t.Errorf("unexpected strength encoding: %q", fields["strength"])
	}
	if fields["creativity"] != "0.3" {
		t.Errorf("unexpected creativity encoding: %q", fields["creativity"])
	}
}

// TestForm_SetFile tests that file parts carry the payload and that a
// missing file fails before anything is sent
func TestForm_SetFile(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "input.png")
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x01, 0x02, 0x03}
	if err := os.WriteFile(imagePath, payload, 0644); err != nil {
		t.Fatal(err)
	}

	form := NewForm()
	if err := form.SetFile("image", imagePath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !form.HasField("image") {
		t.Error("expected image part to be present")
	}
	if files := form.FileNames(); len(files) != 1 || files[0] != "image" {
		t.Errorf("unexpected file names: %v", files)
	}
}

func TestForm_SetFile_Missing(t *testing.T) {
	form := NewForm()
	err := form.SetFile("image", "/nonexistent/image.png")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}

	var opErr types.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T", err)
	}
	if opErr.Code != "file_not_found" {
		t.Errorf("expected code file_not_found, got %q", opErr.Code)
	}
	if opErr.Details["file_path"] == "" {
		t.Error("expected file_path detail to be set")
	}
}

// TestContentTypeForFile tests MIME inference from the file extension
func TestContentTypeForFile(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":   "image/jpeg",
		"photo.jpeg":  "image/jpeg",
		"PHOTO.JPG":   "image/jpeg",
		"sketch.png":  "image/png",
		"anim.webp":   "image/webp",
		"mystery.bin": "image/png",
		"noext":       "image/png",
	}
	for path, want := range cases {
		if got := ContentTypeForFile(path); got != want {
			t.Errorf("ContentTypeForFile(%q) = %q, want %q", path, got, want)
		}
	}
}

// readParts decodes an encoded form back into a name->value map using
// the boundary from the returned content type.
func readParts(t *testing.T, form *Form) map[string]string {
	t.Helper()

	body, contentType, err := form.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("bad content type %q: %v", contentType, err)
	}

	fields := make(map[string]string)
	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading part: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("reading part body: %v", err)
		}
		fields[part.FormName()] = string(data)
	}
	return fields
}
