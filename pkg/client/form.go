package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gomcpgo/stability_image_ai/pkg/types"
)

// Form is an ordered multipart request body under construction.
// Text fields are appended only when the caller actually supplies a
// value; "unset" means the part is absent from the wire request, not
// an empty string. File parts are read fully into memory when added,
// so a missing file fails before any request is sent.
type Form struct {
	parts []formPart
}

type formPart struct {
	name        string
	value       string
	data        []byte
	filename    string
	contentType string
	isFile      bool
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// SetField appends a text field.
func (f *Form) SetField(name, value string) {
	f.parts = append(f.parts, formPart{name: name, value: value})
}

// SetInt appends an integer field in decimal form.
func (f *Form) SetInt(name string, value int64) {
	f.SetField(name, strconv.FormatInt(value, 10))
}

// SetFloat appends a floating-point field in decimal form.
func (f *Form) SetFloat(name string, value float64) {
	f.SetField(name, strconv.FormatFloat(value, 'f', -1, 64))
}

// SetFile reads the file at path into memory and appends it as a binary
// part with a content type inferred from the file extension. The error
// carries the resolved absolute path so the caller sees exactly which
// file was looked for.
func (f *Form) SetFile(name, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return types.OperationError{
			Code:    "file_not_found",
			Message: fmt.Sprintf("failed to read file for %q: %v", name, err),
			Details: map[string]interface{}{
				"file_path": absPath,
			},
		}
	}

	f.parts = append(f.parts, formPart{
		name:        name,
		data:        data,
		filename:    filepath.Base(absPath),
		contentType: ContentTypeForFile(absPath),
		isFile:      true,
	})
	return nil
}

// Field returns the value of a text field and whether it is present.
func (f *Form) Field(name string) (string, bool) {
	for _, p := range f.parts {
		if p.name == name && !p.isFile {
			return p.value, true
		}
	}
	return "", false
}

// HasField reports whether any part (text or file) with the name exists.
func (f *Form) HasField(name string) bool {
	for _, p := range f.parts {
		if p.name == name {
			return true
		}
	}
	return false
}

// FieldNames returns the names of all parts in insertion order.
func (f *Form) FieldNames() []string {
	names := make([]string, 0, len(f.parts))
	for _, p := range f.parts {
		names = append(names, p.name)
	}
	return names
}

// FileNames returns the names of the binary parts in insertion order.
func (f *Form) FileNames() []string {
	var names []string
	for _, p := range f.parts {
		if p.isFile {
			names = append(names, p.name)
		}
	}
	return names
}

// Encode serializes the form into a multipart body and returns the body
// bytes together with the Content-Type header value carrying the boundary.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if p.isFile {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, p.name, p.filename))
			header.Set("Content-Type", p.contentType)
			part, err := writer.CreatePart(header)
			if err != nil {
				return nil, "", fmt.Errorf("failed to create file part %q: %w", p.name, err)
			}
			if _, err := part.Write(p.data); err != nil {
				return nil, "", fmt.Errorf("failed to write file part %q: %w", p.name, err)
			}
			continue
		}
		if err := writer.WriteField(p.name, p.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", p.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// ContentTypeForFile infers a MIME type from the file extension.
// Unrecognized extensions fall back to image/png.
func ContentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
