package types

import (
	"time"
)

// OutputFormat identifies the binary format of a completed operation.
type OutputFormat string

const (
	FormatPNG  OutputFormat = "png"
	FormatJPEG OutputFormat = "jpeg"
	FormatWEBP OutputFormat = "webp"
	FormatGLB  OutputFormat = "glb"
)

// DefaultOutputFormat is applied whenever the caller does not request a format.
const DefaultOutputFormat = FormatPNG

// Result is the uniform value returned by every completed operation:
// the raw binary payload plus the format it arrived in and any
// best-effort metadata the API carried in response headers.
type Result struct {
	Data         []byte
	Format       OutputFormat
	Seed         *int64
	FinishReason string
}

// SubmitResponse is the JSON body returned by an asynchronous
// job-submission endpoint.
type SubmitResponse struct {
	ID string `json:"id"`
}

// BalanceResponse is the JSON body returned by the balance endpoint.
type BalanceResponse struct {
	Credits float64 `json:"credits"`
}

// OperationError is a structured error raised before or during an
// operation, carrying a machine-readable code for the response layer.
type OperationError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e OperationError) Error() string {
	return e.Message
}

// ArtifactMetadata is the metadata sidecar stored next to each saved artifact
type ArtifactMetadata struct {
	Version    string                 `yaml:"version"`
	ID         string                 `yaml:"id"`
	Operation  string                 `yaml:"operation"`
	Timestamp  time.Time              `yaml:"timestamp"`
	Endpoint   string                 `yaml:"endpoint"`
	Parameters map[string]interface{} `yaml:"parameters"`
	Result     *ArtifactResult        `yaml:"result,omitempty"`
	Error      *string                `yaml:"error,omitempty"`
}

// ArtifactResult records what a completed operation produced.
type ArtifactResult struct {
	Filename       string  `yaml:"filename"`
	Format         string  `yaml:"format"`
	GenerationTime float64 `yaml:"generation_time"`
	Seed           *int64  `yaml:"seed,omitempty"`
	FinishReason   string  `yaml:"finish_reason,omitempty"`
	FileSize       int64   `yaml:"file_size,omitempty"`
}

// ArtifactInfo describes one stored artifact for listing tools.
type ArtifactInfo struct {
	ID        string                 `json:"id"`
	Operation string                 `json:"operation"`
	Timestamp time.Time              `json:"timestamp"`
	FilePath  string                 `json:"file_path"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
