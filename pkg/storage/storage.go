package storage

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomcpgo/stability_image_ai/pkg/types"
	"gopkg.in/yaml.v3"
)

// Storage handles local file storage for generated artifacts.
// Each operation gets its own ID directory holding the binary payload
// and a metadata.yaml sidecar.
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance
func NewStorage(rootPath string) *Storage {
	return &Storage{
		rootPath: rootPath,
	}
}

// Root returns the storage root path.
func (s *Storage) Root() string {
	return s.rootPath
}

// GenerateID generates a unique 8-character alphanumeric ID and creates
// its directory.
func (s *Storage) GenerateID() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	const idLength = 8
	maxRetries := 100

	for i := 0; i < maxRetries; i++ {
		b := make([]byte, idLength)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		id := make([]byte, idLength)
		for j := 0; j < idLength; j++ {
			id[j] = charset[b[j]%byte(len(charset))]
		}

		idStr := string(id)

		idPath := filepath.Join(s.rootPath, idStr)
		if _, err := os.Stat(idPath); os.IsNotExist(err) {
			if err := os.MkdirAll(idPath, 0755); err != nil {
				return "", fmt.Errorf("failed to create directory: %w", err)
			}
			return idStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique ID after %d attempts", maxRetries)
}

// SaveArtifact writes the binary payload of a completed operation and
// returns the full path it was saved to.
func (s *Storage) SaveArtifact(id string, data []byte, filename string) (string, error) {
	if filename == "" {
		filename = "artifact.png"
	}

	artifactPath := filepath.Join(s.rootPath, id, filename)
	if err := os.WriteFile(artifactPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save artifact: %w", err)
	}

	return artifactPath, nil
}

// SaveMetadata saves the metadata sidecar for an operation
func (s *Storage) SaveMetadata(id string, metadata *types.ArtifactMetadata) error {
	metadataPath := filepath.Join(s.rootPath, id, "metadata.yaml")

	if metadata.Version == "" {
		metadata.Version = "1.0"
	}
	if metadata.Timestamp.IsZero() {
		metadata.Timestamp = time.Now()
	}

	data, err := yaml.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return nil
}

// LoadMetadata loads the metadata sidecar for an operation
func (s *Storage) LoadMetadata(id string) (*types.ArtifactMetadata, error) {
	metadataPath := filepath.Join(s.rootPath, id, "metadata.yaml")

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata types.ArtifactMetadata
	if err := yaml.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return &metadata, nil
}

// ListArtifacts lists all stored artifacts
func (s *Storage) ListArtifacts() ([]types.ArtifactInfo, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.ArtifactInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var artifacts []types.ArtifactInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		id := entry.Name()
		metadata, err := s.LoadMetadata(id)
		if err != nil {
			// Skip entries without valid metadata
			continue
		}

		artifactPath := ""
		if metadata.Result != nil && metadata.Result.Filename != "" {
			artifactPath = filepath.Join(s.rootPath, id, metadata.Result.Filename)
		}

		artifacts = append(artifacts, types.ArtifactInfo{
			ID:        id,
			Operation: metadata.Operation,
			Timestamp: metadata.Timestamp,
			FilePath:  artifactPath,
			Metadata:  metadata.Parameters,
		})
	}

	return artifacts, nil
}

// GetArtifactPath returns the full path to a stored artifact
func (s *Storage) GetArtifactPath(id string, filename string) string {
	return filepath.Join(s.rootPath, id, filename)
}

// DeriveFilename picks the output filename: the caller's name when
// given (extension appended if missing), otherwise a slug derived from
// the hint text plus the operation suffix.
func DeriveFilename(userFilename, hint, suffix string, format types.OutputFormat) string {
	ext := "." + string(format)

	if userFilename != "" {
		if !strings.Contains(userFilename, ".") {
			userFilename += ext
		}
		return userFilename
	}

	clean := strings.ToLower(hint)
	clean = strings.ReplaceAll(clean, " ", "_")

	var result []rune
	for _, r := range clean {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			result = append(result, r)
		}
	}

	filename := string(result)
	if len(filename) > 50 {
		filename = filename[:50]
	}
	if filename == "" {
		filename = suffix
	} else if suffix != "" {
		filename = filename + "_" + suffix
	}

	return filename + ext
}
