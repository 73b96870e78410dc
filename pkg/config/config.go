package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the Stability Image AI MCP server
type Config struct {
	// Required
	StabilityAPIKey string

	// Optional with defaults
	ImagesRoot     string
	MeshesRoot     string
	RequestTimeout time.Duration
	DebugMode      bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Set defaults
		ImagesRoot:     "./stability_images",
		MeshesRoot:     "./stability_meshes",
		RequestTimeout: 60 * time.Second,
		DebugMode:      false,
	}

	// Required fields
	cfg.StabilityAPIKey = os.Getenv("STABILITY_API_KEY")
	if cfg.StabilityAPIKey == "" {
		return nil, fmt.Errorf("STABILITY_API_KEY environment variable is required")
	}

	if root := os.Getenv("STABILITY_IMAGES_ROOT_FOLDER"); root != "" {
		cfg.ImagesRoot = root
	}

	if root := os.Getenv("STABILITY_MESHES_ROOT_FOLDER"); root != "" {
		cfg.MeshesRoot = root
	}

	// Optional fields
	if timeout := os.Getenv("STABILITY_TIMEOUT_MS"); timeout != "" {
		val, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid STABILITY_TIMEOUT_MS: %w", err)
		}
		cfg.RequestTimeout = time.Duration(val) * time.Millisecond
	}

	if debug := os.Getenv("DEBUG_MODE"); debug != "" {
		val, err := strconv.ParseBool(debug)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG_MODE: %w", err)
		}
		cfg.DebugMode = val
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.StabilityAPIKey == "" {
		return fmt.Errorf("Stability API key is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	// Create artifact root folders if they don't exist
	if err := os.MkdirAll(c.ImagesRoot, 0755); err != nil {
		return fmt.Errorf("failed to create images root folder: %w", err)
	}
	if err := os.MkdirAll(c.MeshesRoot, 0755); err != nil {
		return fmt.Errorf("failed to create meshes root folder: %w", err)
	}

	return nil
}
