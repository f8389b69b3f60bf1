package storage

import (
	"context"
	"fmt"

	"echolens/internal/config"
)

// DeploymentMode represents the deployment environment
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// NewStorageClient creates a storage client based on the configured deployment mode
func NewStorageClient(ctx context.Context, cfg *config.Config) (StorageClient, error) {
	switch DeploymentMode(cfg.DeploymentMode) {
	case DeploymentLocal, "":
		localClient, err := NewLocalStorageClient(cfg.LocalReportsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", cfg.DeploymentMode)
	}
}
