package storage

import (
	"context"
	"path/filepath"
	"testing"

	"echolens/internal/config"
)

func TestNewStorageClient_Local(t *testing.T) {
	cfg := &config.Config{
		DeploymentMode:  "local",
		LocalReportsDir: filepath.Join(t.TempDir(), "test-reports"),
	}

	client, err := NewStorageClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create local storage client: %v", err)
	}
	defer client.Close()

	local, ok := client.(*LocalStorageClient)
	if !ok {
		t.Fatalf("Expected LocalStorageClient, got %T", client)
	}
	if local.BaseDir() != cfg.LocalReportsDir {
		t.Errorf("Expected base dir %s, got %s", cfg.LocalReportsDir, local.BaseDir())
	}
}

func TestNewStorageClient_GCSWithoutBucket(t *testing.T) {
	cfg := &config.Config{DeploymentMode: "gcs"}

	client, err := NewStorageClient(context.Background(), cfg)
	if err == nil {
		client.Close()
		t.Fatal("Expected an error for GCS mode without a bucket")
	}
}

func TestNewStorageClient_GCS(t *testing.T) {
	cfg := &config.Config{
		DeploymentMode: "gcs",
		GCSBucket:      "test-bucket",
	}

	// without credentials this fails, which still exercises the GCS path
	client, err := NewStorageClient(context.Background(), cfg)
	if err != nil {
		t.Logf("GCS client creation failed as expected in test environment: %v", err)
		return
	}
	defer client.Close()

	if _, ok := client.(*GCSClient); !ok {
		t.Errorf("Expected GCSClient, got %T", client)
	}
}

func TestNewStorageClient_InvalidMode(t *testing.T) {
	cfg := &config.Config{DeploymentMode: "s3"}

	if _, err := NewStorageClient(context.Background(), cfg); err == nil {
		t.Error("Expected error for unsupported deployment mode")
	}
}
