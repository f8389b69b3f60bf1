package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name           string
		envVersion     string
		expectContains string
		expectMinLen   int
	}{
		{
			name:           "version from environment variable",
			envVersion:     "1.2.3",
			expectContains: "1.2.3",
			expectMinLen:   5,
		},
		{
			name:           "version from environment with build number",
			envVersion:     "2.0.0-beta.1",
			expectContains: "2.0.0-beta.1",
			expectMinLen:   10,
		},
		{
			name:         "version from VERSION file or git",
			envVersion:   "",
			expectMinLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_VERSION", tt.envVersion)

			version := GetVersion()

			if len(version) < tt.expectMinLen {
				t.Errorf("Expected version length >= %d, got %d (version: %s)", tt.expectMinLen, len(version), version)
			}
			if tt.expectContains != "" && !strings.Contains(version, tt.expectContains) {
				t.Errorf("Expected version to contain '%s', got '%s'", tt.expectContains, version)
			}
		})
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(original) })
}

func TestGetBaseVersionFromParent(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "VERSION"), []byte("1.5.0\n"), 0644); err != nil {
		t.Fatalf("Failed to create test VERSION file: %v", err)
	}
	subDir := filepath.Join(tempDir, "cmd")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	chdir(t, subDir)

	if version := getBaseVersion(); version != "1.5.0" {
		t.Errorf("Expected base version '1.5.0', got '%s'", version)
	}
}

func TestGetBaseVersionFallback(t *testing.T) {
	chdir(t, t.TempDir())

	if version := getBaseVersion(); version != "0.1.0" {
		t.Errorf("Expected fallback version '0.1.0', got '%s'", version)
	}
}

func TestGetGitCommitCount(t *testing.T) {
	count := getGitCommitCount()
	if count < 0 {
		t.Errorf("Expected non-negative commit count, got %d", count)
	}
	t.Logf("Git commit count: %d", count)
}
