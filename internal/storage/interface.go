package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a stored file does not exist
var ErrNotFound = errors.New("file not found")

// StorageClient defines the interface for archive storage operations.
// All paths are slash-separated and relative to the archive root.
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file, creating parent folders as needed
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// FileExists checks if a file exists
	FileExists(ctx context.Context, filePath string) (bool, error)

	// ListReports lists archived reports, newest first. A limit <= 0 returns all.
	ListReports(ctx context.Context, limit int) ([]ReportInfo, error)
}

// ReportInfo describes one archived hunt report
type ReportInfo struct {
	Folder  string    `json:"folder"`
	Index   string    `json:"index"`
	System  string    `json:"system"`
	Created time.Time `json:"created"`
	Size    int64     `json:"size"`
}
