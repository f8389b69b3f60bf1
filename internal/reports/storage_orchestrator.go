package reports

import (
	"context"
	"fmt"
	"path"

	"golang.org/x/sync/errgroup"

	"echolens/internal/storage"
)

// maxConcurrentUploads bounds parallel StoreFile calls per report
const maxConcurrentUploads = 4

// StorageOrchestrator stores generated files in the archive
type StorageOrchestrator struct {
	storage storage.StorageClient
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{storage: client}
}

// StoreAllFiles uploads every file concurrently. index.html goes last so a
// listed report always has its data files.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)

	for name, data := range files.Files {
		if name == IndexFile {
			continue
		}
		name, data := name, data
		g.Go(func() error {
			if err := so.storage.StoreFile(gctx, path.Join(files.FolderPath, name), data); err != nil {
				return fmt.Errorf("failed to store %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if index, ok := files.Files[IndexFile]; ok {
		if err := so.storage.StoreFile(ctx, path.Join(files.FolderPath, IndexFile), index); err != nil {
			return fmt.Errorf("failed to store %s: %w", IndexFile, err)
		}
	}
	return nil
}
