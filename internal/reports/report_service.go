// Package reports archives successful hunts as browsable report folders.
package reports

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"echolens/internal/llm"
	"echolens/internal/logger"
	"echolens/internal/models"
	"echolens/internal/storage"
)

// archiveTimeout bounds one asynchronous archive run
const archiveTimeout = 2 * time.Minute

// ReportService generates and stores hunt reports
type ReportService struct {
	generator    *FileGenerator
	orchestrator *StorageOrchestrator
	builder      *HTMLBuilder
	storage      storage.StorageClient
	log          *logger.Logger

	wg sync.WaitGroup
}

// NewReportService creates a report service writing to client
func NewReportService(client storage.StorageClient, briefer llm.Briefer, version string) *ReportService {
	builder := NewHTMLBuilder(version)
	return &ReportService{
		generator:    NewFileGenerator(builder, briefer),
		orchestrator: NewStorageOrchestrator(client),
		builder:      builder,
		storage:      client,
		log:          logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// Save generates and stores the report of a hunt, returning its folder
func (rs *ReportService) Save(ctx context.Context, rec models.HuntRecord) (string, error) {
	files, err := rs.generator.GenerateAllFiles(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to generate report files: %w", err)
	}
	if err := rs.orchestrator.StoreAllFiles(ctx, files); err != nil {
		return "", fmt.Errorf("failed to store report files: %w", err)
	}
	return files.FolderPath, nil
}

// Record archives a hunt in the background. Failures are only logged.
func (rs *ReportService) Record(rec models.HuntRecord) {
	rs.wg.Add(1)
	go func() {
		defer rs.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		folder, err := rs.Save(ctx, rec)
		if err != nil {
			rs.log.Error("Failed to archive hunt", err, map[string]interface{}{"system": rec.SystemID})
			return
		}
		rs.log.Info("Hunt archived", map[string]interface{}{"system": rec.SystemID, "folder": folder})
	}()
}

// Wait blocks until all background archive runs have finished
func (rs *ReportService) Wait() {
	rs.wg.Wait()
}

// List returns recent reports, newest first
func (rs *ReportService) List(ctx context.Context, limit int) ([]storage.ReportInfo, error) {
	return rs.storage.ListReports(ctx, limit)
}

// RenderList writes the archive listing page
func (rs *ReportService) RenderList(w io.Writer, reports []storage.ReportInfo) error {
	return rs.builder.RenderList(w, reports)
}

// GetFile returns one stored report file
func (rs *ReportService) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	return rs.storage.GetFile(ctx, filePath)
}
