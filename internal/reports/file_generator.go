package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"echolens/internal/charts"
	"echolens/internal/llm"
	"echolens/internal/logger"
	"echolens/internal/models"
	"echolens/internal/storage"
)

// Report file names inside a report folder
const (
	RequestFile    = "request.json"
	PredictionFile = "prediction.json"
	BriefingFile   = "briefing.md"
	ChartPNGFile   = "light_curve.png"
	ChartPageFile  = "light_curve.html"
	IndexFile      = "index.html"
)

// GeneratedFiles contains all files generated for a report
type GeneratedFiles struct {
	FolderPath string
	Files      map[string][]byte
}

// FileGenerator renders every file of a report
type FileGenerator struct {
	builder *HTMLBuilder
	briefer llm.Briefer
	log     *logger.Logger
}

// NewFileGenerator creates a file generator
func NewFileGenerator(builder *HTMLBuilder, briefer llm.Briefer) *FileGenerator {
	if briefer == nil {
		briefer = llm.TemplateBriefer{}
	}
	return &FileGenerator{
		builder: builder,
		briefer: briefer,
		log:     logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// GenerateAllFiles creates the JSON, chart, briefing and HTML files for a hunt.
// Chart files are skipped with a warning when the light curve is too short to plot.
func (fg *FileGenerator) GenerateAllFiles(ctx context.Context, rec models.HuntRecord) (*GeneratedFiles, error) {
	files := &GeneratedFiles{
		FolderPath: storage.GenerateReportFolderPath(rec.SystemID, rec.Timestamp),
		Files:      make(map[string][]byte),
	}

	request, err := json.MarshalIndent(rec.Request, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	files.Files[RequestFile] = request

	prediction, err := json.MarshalIndent(rec.Result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction: %w", err)
	}
	files.Files[PredictionFile] = prediction

	title := fmt.Sprintf("%s light curve", rec.Request.Name)

	var png bytes.Buffer
	if err := charts.LightCurvePNG(&png, title, rec.Result.LightCurve); err != nil {
		fg.log.Warn("Skipping light curve image", map[string]interface{}{"system": rec.SystemID, "error": err.Error()})
	} else {
		files.Files[ChartPNGFile] = png.Bytes()
	}

	var page bytes.Buffer
	if err := charts.LightCurvePage(&page, title, rec.Result.LightCurve); err != nil {
		fg.log.Warn("Skipping light curve page", map[string]interface{}{"system": rec.SystemID, "error": err.Error()})
	} else {
		files.Files[ChartPageFile] = page.Bytes()
	}

	briefing, err := fg.briefer.Briefing(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to write briefing: %w", err)
	}
	files.Files[BriefingFile] = []byte(briefing)

	index, err := fg.builder.BuildReport(rec, briefing)
	if err != nil {
		return nil, err
	}
	files.Files[IndexFile] = []byte(index)

	return files, nil
}
