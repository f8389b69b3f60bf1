package reports

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"echolens/internal/charts"
	"echolens/internal/models"
	"echolens/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	goldmark  goldmark.Markdown
	templates *template.Template
	version   string
	now       func() time.Time
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder(version string) *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	b := &HTMLBuilder{goldmark: md, version: version, now: time.Now}
	b.templates = template.Must(template.New("").Funcs(template.FuncMap{
		"age":  func(t time.Time) string { return humanize.RelTime(t, b.now(), "ago", "from now") },
		"size": func(n int64) string { return humanize.Bytes(uint64(n)) },
	}).ParseFS(templateFS, "templates/*.html"))
	return b
}

// TemplateData is what report.html renders
type TemplateData struct {
	Name              string
	SystemID          string
	Prediction        string
	GeneratedAt       string
	Version           string
	Briefing          template.HTML
	LightCurveChart   template.HTML
	HabitabilityGauge template.HTML
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark.
// Raw HTML in the markdown is dropped since briefings may come from a model.
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildReport renders the index.html of an archived hunt
func (h *HTMLBuilder) BuildReport(rec models.HuntRecord, briefing string) (string, error) {
	briefingHTML, err := h.ConvertMarkdownToHTML(briefing)
	if err != nil {
		return "", err
	}

	data := TemplateData{
		Name:        rec.Result.Name,
		SystemID:    rec.SystemID,
		Prediction:  titleCase(rec.Result.Prediction),
		GeneratedAt: rec.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     h.version,
		Briefing:    template.HTML(briefingHTML),
	}
	if data.Name == "" {
		data.Name = rec.Request.Name
	}

	if len(rec.Result.LightCurve) > 0 {
		snippet, err := charts.LightCurveSnippet(rec.Result.LightCurve)
		if err != nil {
			return "", err
		}
		data.LightCurveChart = template.HTML(snippet.HTML)
	}
	if gauge, err := charts.HabitabilityGaugeSnippet(rec.Result.Habitability); err == nil {
		data.HabitabilityGauge = template.HTML(gauge.HTML)
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "report.html", data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// RenderList writes the archive listing page
func (h *HTMLBuilder) RenderList(w io.Writer, reports []storage.ReportInfo) error {
	if err := h.templates.ExecuteTemplate(w, "list.html", struct{ Reports []storage.ReportInfo }{reports}); err != nil {
		return fmt.Errorf("failed to render report list: %w", err)
	}
	return nil
}

// titleCase turns "FALSE POSITIVE" into "False Positive"
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
