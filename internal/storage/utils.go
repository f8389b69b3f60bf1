package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

const (
	reportPrefix  = "EchoReport-"
	stampLayout   = "2006-01-02-15-04-05"
	reportIndex   = "index.html"
	maxSystemName = 64
)

// GenerateReportFolderPath generates a consistent folder path for a hunt report
// Format: YYYY/MM/DD/EchoReport-<system>-YYYY-MM-DD-HH-MM-SS
func GenerateReportFolderPath(system string, timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/%s%s-%s",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		reportPrefix, sanitizeSystem(system), timestamp.Format(stampLayout))
}

// ParseReportFolder extracts the system id and timestamp from a report folder name
func ParseReportFolder(folder string) (string, time.Time, bool) {
	name := path.Base(folder)
	if !strings.HasPrefix(name, reportPrefix) || len(name) < len(reportPrefix)+len(stampLayout)+2 {
		return "", time.Time{}, false
	}
	stamp := name[len(name)-len(stampLayout):]
	created, err := time.Parse(stampLayout, stamp)
	if err != nil {
		return "", time.Time{}, false
	}
	system := strings.TrimSuffix(name[len(reportPrefix):len(name)-len(stampLayout)], "-")
	if system == "" {
		return "", time.Time{}, false
	}
	return system, created, true
}

func sanitizeSystem(system string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(system) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '.':
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		s = "unknown"
	}
	if len(s) > maxSystemName {
		s = s[:maxSystemName]
	}
	return s
}

// CleanPath normalises a relative archive path and rejects anything that
// would escape the archive root.
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("invalid path %q", p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid path %q", p)
		}
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return "", fmt.Errorf("invalid path %q", p)
	}
	return cleaned, nil
}

// reportFromIndex builds a ReportInfo from the path of a report's index.html
func reportFromIndex(indexPath string, size int64) (ReportInfo, bool) {
	if path.Base(indexPath) != reportIndex {
		return ReportInfo{}, false
	}
	folder := path.Dir(indexPath)
	system, created, ok := ParseReportFolder(folder)
	if !ok {
		return ReportInfo{}, false
	}
	return ReportInfo{
		Folder:  folder,
		Index:   indexPath,
		System:  system,
		Created: created,
		Size:    size,
	}, true
}

// sortAndLimit orders reports newest first and applies limit
func sortAndLimit(reports []ReportInfo, limit int) []ReportInfo {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Created.Equal(reports[j].Created) {
			return reports[i].Folder > reports[j].Folder
		}
		return reports[i].Created.After(reports[j].Created)
	})
	if limit > 0 && limit < len(reports) {
		reports = reports[:limit]
	}
	return reports
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css"
	case ".md":
		return "text/markdown"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
