package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"echolens/internal/catalog"
	"echolens/internal/hunt"
	"echolens/internal/storage"
	"echolens/internal/view"
)

const (
	maxUploadSize     = 10 << 20
	defaultReportList = 20
	maxReportList     = 100
)

// HandleRoot serves the console page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	_, console := s.console(w, r)

	entries := s.Catalog.Systems()
	systems := make([]view.SystemOption, len(entries))
	for i, e := range entries {
		systems[i] = view.SystemOption{ID: e.ID, Name: e.Record.Name}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.renderer.Page(w, view.PageData{
		Version: s.Version,
		Systems: systems,
		Fact:    s.Facts.Random(),
		State:   console.State(),
	})
	if err != nil {
		s.log.Error("Failed to render console page", err)
	}
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   s.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"sessions":  s.sessions.len(),
		"checks": map[string]interface{}{
			"catalog": s.Catalog.Len(),
			"archive": s.Reports != nil,
			"mockup":  s.Mock != nil,
		},
	})
}

// HandleSystems lists the catalog in selection order
func (s *Server) HandleSystems(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"systems": s.Catalog.Systems(),
		"count":   s.Catalog.Len(),
	})
}

// HandleState returns the console state of the session
func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	_, console := s.console(w, r)
	writeJSON(w, http.StatusOK, map[string]interface{}{"state": console.State()})
}

// HandleFact returns a random fun fact
func (s *Server) HandleFact(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"fact": s.Facts.Random()})
}

type huntRequest struct {
	System string `json:"system"`
}

func readSystemID(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req huntRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			return "", err
		}
		return strings.TrimSpace(req.System), nil
	}
	return strings.TrimSpace(r.FormValue("system")), nil
}

// HandleHunt runs a hunt for the session console and waits for it to settle
func (s *Server) HandleHunt(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	id, err := readSystemID(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "Select a star system.", nil)
		return
	}

	_, console := s.console(w, r)
	state, err := console.Hunt(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{"state": state})
	case errors.Is(err, catalog.ErrUnknownSystem):
		writeError(w, http.StatusNotFound, err.Error(), map[string]interface{}{"state": state})
	case errors.Is(err, hunt.ErrHuntInProgress):
		writeError(w, http.StatusConflict, "A hunt is already in progress.", map[string]interface{}{"state": state})
	case errors.Is(err, hunt.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "Session closed, reload the page.", nil)
	default:
		// the page shows the fixed failure text; the cause only goes to the log
		writeError(w, http.StatusBadGateway, state.Placeholder, map[string]interface{}{"state": state})
	}
}

// HandleUpload forwards a CSV file to the classifier and returns the result as text
func (s *Server) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Select a CSV file."))
		return
	}
	defer file.Close()

	result, err := s.Fetcher.UploadCSV(r.Context(), header.Filename, file)
	if err != nil {
		s.log.Error("CSV upload failed", err, map[string]interface{}{"file": header.Filename})
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Error: " + err.Error()))
		return
	}

	text, err := result.Indented()
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Error: " + err.Error()))
		return
	}
	s.log.Info("CSV classified", map[string]interface{}{"file": header.Filename, "rows": result.Rows})
	w.Write([]byte(text))
}

// HandleListReports lists archived hunts as HTML, or JSON on request
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if s.Reports == nil {
		http.Error(w, "Hunt archive is disabled", http.StatusNotFound)
		return
	}

	limit := defaultReportList
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxReportList {
		limit = maxReportList
	}

	list, err := s.Reports.List(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list reports", err)
		http.Error(w, "Failed to list reports", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"reports":   list,
			"count":     len(list),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Reports.RenderList(w, list); err != nil {
		s.log.Error("Failed to render report list", err)
	}
}

// HandleReportFile serves one file of an archived report
func (s *Server) HandleReportFile(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if s.Reports == nil {
		http.Error(w, "Hunt archive is disabled", http.StatusNotFound)
		return
	}

	filePath, err := storage.CleanPath(strings.TrimPrefix(r.URL.Path, "/reports/"))
	if err != nil {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.Reports.GetFile(r.Context(), filePath)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("Failed to read report file", err, map[string]interface{}{"path": filePath})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}
