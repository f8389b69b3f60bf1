// Package mocks provides a local stand-in for the remote classification API.
package mocks

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"echolens/internal/logger"
	"echolens/internal/models"
)

// csvFeatures are the columns the bulk endpoint understands, in model order
var csvFeatures = []string{
	"ra", "dec", "koi_period", "koi_prad", "koi_smass", "koi_srad",
	"koi_dor", "koi_teq", "koi_insol", "koi_score", "koi_pdisposition",
}

// Classifier serves /predict and /predict-csv with the response shapes of the real API
type Classifier struct {
	mu  sync.Mutex
	rng *rand.Rand
	mux *http.ServeMux
	log *logger.Logger
}

// NewClassifier creates a stand-in classifier seeded with seed
func NewClassifier(seed int64) *Classifier {
	c := &Classifier{
		rng: rand.New(rand.NewSource(seed)),
		mux: http.NewServeMux(),
		log: logger.GetGlobalLogger().WithComponent("mock-classifier"),
	}
	c.mux.HandleFunc("/", c.handleRoot)
	c.mux.HandleFunc("/health", c.handleHealth)
	c.mux.HandleFunc("/predict", c.handlePredict)
	c.mux.HandleFunc("/predict-csv", c.handlePredictCSV)
	return c
}

func (c *Classifier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mux.ServeHTTP(w, r)
}

// lockedRand serialises access to the shared generator
type lockedRand struct {
	c *Classifier
}

func (l lockedRand) Intn(n int) int {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	return l.c.rng.Intn(n)
}

func (l lockedRand) Float64() float64 {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	return l.c.rng.Float64()
}

func (l lockedRand) NormFloat64() float64 {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	return l.c.rng.NormFloat64()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]interface{}{"detail": detail})
}

func (c *Classifier) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Exoplanet Classifier API",
		"version": "1.0.0",
	})
}

func (c *Classifier) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"model_loaded":  true,
		"scaler_loaded": true,
	})
}

// predictRequest mirrors the wire record; pointers detect missing fields
type predictRequest struct {
	RA              *float64 `json:"ra"`
	Dec             *float64 `json:"dec"`
	Period          *float64 `json:"koi_period"`
	PlanetRadius    *float64 `json:"koi_prad"`
	StellarMass     *float64 `json:"koi_smass"`
	StellarRadius   *float64 `json:"koi_srad"`
	DistanceOverRad *float64 `json:"koi_dor"`
	EquilibriumTemp *float64 `json:"koi_teq"`
	Insolation      *float64 `json:"koi_insol"`
	Score           *float64 `json:"koi_score"`
	Disposition     *float64 `json:"koi_pdisposition"`
}

func (p predictRequest) record() (models.StarSystemRecord, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"ra", p.RA}, {"dec", p.Dec}, {"koi_period", p.Period}, {"koi_prad", p.PlanetRadius},
		{"koi_smass", p.StellarMass}, {"koi_srad", p.StellarRadius}, {"koi_dor", p.DistanceOverRad},
		{"koi_teq", p.EquilibriumTemp}, {"koi_insol", p.Insolation}, {"koi_score", p.Score},
		{"koi_pdisposition", p.Disposition},
	}
	for _, f := range fields {
		if f.v == nil {
			return models.StarSystemRecord{}, fmt.Errorf("field required: %s", f.name)
		}
	}
	return models.StarSystemRecord{
		RA:              *p.RA,
		Dec:             *p.Dec,
		Period:          *p.Period,
		PlanetRadius:    *p.PlanetRadius,
		StellarMass:     *p.StellarMass,
		StellarRadius:   *p.StellarRadius,
		DistanceOverRad: *p.DistanceOverRad,
		EquilibriumTemp: *p.EquilibriumTemp,
		Insolation:      *p.Insolation,
		Score:           *p.Score,
		Disposition:     *p.Disposition,
	}, nil
}

func (c *Classifier) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return
	}
	rec, err := req.record()
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result := Predict(rec, lockedRand{c})
	c.log.Debug("Stand-in prediction", map[string]interface{}{
		"name":       result.Name,
		"prediction": result.Prediction,
	})
	writeJSON(w, http.StatusOK, result)
}

func (c *Classifier) handlePredictCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: file")
		return
	}
	defer file.Close()

	rows, err := ClassifyCSV(file)
	if err != nil {
		var ce *CSVError
		if errors.As(err, &ce) {
			writeDetail(w, ce.Status, ce.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, csvResponse{Rows: len(rows), Predictions: rows})
}

// csvResponse keeps the bulk endpoint's field order: rows, then predictions
type csvResponse struct {
	Rows        int                   `json:"rows"`
	Predictions []models.CSVRowResult `json:"predictions"`
}

// CSVError carries the HTTP status the bulk endpoint answers with
type CSVError struct {
	Status int
	Msg    string
}

func (e *CSVError) Error() string { return e.Msg }

// ClassifyCSV reads a comma separated file with a header row and classifies
// every data row. A missing koi_score takes the column median.
func ClassifyCSV(r io.Reader) ([]models.CSVRowResult, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &CSVError{Status: http.StatusBadRequest, Msg: fmt.Sprintf("cannot read CSV: %v", err)}
	}
	if len(records) == 0 {
		return nil, &CSVError{Status: http.StatusBadRequest, Msg: "cannot read CSV: empty file"}
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	present := 0
	for _, name := range csvFeatures {
		if _, ok := header[name]; ok {
			present++
		}
	}
	if present == 0 {
		return nil, &CSVError{Status: http.StatusUnprocessableEntity, Msg: "none of the expected columns are present in the CSV"}
	}

	data := records[1:]
	scores := make([]float64, len(data))
	var valid []float64
	scoreIdx, hasScore := header["koi_score"]
	for i, row := range data {
		scores[i] = math.NaN()
		if hasScore && scoreIdx < len(row) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[scoreIdx]), 64); err == nil {
				scores[i] = v
				valid = append(valid, v)
			}
		}
	}
	fill := median(valid)

	nameIdx, hasNames := header["planet_name"]
	results := make([]models.CSVRowResult, 0, len(data))
	for i := range data {
		score := scores[i]
		if math.IsNaN(score) {
			score = fill
		}
		label, confidence := Classify(models.StarSystemRecord{Score: score})

		row := models.CSVRowResult{
			Row:        i,
			Prediction: label,
			Confidence: &confidence,
		}
		if hasNames {
			var name *string
			if nameIdx < len(data[i]) {
				n := data[i][nameIdx]
				name = &n
			}
			row.PlanetName = name
		}
		results = append(results, row)
	}
	return results, nil
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
