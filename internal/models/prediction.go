package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// PredictionResult is the classifier response for a single star system
type PredictionResult struct {
	Name                string    `json:"name"`
	Prediction          string    `json:"prediction"`
	Distance            float64   `json:"distance"`     // light-years
	Period              float64   `json:"period"`       // days
	Size                float64   `json:"size"`         // Earth radii
	Habitability        float64   `json:"habitability"` // 0..1
	HabitabilityPercent string    `json:"habitability_percent,omitempty"`
	Confidence          float64   `json:"confidence"` // 0..1
	ConfidencePercent   string    `json:"confidence_percent,omitempty"`
	LightCurve          []float64 `json:"light_curve"`
}

// CSVPrediction is the classifier response for an uploaded CSV file.
// Raw is echoed verbatim; Rows and Predictions are decoded on a best-effort basis.
type CSVPrediction struct {
	Raw         json.RawMessage `json:"-"`
	Rows        int             `json:"rows"`
	Predictions []CSVRowResult  `json:"predictions"`
}

// Indented returns the raw response pretty-printed with a two-space indent
func (p *CSVPrediction) Indented() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p.Raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CSVRowResult is one classified row of an uploaded CSV file
type CSVRowResult struct {
	Row        int      `json:"row"`
	Prediction string   `json:"prediction"`
	Confidence *float64 `json:"confidence"`
	PlanetName *string  `json:"planet_name,omitempty"`
}

// HuntRecord ties a request to its result for archiving
type HuntRecord struct {
	SystemID  string           `json:"system_id"`
	Request   StarSystemRecord `json:"request"`
	Result    PredictionResult `json:"result"`
	Timestamp time.Time        `json:"timestamp"`
}
