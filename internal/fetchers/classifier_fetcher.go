package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"echolens/internal/logger"
	"echolens/internal/models"
)

// ClassifierFetcher issues the prediction and CSV upload requests
type ClassifierFetcher struct {
	client *resty.Client
	log    *logger.Logger
}

// NewClassifierFetcher creates a classifier fetcher sharing the given client
func NewClassifierFetcher(client *resty.Client, log *logger.Logger) *ClassifierFetcher {
	return &ClassifierFetcher{
		client: client,
		log:    log,
	}
}

// Predict posts one star system record and decodes the prediction
func (f *ClassifierFetcher) Predict(ctx context.Context, url string, rec models.StarSystemRecord) (*models.PredictionResult, error) {
	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(rec).
		Post(url)

	if err != nil {
		return nil, fmt.Errorf("failed to reach prediction endpoint: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{Endpoint: "prediction endpoint", Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	var result models.PredictionResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse prediction response: %w", err)
	}

	f.log.Debug("Prediction received", map[string]interface{}{
		"system":     rec.Name,
		"prediction": result.Prediction,
		"samples":    len(result.LightCurve),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return &result, nil
}

// Upload forwards a CSV file as multipart field "file" and returns the raw JSON answer
func (f *ClassifierFetcher) Upload(ctx context.Context, url, filename string, r io.Reader) (*models.CSVPrediction, error) {
	file, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		file = bytes.NewReader(data)
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFileReader("file", filename, file).
		Post(url)

	if err != nil {
		return nil, fmt.Errorf("failed to reach CSV endpoint: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{Endpoint: "CSV endpoint", Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("CSV endpoint returned invalid JSON")
	}

	result := &models.CSVPrediction{Raw: json.RawMessage(body)}
	if err := json.Unmarshal(body, result); err != nil {
		// only the raw body is echoed back, so a different shape is not an error
		f.log.Debug("CSV response has an unfamiliar shape", map[string]interface{}{
			"file":  filename,
			"error": err.Error(),
		})
	}
	return result, nil
}

// FetchPrediction classifies a single star system
func (f *DataFetcher) FetchPrediction(ctx context.Context, rec models.StarSystemRecord) (*models.PredictionResult, error) {
	return f.classifier.Predict(ctx, f.predictURL, rec)
}

// UploadCSV classifies every row of a CSV file
func (f *DataFetcher) UploadCSV(ctx context.Context, filename string, r io.Reader) (*models.CSVPrediction, error) {
	return f.classifier.Upload(ctx, f.csvURL, filename, r)
}
