package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echolens/internal/models"
)

func sampleRecord() models.HuntRecord {
	return models.HuntRecord{
		SystemID: "kepler-62",
		Request: models.StarSystemRecord{
			Name:            "Kepler-62",
			Period:          122.387,
			EquilibriumTemp: 208,
			Insolation:      0.41,
		},
		Result: models.PredictionResult{
			Name:         "Kepler-62 f",
			Prediction:   "CONFIRMED",
			Distance:     1200,
			Period:       267.29,
			Size:         1.41,
			Habitability: 0.73,
			Confidence:   0.8,
			LightCurve:   []float64{1, 0.99, 1},
		},
		Timestamp: time.Date(2025, 9, 17, 14, 30, 0, 0, time.UTC),
	}
}

type brieferFunc func(ctx context.Context, rec models.HuntRecord) (string, error)

func (f brieferFunc) Briefing(ctx context.Context, rec models.HuntRecord) (string, error) {
	return f(ctx, rec)
}

func TestTemplateBriefer(t *testing.T) {
	out, err := TemplateBriefer{}.Briefing(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Mission Briefing: Kepler-62 f"))
	assert.Contains(t, out, "**Kepler-62**")
	assert.Contains(t, out, "2025-09-17 14:30 UTC")
	assert.Contains(t, out, "CONFIRMED (80.0% confidence)")
	assert.Contains(t, out, "| Distance | 1,200 light-years |")
	assert.Contains(t, out, "| Orbital period | 267.29 days |")
	assert.Contains(t, out, "| Habitability | 73.0% |")
	assert.Contains(t, out, "promising")
}

func TestTemplateBrieferUsesGivenPercentages(t *testing.T) {
	rec := sampleRecord()
	rec.Result.ConfidencePercent = "81.2%"
	rec.Result.Habitability = 0.1

	out, err := TemplateBriefer{}.Briefing(context.Background(), rec)
	require.NoError(t, err)
	assert.Contains(t, out, "CONFIRMED (81.2% confidence)")
	assert.Contains(t, out, "hostile")
}

func TestBuildPromptOmitsLightCurve(t *testing.T) {
	prompt := BuildPrompt(sampleRecord())

	assert.Contains(t, prompt, "## Hunt for Kepler-62 (2025-09-17 14:30 UTC)")
	assert.Contains(t, prompt, `"koi_period": 122.387`)
	assert.Contains(t, prompt, `"prediction": "CONFIRMED"`)
	assert.Contains(t, prompt, `"light_curve": null`)
}

func TestNarratorFallsBackToTemplate(t *testing.T) {
	n := newNarrator(brieferFunc(func(context.Context, models.HuntRecord) (string, error) {
		return "", errors.New("quota exceeded")
	}))
	assert.True(t, n.UsesModel())

	out, err := n.Briefing(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Mission Briefing"))
}

func TestNarratorWithoutKey(t *testing.T) {
	n := NewNarrator("", "")
	assert.False(t, n.UsesModel())

	out, err := n.Briefing(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Contains(t, out, "Kepler-62 f")
}

func TestOpenAIClientBriefing(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.Equal(t, "/v1/chat/completions", r.URL.Path) {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4.1",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": "  # Echoes from Kepler-62\n\nA promising world.  ",
				},
			}},
		})
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	client := NewOpenAIClientWithConfig(cfg, "")

	out, err := client.Briefing(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, "# Echoes from Kepler-62\n\nA promising world.", out)

	assert.Equal(t, "gpt-4.1", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "Kepler-62")
}

func TestOpenAIClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("bad")
	cfg.BaseURL = srv.URL + "/v1"

	_, err := NewOpenAIClientWithConfig(cfg, "gpt-4.1").Briefing(context.Background(), sampleRecord())
	assert.Error(t, err)
}
