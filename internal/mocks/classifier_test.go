package mocks

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echolens/internal/models"
)

var earthLike = models.StarSystemRecord{
	Name:            "Kepler-62",
	RA:              283.785,
	Dec:             45.3477,
	Period:          122.387,
	PlanetRadius:    1.61,
	StellarMass:     0.69,
	StellarRadius:   0.64,
	DistanceOverRad: 12.8,
	EquilibriumTemp: 270,
	Insolation:      1.195,
	Score:           0.923,
	Disposition:     0.874,
}

func TestLightCurveShape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	curve := LightCurve(earthLike, rng)

	require.Len(t, curve, 100)
	min := 2.0
	for _, v := range curve {
		assert.GreaterOrEqual(t, v, 0.985)
		assert.LessOrEqual(t, v, 1.015)
		if v < min {
			min = v
		}
	}
	// (1.61/0.64)^2 is capped at 0.05, so the dip bottoms out at the clamp
	assert.InDelta(t, 0.985, min, 0.002)
}

func TestHabitabilityBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		h := Habitability(earthLike, rng)
		// 0.15 + 0.3 + 0.2 + 0.1 + 0.0923 +/- 0.08
		assert.InDelta(t, 0.842, h, 0.081)
	}

	hostile := models.StarSystemRecord{PlanetRadius: 12, EquilibriumTemp: 2000, Insolation: 900, Period: 1}
	for i := 0; i < 50; i++ {
		h := Habitability(hostile, rng)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.LessOrEqual(t, h, 0.08)
	}
}

func TestPlanetName(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	assert.True(t, strings.HasPrefix(PlanetName(earthLike, rng), "Kepler-62 "))
	assert.True(t, strings.HasPrefix(PlanetName(models.StarSystemRecord{RA: 346.6, Dec: -5.04}, rng), "TRAPPIST-1 "))
	assert.Regexp(t, `^KOI-217\d{3}$`, PlanetName(models.StarSystemRecord{RA: 217.4, Dec: -62.6}, rng))
}

func TestDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	near := Distance(models.StarSystemRecord{StellarRadius: 0.5}, rng)
	far := Distance(models.StarSystemRecord{StellarRadius: 1.2}, rng)

	assert.InDelta(t, 200, near, 30)
	assert.InDelta(t, 1000, far, 150)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		label string
	}{
		{0.95, "CONFIRMED"},
		{0.6, "CANDIDATE"},
		{0.1, "FALSE POSITIVE"},
	}
	for _, tt := range tests {
		label, confidence := Classify(models.StarSystemRecord{Score: tt.score})
		assert.Equal(t, tt.label, label)
		assert.GreaterOrEqual(t, confidence, 0.5)
		assert.LessOrEqual(t, confidence, 0.99)
	}
}

func TestPredictEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewClassifier(42))
	defer srv.Close()

	body, err := json.Marshal(earthLike)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/predict", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.PredictionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "CONFIRMED", result.Prediction)
	assert.Equal(t, 122.39, result.Period)
	assert.Equal(t, 1.61, result.Size)
	assert.Len(t, result.LightCurve, 100)
	assert.True(t, strings.HasSuffix(result.HabitabilityPercent, "%"))
}

func TestPredictEndpointMissingField(t *testing.T) {
	srv := httptest.NewServer(NewClassifier(42))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/predict", "application/json", strings.NewReader(`{"ra": 1}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func postCSV(t *testing.T, url, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "koi.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func TestPredictCSVEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewClassifier(42))
	defer srv.Close()

	resp := postCSV(t, srv.URL+"/predict-csv", "# exported rows\nplanet_name,koi_score,koi_prad\nA,0.9,1.0\nB,,2.0\nC,0.1,3.0\n")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.CSVPrediction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, 3, out.Rows)
	require.Len(t, out.Predictions, 3)

	assert.Equal(t, "CONFIRMED", out.Predictions[0].Prediction)
	// median of 0.9 and 0.1
	assert.Equal(t, "CANDIDATE", out.Predictions[1].Prediction)
	assert.Equal(t, "FALSE POSITIVE", out.Predictions[2].Prediction)
	require.NotNil(t, out.Predictions[1].PlanetName)
	assert.Equal(t, "B", *out.Predictions[1].PlanetName)
	assert.Equal(t, 2, out.Predictions[2].Row)
}

func TestPredictCSVFieldOrder(t *testing.T) {
	srv := httptest.NewServer(NewClassifier(42))
	defer srv.Close()

	resp := postCSV(t, srv.URL+"/predict-csv", "koi_score\n0.5\n")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte(`{"rows":1,"predictions":[`)), string(body))
}

func TestPredictCSVWithoutKnownColumns(t *testing.T) {
	srv := httptest.NewServer(NewClassifier(42))
	defer srv.Close()

	resp := postCSV(t, srv.URL+"/predict-csv", "foo,bar\n1,2\n")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPredictCSVMissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict-csv", strings.NewReader(""))
	NewClassifier(1).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
