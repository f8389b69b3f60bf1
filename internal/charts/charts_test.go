package charts

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestNewLightCurveLabelsEverySample(t *testing.T) {
	lc, err := NewLightCurve([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if lc.Len() != 3 {
		t.Fatalf("Expected 3 points, got %d", lc.Len())
	}
	for i, want := range []int{0, 1, 2} {
		if lc.Labels[i] != want {
			t.Errorf("Expected label %d at %d, got %d", want, i, lc.Labels[i])
		}
		if lc.Values[i] != 1 {
			t.Errorf("Expected value 1 at %d, got %v", i, lc.Values[i])
		}
	}
}

func TestNewLightCurveOption(t *testing.T) {
	samples := []float64{1.0, 0.995, 0.99, 0.995, 1.0}
	lc, err := NewLightCurve(samples)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var option struct {
		XAxis struct {
			Data []int `json:"data"`
		} `json:"xAxis"`
		Series []struct {
			Type       string    `json:"type"`
			ShowSymbol bool      `json:"showSymbol"`
			Data       []float64 `json:"data"`
			AreaStyle  struct {
				Color string `json:"color"`
			} `json:"areaStyle"`
		} `json:"series"`
	}
	if err := json.Unmarshal(lc.Option, &option); err != nil {
		t.Fatalf("Option is not valid JSON: %v", err)
	}

	if len(option.XAxis.Data) != len(samples) {
		t.Errorf("Expected %d x labels, got %d", len(samples), len(option.XAxis.Data))
	}
	if len(option.Series) != 1 {
		t.Fatalf("Expected one series, got %d", len(option.Series))
	}
	s := option.Series[0]
	if s.Type != "line" {
		t.Errorf("Expected line series, got %s", s.Type)
	}
	if s.ShowSymbol {
		t.Error("Expected point markers to be hidden")
	}
	if s.AreaStyle.Color == "" {
		t.Error("Expected the area under the curve to be filled")
	}
	for i := range samples {
		if s.Data[i] != samples[i] {
			t.Errorf("Expected sample %d to be %v, got %v", i, samples[i], s.Data[i])
		}
	}
}

func TestNewLightCurveCopiesSamples(t *testing.T) {
	samples := []float64{1, 2}
	lc, _ := NewLightCurve(samples)
	samples[0] = 99

	if lc.Values[0] != 1 {
		t.Errorf("Expected chart values to be independent of the input slice, got %v", lc.Values[0])
	}
}

func TestNewLightCurveEmpty(t *testing.T) {
	lc, err := NewLightCurve(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lc.Len() != 0 || len(lc.Labels) != 0 {
		t.Errorf("Expected empty chart, got %d points", lc.Len())
	}
	if !json.Valid(lc.Option) {
		t.Error("Expected a valid option even without samples")
	}
}

func TestNewLightCurveRejectsNonFiniteSamples(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewLightCurve([]float64{1, bad, 1}); err == nil {
			t.Errorf("Expected an error for sample %v", bad)
		}
	}
}

func TestLightCurveSnippet(t *testing.T) {
	snippet, err := LightCurveSnippet([]float64{1, 0.99, 1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snippet.ID != "chart-light-curve" {
		t.Errorf("Expected ID 'chart-light-curve', got '%s'", snippet.ID)
	}
	if !strings.Contains(snippet.Div, `id="chart-light-curve"`) {
		t.Errorf("Div does not reference the chart id: %s", snippet.Div)
	}
	if !strings.Contains(snippet.Script, "echarts.init") {
		t.Error("Script does not initialise echarts")
	}
	if !strings.Contains(snippet.HTML, snippet.Div) || !strings.Contains(snippet.HTML, snippet.Script) {
		t.Error("HTML should contain both div and script")
	}
}

func TestHabitabilityGaugeSnippet(t *testing.T) {
	tests := []struct {
		score  float64
		expect string
	}{
		{0.73, "73.0%\\nPromising"},
		{0.5, "50.0%\\nMarginal"},
		{0.1, "10.0%\\nHostile"},
		{1.7, "100.0%\\nPromising"},
		{-1, "0.0%\\nHostile"},
	}

	for _, tt := range tests {
		snippet, err := HabitabilityGaugeSnippet(tt.score)
		if err != nil {
			t.Fatalf("Expected no error for %v, got %v", tt.score, err)
		}
		if !strings.Contains(snippet.Script, tt.expect) {
			t.Errorf("Expected gauge for %v to contain %q, got %s", tt.score, tt.expect, snippet.Script)
		}
	}

	if _, err := HabitabilityGaugeSnippet(math.NaN()); err == nil {
		t.Error("Expected error for NaN score")
	}
}

func TestLightCurvePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := LightCurvePNG(&buf, "Kepler-62 f", []float64{1, 0.99, 0.985, 0.99, 1}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG signature")
	}

	if err := LightCurvePNG(&buf, "short", []float64{1}); err == nil {
		t.Error("Expected error for a single sample")
	}
}

func TestLightCurvePage(t *testing.T) {
	var buf bytes.Buffer
	if err := LightCurvePage(&buf, "TRAPPIST-1 e", []float64{1, 0.99, 1}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "TRAPPIST-1 e") {
		t.Error("Expected page title in output")
	}
	if !strings.Contains(html, "echarts") {
		t.Error("Expected echarts bootstrap in output")
	}
}
