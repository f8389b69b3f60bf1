package charts

import (
	"encoding/json"
	"fmt"
	"math"
)

// LightCurveChartID is the element id of the live light-curve chart
const LightCurveChartID = "light-curve-chart"

const (
	accentColor = "#00a9ff"
	areaColor   = "rgba(0, 169, 255, 0.1)"
)

// LightCurve is the view model of the light-curve chart: one label per sample
// (0..n-1), the samples in order and the ECharts option built from them.
type LightCurve struct {
	Labels []int           `json:"labels"`
	Values []float64       `json:"values"`
	Option json.RawMessage `json:"option"`
}

// Len returns the number of plotted points
func (lc LightCurve) Len() int {
	return len(lc.Values)
}

// NewLightCurve builds the chart view model for a light-curve sample sequence.
// NaN and infinite samples cannot be plotted and are rejected.
func NewLightCurve(samples []float64) (LightCurve, error) {
	labels := make([]int, len(samples))
	values := make([]float64, len(samples))
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return LightCurve{}, fmt.Errorf("light curve sample %d is not finite: %v", i, v)
		}
		labels[i] = i
		values[i] = v
	}

	option, err := json.Marshal(lightCurveOption(labels, values))
	if err != nil {
		return LightCurve{}, fmt.Errorf("failed to encode light curve option: %w", err)
	}

	return LightCurve{
		Labels: labels,
		Values: values,
		Option: option,
	}, nil
}

func lightCurveOption(labels []int, values []float64) map[string]interface{} {
	return map[string]interface{}{
		"animationDuration": 800,
		"tooltip": map[string]interface{}{
			"trigger": "axis",
		},
		"grid": map[string]interface{}{"left": "4%", "right": "4%", "bottom": "6%", "top": "6%", "containLabel": true},
		"xAxis": map[string]interface{}{
			"type":        "category",
			"boundaryGap": false,
			"data":        labels,
			"axisLabel":   map[string]interface{}{"color": "#8fa3bf"},
		},
		"yAxis": map[string]interface{}{
			"type":      "value",
			"scale":     true,
			"axisLabel": map[string]interface{}{"color": "#8fa3bf"},
			"splitLine": map[string]interface{}{"lineStyle": map[string]interface{}{"color": "rgba(255,255,255,0.08)"}},
		},
		"series": []interface{}{
			map[string]interface{}{
				"name":       "Relative flux",
				"type":       "line",
				"smooth":     0.4,
				"showSymbol": false,
				"lineStyle":  map[string]interface{}{"width": 2, "color": accentColor},
				"itemStyle":  map[string]interface{}{"color": accentColor},
				"areaStyle":  map[string]interface{}{"color": areaColor},
				"data":       values,
			},
		},
	}
}

// LightCurveSnippet renders the light curve as an embeddable fragment for archived reports
func LightCurveSnippet(samples []float64) (ChartSnippet, error) {
	labels := make([]int, len(samples))
	for i := range samples {
		labels[i] = i
	}
	return newSnippet("chart-light-curve", "Light Curve", "360px", "chart-container", lightCurveOption(labels, samples))
}
