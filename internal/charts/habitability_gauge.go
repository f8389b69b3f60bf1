package charts

import (
	"fmt"
	"math"
)

// HabitabilityGaugeSnippet builds an ECharts gauge for a habitability score in [0, 1]
func HabitabilityGaugeSnippet(score float64) (ChartSnippet, error) {
	if math.IsNaN(score) {
		return ChartSnippet{}, fmt.Errorf("habitability score is not a number")
	}
	percent := math.Round(math.Max(0, math.Min(1, score))*1000) / 10

	var statusText string
	switch {
	case percent >= 70:
		statusText = "Promising"
	case percent >= 40:
		statusText = "Marginal"
	default:
		statusText = "Hostile"
	}

	option := map[string]interface{}{
		"series": []interface{}{
			map[string]interface{}{
				"name":        "Habitability",
				"type":        "gauge",
				"min":         0,
				"max":         100,
				"splitNumber": 5,
				"radius":      "85%",
				"progress": map[string]interface{}{
					"show":  true,
					"width": 16,
				},
				"axisLine": map[string]interface{}{
					"lineStyle": map[string]interface{}{
						"width": 16,
						"color": [][]interface{}{
							{0.4, "#dc3545"},
							{0.7, "#ffc107"},
							{1.0, "#28a745"},
						},
					},
				},
				"pointer":   map[string]interface{}{"itemStyle": map[string]interface{}{"color": "auto"}},
				"axisLabel": map[string]interface{}{"color": "inherit", "fontSize": 12, "distance": 25},
				"detail": map[string]interface{}{
					"valueAnimation": true,
					"formatter":      fmt.Sprintf("%.1f%%\n%s", percent, statusText),
					"color":          "inherit",
					"fontSize":       14,
					"fontWeight":     "bold",
					"offsetCenter":   []interface{}{0, "65%"},
				},
				"data": []interface{}{
					map[string]interface{}{"value": percent, "name": "Habitability"},
				},
			},
		},
	}

	return newSnippet("chart-habitability-gauge", "Habitability", "260px", "gauge-item", option)
}
