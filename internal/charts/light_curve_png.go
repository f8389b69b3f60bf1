package charts

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// LightCurvePNG renders a static light-curve image for archived reports
func LightCurvePNG(w io.Writer, title string, samples []float64) error {
	if len(samples) < 2 {
		return fmt.Errorf("light curve needs at least 2 samples, got %d", len(samples))
	}

	xValues := make([]float64, len(samples))
	for i := range samples {
		xValues[i] = float64(i)
	}

	accent := drawing.ColorFromHex("00a9ff")
	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 360,
		XAxis: chart.XAxis{
			Name: "Sample",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Relative flux",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.4f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Relative flux",
				XValues: xValues,
				YValues: samples,
				Style: chart.Style{
					StrokeColor: accent,
					StrokeWidth: 2,
					FillColor:   accent.WithAlpha(26),
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render light curve PNG: %w", err)
	}
	return nil
}
