package charts

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// LightCurvePage renders a standalone interactive chart page for archived reports
func LightCurvePage(w io.Writer, title string, samples []float64) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     "900px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Relative stellar flux per sample",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Sample",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Flux",
			Scale: true,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
	)

	xAxis := make([]string, len(samples))
	points := make([]opts.LineData, len(samples))
	for i, v := range samples {
		xAxis[i] = strconv.Itoa(i)
		points[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(xAxis).
		AddSeries("Relative flux", points).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: true, ShowSymbol: false}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.1}),
		)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render light curve page: %w", err)
	}
	return nil
}
