// Package view turns prediction results into what the console page shows.
package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"echolens/internal/models"
)

// ConfidenceDotCount is the number of dots in the confidence meter
const ConfidenceDotCount = 10

// ProfileCard is the candidate profile shown after a successful hunt
type ProfileCard struct {
	Name              string `json:"name"`
	Prediction        string `json:"prediction"`
	Distance          string `json:"distance"`
	Period            string `json:"period"`
	Size              string `json:"size"`
	HabitabilityWidth string `json:"habitability_width"`
	ActiveDots        int    `json:"active_dots"`
	ConfidenceDots    []bool `json:"confidence_dots"`
}

// NewProfileCard formats a prediction for display
func NewProfileCard(result models.PredictionResult) ProfileCard {
	active := ActiveDots(result.Confidence)
	dots := make([]bool, ConfidenceDotCount)
	for i := range dots {
		dots[i] = i < active
	}

	return ProfileCard{
		Name:              result.Name,
		Prediction:        result.Prediction,
		Distance:          formatNumber(result.Distance) + " light-years",
		Period:            formatNumber(result.Period) + " days",
		Size:              formatNumber(result.Size) + "x Earth",
		HabitabilityWidth: GaugeWidth(result.Habitability),
		ActiveDots:        active,
		ConfidenceDots:    dots,
	}
}

// GaugeWidth converts a habitability score to a CSS width, 0.73 -> "73%".
// Scores outside [0, 1] are clamped.
func GaugeWidth(score float64) string {
	if math.IsNaN(score) {
		return "0%"
	}
	pct := math.Round(score * 100)
	pct = math.Max(0, math.Min(100, pct))
	return fmt.Sprintf("%d%%", int(pct))
}

// ActiveDots scales a confidence in [0, 1] to the number of lit dots out of 10
func ActiveDots(confidence float64) int {
	if math.IsNaN(confidence) {
		return 0
	}
	n := int(math.Round(confidence * ConfidenceDotCount))
	if n < 0 {
		return 0
	}
	if n > ConfidenceDotCount {
		return ConfidenceDotCount
	}
	return n
}

// formatNumber prints the shortest representation, grouping thousands
func formatNumber(v float64) string {
	if v >= 1000 && v == math.Trunc(v) && v < 1e15 {
		return humanize.Comma(int64(v))
	}
	if v >= 1000 {
		return humanize.CommafWithDigits(v, 2)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
