package mocks

import (
	"fmt"
	"math"

	"echolens/internal/models"
)

const lightCurvePoints = 100

// Random is the subset of *rand.Rand the heuristics draw from
type Random interface {
	Intn(n int) int
	Float64() float64
	NormFloat64() float64
}

func uniform(rng Random, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// randint returns an integer in [lo, hi], both inclusive
func randint(rng Random, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LightCurve simulates a 100-sample normalised flux series with one transit dip
func LightCurve(rec models.StarSystemRecord, rng Random) []float64 {
	depth := math.Min(math.Pow(rec.PlanetRadius/math.Max(rec.StellarRadius, 0.1), 2), 0.05)
	center := randint(rng, 35, 65)
	duration := int(8 * (rec.PlanetRadius / math.Max(rec.DistanceOverRad, 1)))
	if duration > 18 {
		duration = 18
	}
	if duration < 4 {
		duration = 4
	}
	start := center - duration/2
	end := center + duration/2

	curve := make([]float64, lightCurvePoints)
	for i := range curve {
		flux := 1.0
		if i >= start && i <= end {
			progress := float64(i-start) / float64(duration)
			var factor float64
			switch {
			case progress < 0.15:
				factor = 1 - depth*(progress/0.15)
			case progress > 0.85:
				factor = 1 - depth*((1-progress)/0.15)
			default:
				factor = 1 - depth*uniform(rng, 0.95, 1.05)
			}
			flux *= factor
		}
		flux += rng.NormFloat64() * 0.0003
		curve[i] = round(clamp(flux, 0.985, 1.015), 6)
	}
	return curve
}

// Habitability scores a record in [0, 1] from size, temperature, insolation and period
func Habitability(rec models.StarSystemRecord, rng Random) float64 {
	score := 0.0
	switch {
	case rec.PlanetRadius >= 0.8 && rec.PlanetRadius <= 1.5:
		score += 0.3
	case rec.PlanetRadius >= 0.5 && rec.PlanetRadius <= 2.0:
		score += 0.15
	}
	switch {
	case rec.EquilibriumTemp >= 200 && rec.EquilibriumTemp <= 320:
		score += 0.3
	case rec.EquilibriumTemp >= 150 && rec.EquilibriumTemp <= 400:
		score += 0.15
	}
	switch {
	case rec.Insolation >= 0.25 && rec.Insolation <= 4.0:
		score += 0.2
	case rec.Insolation >= 0.1 && rec.Insolation <= 10.0:
		score += 0.1
	}
	if rec.Period >= 10 && rec.Period <= 500 {
		score += 0.1
	}
	score += rec.Score * 0.1
	score += uniform(rng, -0.08, 0.08)
	return round(clamp(score, 0, 1), 3)
}

var namedRegions = []struct {
	raMin, raMax   float64
	decMin, decMax float64
	host           string
	suffixes       []string
}{
	{340, 350, -10, 0, "TRAPPIST-1", []string{"b", "c", "d", "e", "f", "g", "h"}},
	{280, 290, 40, 50, "Kepler-62", []string{"e", "f", "g"}},
	{60, 70, -25, -15, "TESS-14", []string{"b", "c"}},
}

// PlanetName derives a plausible designation from the sky position
func PlanetName(rec models.StarSystemRecord, rng Random) string {
	for _, r := range namedRegions {
		if rec.RA >= r.raMin && rec.RA <= r.raMax && rec.Dec >= r.decMin && rec.Dec <= r.decMax {
			return r.host + " " + r.suffixes[rng.Intn(len(r.suffixes))]
		}
	}
	return fmt.Sprintf("KOI-%d%d", int(rec.RA), randint(rng, 100, 999))
}

// Distance estimates light-years from the stellar radius
func Distance(rec models.StarSystemRecord, rng Random) float64 {
	base := 1000.0
	if rec.StellarRadius < 1 {
		base = 200
	}
	return round(base*uniform(rng, 0.85, 1.15), 1)
}

// Classify returns a disposition label and its confidence from the KOI score
func Classify(rec models.StarSystemRecord) (string, float64) {
	var label string
	switch {
	case rec.Score >= 0.8:
		label = "CONFIRMED"
	case rec.Score >= 0.4:
		label = "CANDIDATE"
	default:
		label = "FALSE POSITIVE"
	}
	confidence := clamp(0.5+math.Abs(rec.Score-0.5), 0.5, 0.99)
	return label, round(confidence, 3)
}

// Predict builds the full single-system response
func Predict(rec models.StarSystemRecord, rng Random) models.PredictionResult {
	label, confidence := Classify(rec)
	habitability := Habitability(rec, rng)
	return models.PredictionResult{
		Name:                PlanetName(rec, rng),
		Prediction:          label,
		Distance:            Distance(rec, rng),
		Period:              round(rec.Period, 2),
		Size:                round(rec.PlanetRadius, 2),
		Habitability:        habitability,
		HabitabilityPercent: fmt.Sprintf("%.1f%%", habitability*100),
		Confidence:          confidence,
		ConfidencePercent:   fmt.Sprintf("%.1f%%", confidence*100),
		LightCurve:          LightCurve(rec, rng),
	}
}
