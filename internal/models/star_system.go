package models

import "fmt"

// StarSystemRecord holds the orbital and stellar parameters of one catalog entry.
// The JSON names match the feature names expected by the prediction endpoint.
type StarSystemRecord struct {
	Name            string  `json:"name" yaml:"name"`
	RA              float64 `json:"ra" yaml:"ra"`                             // right ascension, degrees
	Dec             float64 `json:"dec" yaml:"dec"`                           // declination, degrees
	Period          float64 `json:"koi_period" yaml:"koi_period"`             // orbital period, days
	PlanetRadius    float64 `json:"koi_prad" yaml:"koi_prad"`                 // Earth radii
	StellarMass     float64 `json:"koi_smass" yaml:"koi_smass"`               // solar masses
	StellarRadius   float64 `json:"koi_srad" yaml:"koi_srad"`                 // solar radii
	DistanceOverRad float64 `json:"koi_dor" yaml:"koi_dor"`                   // transit depth proxy
	EquilibriumTemp float64 `json:"koi_teq" yaml:"koi_teq"`                   // kelvin
	Insolation      float64 `json:"koi_insol" yaml:"koi_insol"`               // Earth flux
	Score           float64 `json:"koi_score" yaml:"koi_score"`               // disposition score
	Disposition     float64 `json:"koi_pdisposition" yaml:"koi_pdisposition"` // confidence score
}

// Features returns the numeric fields keyed by their wire name, in request order.
func (r StarSystemRecord) Features() []Feature {
	return []Feature{
		{Name: "ra", Value: r.RA},
		{Name: "dec", Value: r.Dec},
		{Name: "koi_period", Value: r.Period},
		{Name: "koi_prad", Value: r.PlanetRadius},
		{Name: "koi_smass", Value: r.StellarMass},
		{Name: "koi_srad", Value: r.StellarRadius},
		{Name: "koi_dor", Value: r.DistanceOverRad},
		{Name: "koi_teq", Value: r.EquilibriumTemp},
		{Name: "koi_insol", Value: r.Insolation},
		{Name: "koi_score", Value: r.Score},
		{Name: "koi_pdisposition", Value: r.Disposition},
	}
}

// Feature is a single named numeric parameter of a star system.
type Feature struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Validate reports records that cannot be sent to the classifier.
func (r StarSystemRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("star system name is empty")
	}
	if r.StellarRadius <= 0 {
		return fmt.Errorf("star system %q: koi_srad must be positive", r.Name)
	}
	if r.Period <= 0 {
		return fmt.Errorf("star system %q: koi_period must be positive", r.Name)
	}
	if r.PlanetRadius <= 0 {
		return fmt.Errorf("star system %q: koi_prad must be positive", r.Name)
	}
	return nil
}
