package hunt

import (
	"echolens/internal/charts"
	"echolens/internal/view"
)

// Phase is the lifecycle stage of the console
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Mission status line and central placeholder texts
const (
	StatusStandby      = "STANDBY"
	StatusTransmitting = "TRANSMITTING"
	StatusComplete     = "ANALYSIS COMPLETE"
	StatusFailed       = "CONNECTION FAILED"

	PlaceholderIdle     = "Select a star system and begin the hunt."
	PlaceholderDetected = "ECHO DETECTED! PROFILING..."
	PlaceholderFailure  = "Error: Connection to AI core lost."
)

// UIState is a snapshot of everything the console page shows.
// Chart and Profile are replaced, never mutated, so snapshots may share them.
type UIState struct {
	Phase          Phase  `json:"phase"`
	TriggerEnabled bool   `json:"trigger_enabled"`
	MissionStatus  string `json:"mission_status"`
	Placeholder    string `json:"placeholder"`
	ChartVisible   bool   `json:"chart_visible"`
	// CardVisible stays set once a profile has been revealed: a new hunt or a
	// failure keeps the previous card on screen until the next reveal replaces it.
	CardVisible bool               `json:"card_visible"`
	SystemID    string             `json:"system_id,omitempty"`
	Seq         uint64             `json:"seq"`
	Chart       *charts.LightCurve `json:"chart,omitempty"`
	Profile     *view.ProfileCard  `json:"profile,omitempty"`
}

func initialState() UIState {
	return UIState{
		Phase:          PhaseIdle,
		TriggerEnabled: true,
		MissionStatus:  StatusStandby,
		Placeholder:    PlaceholderIdle,
	}
}
