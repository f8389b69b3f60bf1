// Package llm writes the mission briefing stored with every archived hunt.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"text/template"

	"github.com/dustin/go-humanize"

	"echolens/internal/logger"
	"echolens/internal/models"
)

// Briefer writes a markdown briefing for a hunt
type Briefer interface {
	Briefing(ctx context.Context, rec models.HuntRecord) (string, error)
}

var briefingTemplate = template.Must(template.New("briefing").Funcs(template.FuncMap{
	"num":     formatNumber,
	"percent": percent,
	"verdict": verdict,
}).Parse(`# Mission Briefing: {{.Result.Name}}

Target system **{{.Request.Name}}** was profiled on {{.Timestamp.UTC.Format "2006-01-02 15:04 UTC"}}.

**Classification:** {{.Result.Prediction}} ({{percent .Result.Confidence .Result.ConfidencePercent}} confidence)

| Parameter | Value |
|---|---|
| Distance | {{num .Result.Distance}} light-years |
| Orbital period | {{num .Result.Period}} days |
| Planet size | {{num .Result.Size}}x Earth |
| Equilibrium temperature | {{num .Request.EquilibriumTemp}} K |
| Insolation | {{num .Request.Insolation}}x Earth |
| Habitability | {{percent .Result.Habitability .Result.HabitabilityPercent}} |

{{verdict .Result.Habitability}}
`))

// TemplateBriefer renders a fixed markdown briefing without any remote call
type TemplateBriefer struct{}

// Briefing renders the template
func (TemplateBriefer) Briefing(_ context.Context, rec models.HuntRecord) (string, error) {
	var buf bytes.Buffer
	if err := briefingTemplate.Execute(&buf, rec); err != nil {
		return "", fmt.Errorf("failed to render briefing: %w", err)
	}
	return buf.String(), nil
}

func formatNumber(v float64) string {
	if v >= 1000 {
		return humanize.CommafWithDigits(v, 2)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func percent(v float64, given string) string {
	if given != "" {
		return given
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

func verdict(habitability float64) string {
	switch {
	case habitability >= 0.7:
		return "Conditions look promising. Flag this world for follow-up spectroscopy."
	case habitability >= 0.4:
		return "Marginal conditions. Worth a second look when telescope time allows."
	default:
		return "A hostile world. Log the detection and move on to the next target."
	}
}

// Narrator prefers the language model and falls back to the template
type Narrator struct {
	primary  Briefer
	fallback Briefer
	log      *logger.Logger
}

// NewNarrator uses OpenAI when apiKey is set, the template otherwise
func NewNarrator(apiKey, model string) *Narrator {
	var primary Briefer
	if apiKey != "" {
		primary = NewOpenAIClient(apiKey, model)
	}
	return newNarrator(primary)
}

func newNarrator(primary Briefer) *Narrator {
	return &Narrator{
		primary:  primary,
		fallback: TemplateBriefer{},
		log:      logger.GetGlobalLogger().WithComponent("llm"),
	}
}

// UsesModel reports whether briefings come from the language model
func (n *Narrator) UsesModel() bool {
	return n.primary != nil
}

// Briefing never fails for lack of a model: model errors fall back to the template.
func (n *Narrator) Briefing(ctx context.Context, rec models.HuntRecord) (string, error) {
	if n.primary != nil {
		briefing, err := n.primary.Briefing(ctx, rec)
		if err == nil {
			return briefing, nil
		}
		n.log.Warn("Briefing model failed, using template", map[string]interface{}{
			"system": rec.SystemID,
			"error":  err.Error(),
		})
	}
	return n.fallback.Briefing(ctx, rec)
}
