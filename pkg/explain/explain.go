// Package explain implements the deterministic explainability generator
// shared by the score, audience quality, and hops engines. It evaluates an
// ordered rule list against computed facts; identical facts always produce
// identical output.
package explain

import "fmt"

// Kind classifies where a rule's finding lands in the explanation.
type Kind int

const (
	Driver Kind = iota
	Concern
	Recommendation
)

// Explanation is the human-readable narration of an engine result.
type Explanation struct {
	Summary         string   `json:"summary"`
	Drivers         []string `json:"drivers"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}

// Component is a named magnitude in [0,1]. Facts carry components as an
// ordered slice so rule evaluation never depends on map iteration order.
type Component struct {
	Name  string
	Value float64
}

// Facts is the engine-agnostic input to the generator.
type Facts struct {
	Subject    string      // account ID, used in summaries
	Components []Component // ordered; first wins dominance ties
	Flags      []string    // active red-flag keys, caller-ordered
	RiskHigh   bool
	Confidence string // HIGH, MED, LOW
	Defaulted  []string
	Band       string // high, mid, low
}

// Dominant returns the largest component; ties go to the earlier entry.
func (f Facts) Dominant() Component {
	var best Component
	for i, c := range f.Components {
		if i == 0 || c.Value > best.Value {
			best = c
		}
	}
	return best
}

// Rule is one deterministic explanation rule. When returns the finding text
// and whether the rule fires; a firing rule appends exactly one entry.
type Rule struct {
	Name string
	Kind Kind
	When func(f Facts) (string, bool)
}

// Generate evaluates rules in order against the facts and assembles the
// explanation, including the templated one-line summary.
func Generate(f Facts, rules []Rule) Explanation {
	out := Explanation{Summary: summarize(f)}
	for _, r := range rules {
		text, ok := r.When(f)
		if !ok {
			continue
		}
		switch r.Kind {
		case Driver:
			out.Drivers = append(out.Drivers, text)
		case Concern:
			out.Concerns = append(out.Concerns, text)
		case Recommendation:
			out.Recommendations = append(out.Recommendations, text)
		}
	}
	return out
}

// summarize picks one sentence from a fixed template set keyed by score band,
// confidence, and dominant driver. Not free-form generation.
func summarize(f Facts) string {
	subject := f.Subject
	if subject == "" {
		subject = "This account"
	}
	dom := f.Dominant().Name
	if dom == "" {
		dom = "available signals"
	}

	switch {
	case f.Band == "high" && f.Confidence == "HIGH":
		return fmt.Sprintf("%s scores in the top band, led by %s.", subject, dom)
	case f.Band == "high":
		return fmt.Sprintf("%s scores in the top band, led by %s, but the inputs are incomplete.", subject, dom)
	case f.Band == "mid" && f.Confidence == "LOW":
		return fmt.Sprintf("%s sits mid-band on limited data; supply more metrics to firm this up.", subject)
	case f.Band == "mid":
		return fmt.Sprintf("%s sits mid-band, with %s as the strongest signal.", subject, dom)
	case f.Confidence == "LOW":
		return fmt.Sprintf("%s scores in the low band on limited data.", subject)
	default:
		return fmt.Sprintf("%s scores in the low band; %s is the strongest remaining signal.", subject, dom)
	}
}

// Band cutoffs for BandForScore.
const (
	BandHighMin = 0.70
	BandMidMin  = 0.45
)

// BandForScore maps a unit-interval score to the summary band.
func BandForScore(score float64) string {
	switch {
	case score >= BandHighMin:
		return "high"
	case score >= BandMidMin:
		return "mid"
	default:
		return "low"
	}
}
