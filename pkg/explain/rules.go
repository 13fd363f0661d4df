package explain

import (
	"fmt"
	"strings"
)

// Thresholds shared by the stock rule sets. A component at or above strong
// counts as a driver; at or below weak it becomes a concern.
const (
	strongComponent = 0.70
	weakComponent   = 0.30
)

// ScoreRules returns the fixed, ordered rule list for the unified score
// engine. The order is part of the output contract.
func ScoreRules() []Rule {
	rules := []Rule{}
	for _, name := range []string{"influence", "quality", "trend", "network_proxy", "consistency"} {
		rules = append(rules, strongComponentRule(name))
	}
	rules = append(rules,
		Rule{
			Name: "risk_high",
			Kind: Concern,
			When: func(f Facts) (string, bool) {
				if !f.RiskHigh {
					return "", false
				}
				return "Risk level is HIGH, applying the maximum risk-level penalty.", true
			},
		},
		Rule{
			Name: "red_flags",
			Kind: Concern,
			When: func(f Facts) (string, bool) {
				if len(f.Flags) == 0 {
					return "", false
				}
				return fmt.Sprintf("Active red flags reduce the score: %s.", strings.Join(f.Flags, ", ")), true
			},
		},
	)
	for _, name := range []string{"influence", "quality", "trend"} {
		rules = append(rules, weakComponentRule(name))
	}
	rules = append(rules,
		defaultedFieldRule("audience_quality_score_0_1", "Connect an audience quality source; the network signal currently uses a neutral default."),
		defaultedFieldRule("authority_proximity_score_0_1", "Run the hops engine for this account; authority proximity currently uses a neutral default."),
		lowConfidenceRule("Supply base_influence, x_score, velocity and acceleration to raise scoring confidence."),
	)
	return rules
}

// AudienceRules returns the fixed, ordered rule list for the audience
// quality engine.
func AudienceRules() []Rule {
	return []Rule{
		strongComponentRule("purity"),
		strongComponentRule("signal_quality"),
		{
			Name: "overlap_pressure",
			Kind: Concern,
			When: func(f Facts) (string, bool) {
				v, ok := componentValue(f, "overlap_pressure")
				if !ok || v < 0.40 {
					return "", false
				}
				return fmt.Sprintf("Audience overlap pressure is elevated (%.2f); follower sets are heavily shared.", v), true
			},
		},
		{
			Name: "bot_risk",
			Kind: Concern,
			When: func(f Facts) (string, bool) {
				v, ok := componentValue(f, "bot_risk")
				if !ok || v < 0.25 {
					return "", false
				}
				return fmt.Sprintf("Behavioral red flags push bot risk to %.2f: %s.", v, strings.Join(f.Flags, ", ")), true
			},
		},
		weakComponentRule("purity"),
		defaultedFieldRule("overlap", "Provide audience overlap statistics to replace the neutral overlap default."),
		{
			Name: "placeholder_followers",
			Kind: Recommendation,
			When: func(f Facts) (string, bool) {
				return "Connect real follower identity data; top-follower and tier-1 fields are placeholders.", true
			},
		},
		lowConfidenceRule("Supply x_score, signal_noise and a larger overlap sample to raise confidence."),
	}
}

// HopsRules returns the fixed, ordered rule list for the hops engine.
func HopsRules() []Rule {
	return []Rule{
		{
			Name: "direct_neighbor",
			Kind: Driver,
			When: func(f Facts) (string, bool) {
				v, ok := componentValue(f, "min_hops")
				if !ok || v != 1 {
					return "", false
				}
				return "Directly connected to at least one top account.", true
			},
		},
		{
			Name: "broad_reach",
			Kind: Driver,
			When: func(f Facts) (string, bool) {
				v, ok := componentValue(f, "reach_ratio")
				if !ok || v < strongComponent {
					return "", false
				}
				return fmt.Sprintf("Reaches %.0f%% of the configured top accounts within the hop limit.", v*100), true
			},
		},
		strongComponentRule("authority_proximity"),
		{
			Name: "poor_reach",
			Kind: Concern,
			When: func(f Facts) (string, bool) {
				v, ok := componentValue(f, "reach_ratio")
				if !ok || v > weakComponent {
					return "", false
				}
				return "Most top accounts are unreachable within the hop limit.", true
			},
		},
		{
			Name: "weak_paths",
			Kind: Concern,
			When: func(f Facts) (string, bool) {
				v, ok := componentValue(f, "best_path_strength")
				if !ok || v == 0 || v > weakComponent {
					return "", false
				}
				return fmt.Sprintf("Connections to top accounts run through weak edges (best path strength %.2f).", v), true
			},
		},
		lowConfidenceRule("Materialize a wider graph or lower edge_min_strength to reach more top accounts."),
	}
}

func strongComponentRule(name string) Rule {
	return Rule{
		Name: "strong_" + name,
		Kind: Driver,
		When: func(f Facts) (string, bool) {
			v, ok := componentValue(f, name)
			if !ok || v < strongComponent {
				return "", false
			}
			return fmt.Sprintf("Strong %s (%.2f).", name, v), true
		},
	}
}

func weakComponentRule(name string) Rule {
	return Rule{
		Name: "weak_" + name,
		Kind: Concern,
		When: func(f Facts) (string, bool) {
			v, ok := componentValue(f, name)
			if !ok || v > weakComponent {
				return "", false
			}
			return fmt.Sprintf("Weak %s (%.2f) drags the score down.", name, v), true
		},
	}
}

func defaultedFieldRule(field, text string) Rule {
	return Rule{
		Name: "defaulted_" + field,
		Kind: Recommendation,
		When: func(f Facts) (string, bool) {
			for _, d := range f.Defaulted {
				if d == field {
					return text, true
				}
			}
			return "", false
		},
	}
}

func lowConfidenceRule(text string) Rule {
	return Rule{
		Name: "low_confidence",
		Kind: Recommendation,
		When: func(f Facts) (string, bool) {
			if f.Confidence != "LOW" {
				return "", false
			}
			return text, true
		},
	}
}

func componentValue(f Facts, name string) (float64, bool) {
	for _, c := range f.Components {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}
