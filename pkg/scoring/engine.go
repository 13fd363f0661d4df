package scoring

import (
	"fmt"
	"math"

	"github.com/credlens/credlens/pkg/explain"
)

// neutralProxy substitutes for an absent network-side signal. Absence lowers
// the confidence tier and surfaces a recommendation; it never zeroes the math.
const neutralProxy = 0.5

// Compute runs the unified score engine over one account. Pure function of
// (input, config snapshot): identical inputs always yield identical output.
func Compute(in AccountMetricsInput, cfg *Config) (*TwitterScoreResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config snapshot is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	influence := neutralProxy
	if in.BaseInfluence != nil {
		influence = clamp01(*in.BaseInfluence / 1000)
	}
	comp := Components{
		Influence:   influence,
		Quality:     quality(in.XScore, in.SignalNoise),
		Trend:       trend(in.Velocity, in.Acceleration),
		Consistency: valueOr(in.Consistency, neutralProxy),
	}

	var defaulted []string
	comp.NetworkProxy, defaulted = NetworkProxy(in.AudienceQuality, in.AuthorityProximity)
	if in.Consistency == nil {
		defaulted = append(defaulted, "consistency_0_1")
	}

	total := cfg.Weights.Influence*comp.Influence +
		cfg.Weights.Quality*comp.Quality +
		cfg.Weights.Trend*comp.Trend +
		cfg.Weights.NetworkProxy*comp.NetworkProxy +
		cfg.Weights.Consistency*comp.Consistency

	penalty := cfg.RiskPenalties[in.RiskLevel]
	for _, flag := range in.RedFlags {
		penalty += cfg.RedFlagPenalties[flag]
	}
	if penalty > cfg.MaxTotalPenalty {
		penalty = cfg.MaxTotalPenalty
	}
	comp.RiskPenalty = penalty

	final := total * (1 - penalty)
	score1000 := int(math.Round(final * 1000))
	if score1000 < 0 {
		score1000 = 0
	}
	if score1000 > 1000 {
		score1000 = 1000
	}

	conf := scoreConfidence(in)

	result := &TwitterScoreResult{
		AccountID:        in.AccountID,
		TwitterScore1000: score1000,
		Grade:            cfg.GradeForScore(score1000),
		Confidence:       conf,
		Components:       comp,
		Meta: Meta{
			DataSources:     dataSources(in),
			DefaultedFields: defaulted,
		},
	}
	result.Explain = explain.Generate(explain.Facts{
		Subject: in.AccountID,
		Components: []explain.Component{
			{Name: "influence", Value: comp.Influence},
			{Name: "quality", Value: comp.Quality},
			{Name: "trend", Value: comp.Trend},
			{Name: "network_proxy", Value: comp.NetworkProxy},
			{Name: "consistency", Value: comp.Consistency},
		},
		Flags:      flagStrings(in.RedFlags),
		RiskHigh:   in.RiskLevel == RiskHigh,
		Confidence: string(conf),
		Defaulted:  defaulted,
		Band:       explain.BandForScore(final),
	}, explain.ScoreRules())

	return result, nil
}

// NetworkProxy blends audience quality and authority proximity into the
// single network signal: 0.65*audience + 0.35*proximity, each side falling
// back to a neutral 0.5 when not supplied. The returned list names the
// fields that were defaulted.
func NetworkProxy(audienceQuality, authorityProximity *float64) (float64, []string) {
	var defaulted []string
	aq := neutralProxy
	if audienceQuality != nil {
		aq = *audienceQuality
	} else {
		defaulted = append(defaulted, "audience_quality_score_0_1")
	}
	ap := neutralProxy
	if authorityProximity != nil {
		ap = *authorityProximity
	} else {
		defaulted = append(defaulted, "authority_proximity_score_0_1")
	}
	return 0.65*aq + 0.35*ap, defaulted
}

// Validate rejects out-of-range numeric fields and unknown enum keys before
// any computation. Missing optional metrics are never errors.
func (in AccountMetricsInput) Validate() error {
	checks := []struct {
		name     string
		v        *float64
		min, max float64
	}{
		{"base_influence", in.BaseInfluence, 0, 1000},
		{"x_score", in.XScore, 0, 1000},
		{"signal_noise", in.SignalNoise, 0, 10},
		{"velocity", in.Velocity, -100, 100},
		{"acceleration", in.Acceleration, -100, 100},
		{"consistency_0_1", in.Consistency, 0, 1},
		{"audience_quality_score_0_1", in.AudienceQuality, 0, 1},
		{"authority_proximity_score_0_1", in.AuthorityProximity, 0, 1},
	}
	for _, c := range checks {
		if c.v != nil && (*c.v < c.min || *c.v > c.max) {
			return &ValidationError{
				Field:  c.name,
				Reason: fmt.Sprintf("%f outside [%g,%g]", *c.v, c.min, c.max),
			}
		}
	}
	if _, err := ParseRiskLevel(string(in.RiskLevel)); err != nil {
		return err
	}
	for _, f := range in.RedFlags {
		if _, err := ParseRedFlag(string(f)); err != nil {
			return err
		}
	}
	return nil
}

// scoreConfidence applies the field-presence rules: HIGH needs all four core
// metrics, MED needs base_influence and x_score, anything else is LOW.
func scoreConfidence(in AccountMetricsInput) Confidence {
	if in.BaseInfluence != nil && in.XScore != nil && in.Velocity != nil && in.Acceleration != nil {
		return ConfidenceHigh
	}
	if in.BaseInfluence != nil && in.XScore != nil {
		return ConfidenceMed
	}
	return ConfidenceLow
}

// quality blends normalized x_score and signal/noise. A single present metric
// carries the component; both absent yields the neutral midpoint.
func quality(xScore, signalNoise *float64) float64 {
	switch {
	case xScore != nil && signalNoise != nil:
		return 0.6*(*xScore/1000) + 0.4*(*signalNoise/10)
	case xScore != nil:
		return *xScore / 1000
	case signalNoise != nil:
		return *signalNoise / 10
	default:
		return neutralProxy
	}
}

// trend blends velocity and acceleration, each mapped so that zero movement
// is a neutral 0.5 and ±100% saturates the range.
func trend(velocity, acceleration *float64) float64 {
	switch {
	case velocity != nil && acceleration != nil:
		return 0.6*trendNorm(*velocity) + 0.4*trendNorm(*acceleration)
	case velocity != nil:
		return trendNorm(*velocity)
	case acceleration != nil:
		return trendNorm(*acceleration)
	default:
		return neutralProxy
	}
}

func trendNorm(v float64) float64 {
	return clamp01(0.5 + v/200)
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func dataSources(in AccountMetricsInput) []string {
	sources := []string{"account_metrics"}
	if in.AudienceQuality != nil {
		sources = append(sources, "audience_quality")
	}
	if in.AuthorityProximity != nil {
		sources = append(sources, "authority_proximity")
	}
	return sources
}

func flagStrings(flags []RedFlag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, string(f))
	}
	return out
}
