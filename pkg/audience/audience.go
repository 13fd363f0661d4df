// Package audience implements the Credlens audience quality engine. It
// converts overlap statistics, signal metrics and behavioral red flags into a
// purity-based quality score in [0,1].
package audience

import (
	"fmt"

	"github.com/credlens/credlens/pkg/explain"
	"github.com/credlens/credlens/pkg/scoring"
)

// Normalization ceilings for overlap pressure. Jaccard values at or above
// the ceiling saturate the pressure term.
const (
	AvgJaccardCeiling = 0.30
	MaxJaccardCeiling = 0.60
)

// minOverlapSample is the smallest overlap sample that still supports a HIGH
// confidence tier.
const minOverlapSample = 5

// neutralTier1Share is the placeholder tier-1 share until real follower
// identity data is wired in.
const neutralTier1Share = 0.5

// OverlapStats summarizes pairwise audience overlap against comparison
// accounts. Jaccard values live in [0,1]; counts are non-negative.
type OverlapStats struct {
	AvgJaccard float64 `json:"avg_jaccard"`
	MaxJaccard float64 `json:"max_jaccard"`
	AvgShared  float64 `json:"avg_shared"`
	MaxShared  float64 `json:"max_shared"`
	SampleSize int     `json:"sample_size"`
}

// Input is one audience quality request. Overlap is optional: without it the
// engine assumes zero overlap pressure and records the default.
type Input struct {
	AccountID   string            `json:"account_id"`
	XScore      *float64          `json:"x_score,omitempty"`        // 0-1000
	SignalNoise *float64          `json:"signal_noise,omitempty"`   // 0-10
	Consistency *float64          `json:"consistency_0_1,omitempty"`
	RedFlags    []scoring.RedFlag `json:"red_flags,omitempty"`
	Overlap     *OverlapStats     `json:"overlap,omitempty"`
}

// Evidence exposes the intermediate magnitudes behind a quality score.
type Evidence struct {
	OverlapPressure float64  `json:"overlap_pressure_0_1"`
	BotRisk         float64  `json:"bot_risk_0_1"`
	Purity          float64  `json:"purity_0_1"`
	SignalQuality   float64  `json:"signal_quality_0_1"`
	InputsUsed      []string `json:"inputs_used"`
}

// Result is the audience quality engine output. TopFollowersCount and
// Tier1Share are placeholders kept in the output shape so a future
// follower-identity-backed implementation is a drop-in substitute.
type Result struct {
	AccountID         string              `json:"account_id"`
	Score             float64             `json:"audience_quality_score_0_1"`
	Confidence        scoring.Confidence  `json:"confidence"`
	Evidence          Evidence            `json:"evidence"`
	TopFollowersCount int                 `json:"top_followers_count"`
	Tier1Share        float64             `json:"tier1_share_0_1"`
	Explain           explain.Explanation `json:"explain"`
}

// Compute runs the audience quality engine. Pure function of (input, config
// snapshot).
func Compute(in Input, cfg *scoring.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config snapshot is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var defaulted []string

	pressure := 0.0
	if in.Overlap != nil {
		pressure = clamp01(0.6*(in.Overlap.AvgJaccard/AvgJaccardCeiling) + 0.4*(in.Overlap.MaxJaccard/MaxJaccardCeiling))
	} else {
		defaulted = append(defaulted, "overlap")
	}

	botRisk := 0.0
	for _, flag := range in.RedFlags {
		botRisk += cfg.AudienceRisk[flag]
	}
	botRisk = clamp01(botRisk)

	purity := clamp01(1 - (pressure + botRisk))
	signalQuality := signalQuality(in.XScore, in.SignalNoise)
	smartProxy := 0.5*signalQuality + 0.5*purity
	consistency := 0.5
	if in.Consistency != nil {
		consistency = *in.Consistency
	} else {
		defaulted = append(defaulted, "consistency_0_1")
	}

	w := cfg.AudienceWeights
	score := clamp01(w.Purity*purity + w.SmartFollowersProxy*smartProxy + w.SignalQuality*signalQuality + w.Consistency*consistency)

	conf := confidence(in)

	result := &Result{
		AccountID:  in.AccountID,
		Score:      score,
		Confidence: conf,
		Evidence: Evidence{
			OverlapPressure: pressure,
			BotRisk:         botRisk,
			Purity:          purity,
			SignalQuality:   signalQuality,
			InputsUsed:      inputsUsed(in),
		},
		TopFollowersCount: 0,
		Tier1Share:        neutralTier1Share,
	}
	result.Explain = explain.Generate(explain.Facts{
		Subject: in.AccountID,
		Components: []explain.Component{
			{Name: "purity", Value: purity},
			{Name: "signal_quality", Value: signalQuality},
			{Name: "smart_followers_proxy", Value: smartProxy},
			{Name: "overlap_pressure", Value: pressure},
			{Name: "bot_risk", Value: botRisk},
		},
		Flags:      flagStrings(in.RedFlags),
		Confidence: string(conf),
		Defaulted:  defaulted,
		Band:       explain.BandForScore(score),
	}, explain.AudienceRules())

	return result, nil
}

// Validate rejects out-of-range numerics and unknown red-flag keys.
func (in Input) Validate() error {
	if in.XScore != nil && (*in.XScore < 0 || *in.XScore > 1000) {
		return &scoring.ValidationError{Field: "x_score", Reason: fmt.Sprintf("%f outside [0,1000]", *in.XScore)}
	}
	if in.SignalNoise != nil && (*in.SignalNoise < 0 || *in.SignalNoise > 10) {
		return &scoring.ValidationError{Field: "signal_noise", Reason: fmt.Sprintf("%f outside [0,10]", *in.SignalNoise)}
	}
	if in.Consistency != nil && (*in.Consistency < 0 || *in.Consistency > 1) {
		return &scoring.ValidationError{Field: "consistency_0_1", Reason: fmt.Sprintf("%f outside [0,1]", *in.Consistency)}
	}
	for _, f := range in.RedFlags {
		if _, err := scoring.ParseRedFlag(string(f)); err != nil {
			return err
		}
	}
	if o := in.Overlap; o != nil {
		if o.AvgJaccard < 0 || o.AvgJaccard > 1 {
			return &scoring.ValidationError{Field: "overlap.avg_jaccard", Reason: fmt.Sprintf("%f outside [0,1]", o.AvgJaccard)}
		}
		if o.MaxJaccard < 0 || o.MaxJaccard > 1 {
			return &scoring.ValidationError{Field: "overlap.max_jaccard", Reason: fmt.Sprintf("%f outside [0,1]", o.MaxJaccard)}
		}
		if o.AvgShared < 0 || o.MaxShared < 0 || o.SampleSize < 0 {
			return &scoring.ValidationError{Field: "overlap", Reason: "counts must be non-negative"}
		}
	}
	return nil
}

func confidence(in Input) scoring.Confidence {
	if in.XScore != nil && in.SignalNoise != nil && in.Overlap != nil && in.Overlap.SampleSize >= minOverlapSample {
		return scoring.ConfidenceHigh
	}
	if in.XScore != nil {
		return scoring.ConfidenceMed
	}
	return scoring.ConfidenceLow
}

func signalQuality(xScore, signalNoise *float64) float64 {
	switch {
	case xScore != nil && signalNoise != nil:
		return 0.6*(*xScore/1000) + 0.4*(*signalNoise/10)
	case xScore != nil:
		return *xScore / 1000
	case signalNoise != nil:
		return *signalNoise / 10
	default:
		return 0.5
	}
}

func inputsUsed(in Input) []string {
	used := []string{}
	if in.XScore != nil {
		used = append(used, "x_score")
	}
	if in.SignalNoise != nil {
		used = append(used, "signal_noise")
	}
	if in.Consistency != nil {
		used = append(used, "consistency_0_1")
	}
	if len(in.RedFlags) > 0 {
		used = append(used, "red_flags")
	}
	if in.Overlap != nil {
		used = append(used, "overlap")
	}
	return used
}

func flagStrings(flags []scoring.RedFlag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, string(f))
	}
	return out
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
