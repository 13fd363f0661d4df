// Package scoring implements the Credlens unified score engine.
// It turns raw account metrics and pre-computed network signals into a single
// explainable 0-1000 credibility score with a grade and confidence tier.
package scoring

import (
	"fmt"

	"github.com/credlens/credlens/pkg/explain"
)

// RiskLevel is the coarse risk classification supplied by upstream analysis.
type RiskLevel string

const (
	RiskLow  RiskLevel = "LOW"
	RiskMed  RiskLevel = "MED"
	RiskHigh RiskLevel = "HIGH"
)

// ParseRiskLevel validates a risk level tag. Empty means "not supplied".
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case "", RiskLow, RiskMed, RiskHigh:
		return RiskLevel(s), nil
	}
	return "", &ValidationError{Field: "risk_level", Reason: fmt.Sprintf("unknown risk level %q", s)}
}

// RedFlag is a named behavioral risk indicator. The set is closed: unknown
// flag keys are rejected at validation time rather than silently ignored.
type RedFlag string

const (
	FlagLikeHeavy       RedFlag = "LIKE_HEAVY"
	FlagRepostFarm      RedFlag = "REPOST_FARM"
	FlagBotLikePattern  RedFlag = "BOT_LIKE_PATTERN"
	FlagAudienceOverlap RedFlag = "AUDIENCE_OVERLAP"
	FlagViralSpike      RedFlag = "VIRAL_SPIKE"
	FlagFakeEngagement  RedFlag = "FAKE_ENGAGEMENT"
)

// KnownRedFlags returns the closed red-flag set in stable order.
func KnownRedFlags() []RedFlag {
	return []RedFlag{
		FlagLikeHeavy,
		FlagRepostFarm,
		FlagBotLikePattern,
		FlagAudienceOverlap,
		FlagViralSpike,
		FlagFakeEngagement,
	}
}

// ParseRedFlag validates a red-flag key against the closed set.
func ParseRedFlag(s string) (RedFlag, error) {
	for _, f := range KnownRedFlags() {
		if RedFlag(s) == f {
			return f, nil
		}
	}
	return "", &ValidationError{Field: "red_flags", Reason: fmt.Sprintf("unknown red flag %q", s)}
}

// Confidence reflects how many of the required input metrics were actually
// supplied; it never reflects the score itself.
type Confidence string

const (
	ConfidenceHigh Confidence = "HIGH"
	ConfidenceMed  Confidence = "MED"
	ConfidenceLow  Confidence = "LOW"
)

// ValidationError is a field-scoped input rejection. Engines return it before
// any computation happens; missing optional metrics are never validation
// errors (they lower the confidence tier instead).
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AccountMetricsInput is the unified score request. All numeric metrics are
// optional; a nil pointer is an explicit "unknown" and is never defaulted to
// zero for scoring purposes.
type AccountMetricsInput struct {
	AccountID          string    `json:"account_id"`
	BaseInfluence      *float64  `json:"base_influence,omitempty"`      // 0-1000
	XScore             *float64  `json:"x_score,omitempty"`             // 0-1000
	SignalNoise        *float64  `json:"signal_noise,omitempty"`        // 0-10
	Velocity           *float64  `json:"velocity,omitempty"`            // percent, -100..100
	Acceleration       *float64  `json:"acceleration,omitempty"`        // percent, -100..100
	Consistency        *float64  `json:"consistency_0_1,omitempty"`     // 0-1
	RiskLevel          RiskLevel `json:"risk_level,omitempty"`
	RedFlags           []RedFlag `json:"red_flags,omitempty"`
	AudienceQuality    *float64  `json:"audience_quality_score_0_1,omitempty"`
	AuthorityProximity *float64  `json:"authority_proximity_score_0_1,omitempty"`
}

// Components holds the normalized per-component values, each in [0,1] before
// weighting, plus the applied risk penalty.
type Components struct {
	Influence    float64 `json:"influence"`
	Quality      float64 `json:"quality"`
	Trend        float64 `json:"trend"`
	NetworkProxy float64 `json:"network_proxy"`
	Consistency  float64 `json:"consistency"`
	RiskPenalty  float64 `json:"risk_penalty"`
}

// Meta records provenance for a computed score.
type Meta struct {
	DataSources     []string `json:"data_sources"`
	DefaultedFields []string `json:"defaulted_fields,omitempty"`
	ConfigVersion   int      `json:"config_version,omitempty"`
}

// TwitterScoreResult is the unified score engine output.
type TwitterScoreResult struct {
	AccountID        string              `json:"account_id"`
	TwitterScore1000 int                 `json:"twitter_score_1000"`
	Grade            string              `json:"grade"`
	Confidence       Confidence          `json:"confidence"`
	Components       Components          `json:"components"`
	Explain          explain.Explanation `json:"explain"`
	Meta             Meta                `json:"meta"`
}
