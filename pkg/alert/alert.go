// Package alert defines the downstream notification record and its fixed
// rendering templates. The scoring core fills these records; delivery is
// someone else's job.
package alert

import "fmt"

// Type is the closed alert variant set. Adding a variant means extending
// this enum and the switch in Format; there is no string fallthrough.
type Type int

const (
	// TypeDefault is the rendering for unrecognized inbound tags.
	TypeDefault Type = iota
	TypeTest
	TypeEarlyBreakout
	TypeStrongAcceleration
	TypeTrendReversal
)

// ParseType maps an inbound tag to a variant. Unrecognized tags map to
// TypeDefault rather than erroring; the default template names the raw tag.
func ParseType(tag string) Type {
	switch tag {
	case "TEST":
		return TypeTest
	case "EARLY_BREAKOUT":
		return TypeEarlyBreakout
	case "STRONG_ACCELERATION":
		return TypeStrongAcceleration
	case "TREND_REVERSAL":
		return TypeTrendReversal
	default:
		return TypeDefault
	}
}

// String returns the wire tag for a variant.
func (t Type) String() string {
	switch t {
	case TypeTest:
		return "TEST"
	case TypeEarlyBreakout:
		return "EARLY_BREAKOUT"
	case TypeStrongAcceleration:
		return "STRONG_ACCELERATION"
	case TypeTrendReversal:
		return "TREND_REVERSAL"
	default:
		return "DEFAULT"
	}
}

// Record carries the score fields an alert template may render. The core
// supplies these; it owns none of the delivery.
type Record struct {
	Type            Type    `json:"type"`
	RawTag          string  `json:"raw_tag,omitempty"` // original inbound tag, kept for the default template
	AccountID       string  `json:"account_id"`
	InfluenceScore  float64 `json:"influence_score"`
	Velocity        float64 `json:"velocity"`
	AccelerationPct float64 `json:"acceleration_pct"`
	AudienceProfile string  `json:"audience_profile"`
	RiskTier        string  `json:"risk_tier"`
	Trend           string  `json:"trend"`
	PrevTrend       string  `json:"prev_trend"`
	Summary         string  `json:"summary"`
}

// Format renders one of the five fixed templates for the record. The switch
// is exhaustive over the variant set.
func Format(r Record) string {
	switch r.Type {
	case TypeTest:
		return fmt.Sprintf("[TEST] Alert pipeline check for %s. Influence %.0f, risk %s. %s",
			r.AccountID, r.InfluenceScore, r.RiskTier, r.Summary)
	case TypeEarlyBreakout:
		return fmt.Sprintf("Early breakout: %s is moving. Velocity %.1f%%, influence %.0f, audience %s, risk %s. %s",
			r.AccountID, r.Velocity, r.InfluenceScore, r.AudienceProfile, r.RiskTier, r.Summary)
	case TypeStrongAcceleration:
		return fmt.Sprintf("Strong acceleration: %s is accelerating at %.1f%% (velocity %.1f%%). Influence %.0f, risk %s. %s",
			r.AccountID, r.AccelerationPct, r.Velocity, r.InfluenceScore, r.RiskTier, r.Summary)
	case TypeTrendReversal:
		return fmt.Sprintf("Trend reversal: %s flipped %s -> %s. Influence %.0f, audience %s, risk %s. %s",
			r.AccountID, r.PrevTrend, r.Trend, r.InfluenceScore, r.AudienceProfile, r.RiskTier, r.Summary)
	case TypeDefault:
		return fmt.Sprintf("Update (%s): %s at influence %.0f, risk %s. %s",
			r.RawTag, r.AccountID, r.InfluenceScore, r.RiskTier, r.Summary)
	}
	// Unreachable with a valid Type; kept so the compiler enforces returns.
	return ""
}
