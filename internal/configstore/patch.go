package configstore

import (
	"github.com/credlens/credlens/pkg/scoring"
)

// Patch is a partial configuration update. Nil fields keep the current
// value; present fields replace their section wholesale. Unknown red-flag or
// risk-level keys surface as validation errors when the merged config is
// checked.
type Patch struct {
	Weights          *scoring.Weights          `json:"weights,omitempty"`
	AudienceWeights  *scoring.AudienceWeights  `json:"audience_weights,omitempty"`
	RiskPenalties    map[string]float64        `json:"risk_penalties,omitempty"`
	RedFlagPenalties map[string]float64        `json:"red_flag_penalties,omitempty"`
	AudienceRisk     map[string]float64        `json:"audience_risk,omitempty"`
	MaxTotalPenalty  *float64                  `json:"max_total_penalty,omitempty"`
	GradeThresholds  []scoring.GradeThreshold  `json:"grade_thresholds,omitempty"`
	HopWeights       map[int]float64           `json:"hop_weights,omitempty"`
	StrengthWeight   *float64                  `json:"strength_weight,omitempty"`
	EdgeMinStrength  *float64                  `json:"edge_min_strength,omitempty"`
	MaxHops          *int                      `json:"max_hops,omitempty"`
	BatchCaps        *scoring.BatchCaps        `json:"batch_caps,omitempty"`
	ClosestTargets   *int                      `json:"closest_targets_limit,omitempty"`
}

// applyTo merges the patch onto a clone of the base config. The caller
// validates the result; applyTo itself never mutates base.
func (p Patch) applyTo(base *scoring.Config) (*scoring.Config, error) {
	next := base.Clone()

	if p.Weights != nil {
		next.Weights = *p.Weights
	}
	if p.AudienceWeights != nil {
		next.AudienceWeights = *p.AudienceWeights
	}
	if p.RiskPenalties != nil {
		table := make(map[scoring.RiskLevel]float64, len(p.RiskPenalties))
		for k, v := range p.RiskPenalties {
			table[scoring.RiskLevel(k)] = v
		}
		next.RiskPenalties = table
	}
	if p.RedFlagPenalties != nil {
		next.RedFlagPenalties = flagTable(p.RedFlagPenalties)
	}
	if p.AudienceRisk != nil {
		next.AudienceRisk = flagTable(p.AudienceRisk)
	}
	if p.MaxTotalPenalty != nil {
		next.MaxTotalPenalty = *p.MaxTotalPenalty
	}
	if p.GradeThresholds != nil {
		next.GradeThresholds = append([]scoring.GradeThreshold(nil), p.GradeThresholds...)
	}
	if p.HopWeights != nil {
		table := make(map[int]float64, len(p.HopWeights))
		for k, v := range p.HopWeights {
			table[k] = v
		}
		next.HopWeights = table
	}
	if p.StrengthWeight != nil {
		next.StrengthWeight = *p.StrengthWeight
	}
	if p.EdgeMinStrength != nil {
		next.EdgeMinStrength = *p.EdgeMinStrength
	}
	if p.MaxHops != nil {
		next.MaxHops = *p.MaxHops
	}
	if p.BatchCaps != nil {
		next.BatchCaps = *p.BatchCaps
	}
	if p.ClosestTargets != nil {
		next.ClosestTargetsLimit = *p.ClosestTargets
	}

	return next, nil
}

func flagTable(in map[string]float64) map[scoring.RedFlag]float64 {
	out := make(map[scoring.RedFlag]float64, len(in))
	for k, v := range in {
		out[scoring.RedFlag(k)] = v
	}
	return out
}
