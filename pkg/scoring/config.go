package scoring

import (
	"fmt"
	"math"
)

// weightSumTolerance is the allowed deviation when checking that a weight
// table sums to 1.0.
const weightSumTolerance = 0.001

// Weights maps the unified score components to their aggregation weights.
// Must sum to 1.0 within tolerance.
type Weights struct {
	Influence    float64 `json:"influence" yaml:"influence"`
	Quality      float64 `json:"quality" yaml:"quality"`
	Trend        float64 `json:"trend" yaml:"trend"`
	NetworkProxy float64 `json:"network_proxy" yaml:"network_proxy"`
	Consistency  float64 `json:"consistency" yaml:"consistency"`
}

func (w Weights) sum() float64 {
	return w.Influence + w.Quality + w.Trend + w.NetworkProxy + w.Consistency
}

// AudienceWeights maps the audience quality components to their weights.
// Must sum to 1.0 within tolerance.
type AudienceWeights struct {
	Purity              float64 `json:"purity" yaml:"purity"`
	SmartFollowersProxy float64 `json:"smart_followers_proxy" yaml:"smart_followers_proxy"`
	SignalQuality       float64 `json:"signal_quality" yaml:"signal_quality"`
	Consistency         float64 `json:"consistency" yaml:"consistency"`
}

func (w AudienceWeights) sum() float64 {
	return w.Purity + w.SmartFollowersProxy + w.SignalQuality + w.Consistency
}

// GradeThreshold is one entry of the ordered grade table: scores at or above
// Min (and below the previous entry's Min) receive Grade.
type GradeThreshold struct {
	Grade string `json:"grade" yaml:"grade"`
	Min   int    `json:"min" yaml:"min"`
}

// BatchCaps limits batch request sizes per engine.
type BatchCaps struct {
	Score    int `json:"score" yaml:"score"`
	Audience int `json:"audience" yaml:"audience"`
	Hops     int `json:"hops" yaml:"hops"`
}

// Config is one immutable scoring configuration snapshot. Every engine call
// receives a single snapshot and uses it consistently for the whole
// computation; updates produce a new validated value, never an in-place
// mutation.
type Config struct {
	Weights          Weights               `json:"weights" yaml:"weights"`
	AudienceWeights  AudienceWeights       `json:"audience_weights" yaml:"audience_weights"`
	RiskPenalties    map[RiskLevel]float64 `json:"risk_penalties" yaml:"risk_penalties"`
	RedFlagPenalties map[RedFlag]float64   `json:"red_flag_penalties" yaml:"red_flag_penalties"`
	AudienceRisk     map[RedFlag]float64   `json:"audience_risk" yaml:"audience_risk"`
	MaxTotalPenalty  float64               `json:"max_total_penalty" yaml:"max_total_penalty"`
	GradeThresholds  []GradeThreshold      `json:"grade_thresholds" yaml:"grade_thresholds"`

	HopWeights      map[int]float64 `json:"hop_weights" yaml:"hop_weights"`
	StrengthWeight  float64         `json:"strength_weight" yaml:"strength_weight"`
	EdgeMinStrength float64         `json:"edge_min_strength" yaml:"edge_min_strength"`
	MaxHops         int             `json:"max_hops" yaml:"max_hops"`

	BatchCaps           BatchCaps `json:"batch_caps" yaml:"batch_caps"`
	ClosestTargetsLimit int       `json:"closest_targets_limit" yaml:"closest_targets_limit"`
}

// Defaults returns the tuned default configuration snapshot.
func Defaults() *Config {
	return &Config{
		Weights: Weights{
			Influence:    0.30,
			Quality:      0.25,
			Trend:        0.15,
			NetworkProxy: 0.20,
			Consistency:  0.10,
		},
		AudienceWeights: AudienceWeights{
			Purity:              0.45,
			SmartFollowersProxy: 0.30,
			SignalQuality:       0.15,
			Consistency:         0.10,
		},
		RiskPenalties: map[RiskLevel]float64{
			RiskLow:  0.02,
			RiskMed:  0.08,
			RiskHigh: 0.18,
		},
		RedFlagPenalties: map[RedFlag]float64{
			FlagLikeHeavy:       0.05,
			FlagRepostFarm:      0.12,
			FlagBotLikePattern:  0.15,
			FlagAudienceOverlap: 0.10,
			FlagViralSpike:      0.04,
			FlagFakeEngagement:  0.12,
		},
		AudienceRisk: map[RedFlag]float64{
			FlagLikeHeavy:       0.15,
			FlagRepostFarm:      0.30,
			FlagBotLikePattern:  0.35,
			FlagAudienceOverlap: 0.20,
			FlagViralSpike:      0.10,
			FlagFakeEngagement:  0.30,
		},
		MaxTotalPenalty: 0.35,
		GradeThresholds: []GradeThreshold{
			{Grade: "S", Min: 850},
			{Grade: "A", Min: 700},
			{Grade: "B", Min: 550},
			{Grade: "C", Min: 400},
			{Grade: "D", Min: 0},
		},
		HopWeights: map[int]float64{
			1: 1.00,
			2: 0.65,
			3: 0.40,
		},
		StrengthWeight:  0.35,
		EdgeMinStrength: 0.35,
		MaxHops:         2,
		BatchCaps: BatchCaps{
			Score:    100,
			Audience: 100,
			Hops:     50,
		},
		ClosestTargetsLimit: 5,
	}
}

// Validate checks the full snapshot. A config that fails validation must
// never be published; callers keep the previous snapshot on failure.
func (c *Config) Validate() error {
	if s := c.Weights.sum(); math.Abs(s-1.0) > weightSumTolerance {
		return &ValidationError{Field: "weights", Reason: fmt.Sprintf("must sum to 1.0, got %.4f", s)}
	}
	if s := c.AudienceWeights.sum(); math.Abs(s-1.0) > weightSumTolerance {
		return &ValidationError{Field: "audience_weights", Reason: fmt.Sprintf("must sum to 1.0, got %.4f", s)}
	}

	for level, p := range c.RiskPenalties {
		if _, err := ParseRiskLevel(string(level)); err != nil || level == "" {
			return &ValidationError{Field: "risk_penalties", Reason: fmt.Sprintf("unknown risk level %q", level)}
		}
		if p < 0 || p > 1 {
			return &ValidationError{Field: "risk_penalties", Reason: fmt.Sprintf("%s: penalty %f outside [0,1]", level, p)}
		}
	}
	if err := validateFlagTable("red_flag_penalties", c.RedFlagPenalties); err != nil {
		return err
	}
	if err := validateFlagTable("audience_risk", c.AudienceRisk); err != nil {
		return err
	}

	if c.MaxTotalPenalty <= 0 || c.MaxTotalPenalty > 1 {
		return &ValidationError{Field: "max_total_penalty", Reason: fmt.Sprintf("%f outside (0,1]", c.MaxTotalPenalty)}
	}

	if len(c.GradeThresholds) == 0 {
		return &ValidationError{Field: "grade_thresholds", Reason: "at least one threshold required"}
	}
	for i, t := range c.GradeThresholds {
		if t.Grade == "" {
			return &ValidationError{Field: "grade_thresholds", Reason: fmt.Sprintf("entry %d: empty grade", i)}
		}
		if t.Min < 0 || t.Min > 1000 {
			return &ValidationError{Field: "grade_thresholds", Reason: fmt.Sprintf("%s: min %d outside [0,1000]", t.Grade, t.Min)}
		}
		if i > 0 && t.Min >= c.GradeThresholds[i-1].Min {
			return &ValidationError{Field: "grade_thresholds", Reason: fmt.Sprintf("cutoffs must strictly decrease: %s (%d) follows %d", t.Grade, t.Min, c.GradeThresholds[i-1].Min)}
		}
	}
	// The last cutoff must be 0 so the table covers [0,1000] with no gaps.
	if last := c.GradeThresholds[len(c.GradeThresholds)-1]; last.Min != 0 {
		return &ValidationError{Field: "grade_thresholds", Reason: fmt.Sprintf("lowest cutoff must be 0, got %d", last.Min)}
	}

	for hop, w := range c.HopWeights {
		if hop < 1 || hop > 3 {
			return &ValidationError{Field: "hop_weights", Reason: fmt.Sprintf("hop %d outside [1,3]", hop)}
		}
		if w < 0 || w > 1 {
			return &ValidationError{Field: "hop_weights", Reason: fmt.Sprintf("hop %d: weight %f outside [0,1]", hop, w)}
		}
	}
	for hop := 1; hop <= 3; hop++ {
		if _, ok := c.HopWeights[hop]; !ok {
			return &ValidationError{Field: "hop_weights", Reason: fmt.Sprintf("missing weight for hop %d", hop)}
		}
	}

	if c.StrengthWeight < 0 || c.StrengthWeight > 1 {
		return &ValidationError{Field: "strength_weight", Reason: fmt.Sprintf("%f outside [0,1]", c.StrengthWeight)}
	}
	if c.EdgeMinStrength < 0 || c.EdgeMinStrength > 1 {
		return &ValidationError{Field: "edge_min_strength", Reason: fmt.Sprintf("%f outside [0,1]", c.EdgeMinStrength)}
	}
	if c.MaxHops < 1 || c.MaxHops > 3 {
		return &ValidationError{Field: "max_hops", Reason: fmt.Sprintf("%d outside {1,2,3}", c.MaxHops)}
	}

	if c.BatchCaps.Score <= 0 || c.BatchCaps.Audience <= 0 || c.BatchCaps.Hops <= 0 {
		return &ValidationError{Field: "batch_caps", Reason: "all caps must be positive"}
	}
	if c.ClosestTargetsLimit <= 0 {
		return &ValidationError{Field: "closest_targets_limit", Reason: "must be positive"}
	}

	return nil
}

func validateFlagTable(field string, table map[RedFlag]float64) error {
	for flag, p := range table {
		if _, err := ParseRedFlag(string(flag)); err != nil {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("unknown red flag %q", flag)}
		}
		if p < 0 || p > 1 {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("%s: weight %f outside [0,1]", flag, p)}
		}
	}
	return nil
}

// GradeForScore maps a 0-1000 score to the grade whose cutoff is the largest
// value at or below it. Assumes a validated threshold table.
func (c *Config) GradeForScore(score1000 int) string {
	for _, t := range c.GradeThresholds {
		if score1000 >= t.Min {
			return t.Grade
		}
	}
	return c.GradeThresholds[len(c.GradeThresholds)-1].Grade
}

// Clone returns a deep copy, used when deriving a new snapshot from an
// existing one before applying updates.
func (c *Config) Clone() *Config {
	out := *c
	out.RiskPenalties = make(map[RiskLevel]float64, len(c.RiskPenalties))
	for k, v := range c.RiskPenalties {
		out.RiskPenalties[k] = v
	}
	out.RedFlagPenalties = make(map[RedFlag]float64, len(c.RedFlagPenalties))
	for k, v := range c.RedFlagPenalties {
		out.RedFlagPenalties[k] = v
	}
	out.AudienceRisk = make(map[RedFlag]float64, len(c.AudienceRisk))
	for k, v := range c.AudienceRisk {
		out.AudienceRisk[k] = v
	}
	out.GradeThresholds = append([]GradeThreshold(nil), c.GradeThresholds...)
	out.HopWeights = make(map[int]float64, len(c.HopWeights))
	for k, v := range c.HopWeights {
		out.HopWeights[k] = v
	}
	return &out
}
