package scoring_test

import (
	"testing"

	"github.com/credlens/credlens/pkg/scoring"
)

func TestDefaultsValidate(t *testing.T) {
	if err := scoring.Defaults().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBrokenConfigs(t *testing.T) {
	tests := []struct {
		name  string
		mutate func(*scoring.Config)
	}{
		{"weights not summing to 1", func(c *scoring.Config) { c.Weights.Influence = 0.5 }},
		{"audience weights not summing to 1", func(c *scoring.Config) { c.AudienceWeights.Purity = 0.9 }},
		{"unknown red flag penalty key", func(c *scoring.Config) { c.RedFlagPenalties["MADE_UP"] = 0.1 }},
		{"unknown audience risk key", func(c *scoring.Config) { c.AudienceRisk["MADE_UP"] = 0.1 }},
		{"penalty above 1", func(c *scoring.Config) { c.RiskPenalties[scoring.RiskHigh] = 1.5 }},
		{"max_total_penalty zero", func(c *scoring.Config) { c.MaxTotalPenalty = 0 }},
		{"grade cutoffs not decreasing", func(c *scoring.Config) { c.GradeThresholds[1].Min = 900 }},
		{"lowest grade cutoff nonzero", func(c *scoring.Config) { c.GradeThresholds[len(c.GradeThresholds)-1].Min = 10 }},
		{"empty grade table", func(c *scoring.Config) { c.GradeThresholds = nil }},
		{"missing hop weight", func(c *scoring.Config) { delete(c.HopWeights, 2) }},
		{"hop weight out of range", func(c *scoring.Config) { c.HopWeights[1] = 1.5 }},
		{"max_hops out of range", func(c *scoring.Config) { c.MaxHops = 4 }},
		{"edge_min_strength out of range", func(c *scoring.Config) { c.EdgeMinStrength = -0.1 }},
		{"zero batch cap", func(c *scoring.Config) { c.BatchCaps.Hops = 0 }},
		{"zero closest targets limit", func(c *scoring.Config) { c.ClosestTargetsLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scoring.Defaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestGradeForScore(t *testing.T) {
	cfg := scoring.Defaults()
	tests := []struct {
		score int
		want  string
	}{
		{1000, "S"}, {850, "S"},
		{849, "A"}, {700, "A"},
		{699, "B"}, {550, "B"},
		{549, "C"}, {400, "C"},
		{399, "D"}, {0, "D"},
	}
	for _, tt := range tests {
		if got := cfg.GradeForScore(tt.score); got != tt.want {
			t.Errorf("GradeForScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := scoring.Defaults()
	clone := orig.Clone()

	clone.Weights.Influence = 0.99
	clone.RiskPenalties[scoring.RiskLow] = 0.9
	clone.RedFlagPenalties[scoring.FlagLikeHeavy] = 0.9
	clone.HopWeights[1] = 0.1
	clone.GradeThresholds[0].Min = 999

	if orig.Weights.Influence != 0.30 {
		t.Error("clone mutation leaked into original weights")
	}
	if orig.RiskPenalties[scoring.RiskLow] != 0.02 {
		t.Error("clone mutation leaked into original risk penalties")
	}
	if orig.RedFlagPenalties[scoring.FlagLikeHeavy] != 0.05 {
		t.Error("clone mutation leaked into original red flag penalties")
	}
	if orig.HopWeights[1] != 1.00 {
		t.Error("clone mutation leaked into original hop weights")
	}
	if orig.GradeThresholds[0].Min != 850 {
		t.Error("clone mutation leaked into original grade thresholds")
	}
}

func TestParseRiskLevel(t *testing.T) {
	for _, ok := range []string{"", "LOW", "MED", "HIGH"} {
		if _, err := scoring.ParseRiskLevel(ok); err != nil {
			t.Errorf("ParseRiskLevel(%q) error: %v", ok, err)
		}
	}
	if _, err := scoring.ParseRiskLevel("low"); err == nil {
		t.Error("expected lowercase risk level to be rejected")
	}
}

func TestParseRedFlag(t *testing.T) {
	for _, flag := range scoring.KnownRedFlags() {
		if _, err := scoring.ParseRedFlag(string(flag)); err != nil {
			t.Errorf("ParseRedFlag(%s) error: %v", flag, err)
		}
	}
	if _, err := scoring.ParseRedFlag("TOTALLY_NEW_FLAG"); err == nil {
		t.Error("expected unknown flag to be rejected")
	}
}
