package scoring_test

import (
	"math"
	"testing"

	"github.com/credlens/credlens/pkg/scoring"
)

func f(v float64) *float64 { return &v }

func TestComputeHealthyAccount(t *testing.T) {
	in := scoring.AccountMetricsInput{
		AccountID:          "acct_healthy",
		BaseInfluence:      f(650),
		XScore:             f(580),
		SignalNoise:        f(6.5),
		Velocity:           f(15),
		Acceleration:       f(8),
		RiskLevel:          scoring.RiskLow,
		AudienceQuality:    f(0.75),
		AuthorityProximity: f(0.50),
	}

	result, err := scoring.Compute(in, scoring.Defaults())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if result.AccountID != "acct_healthy" {
		t.Errorf("account ID = %q, want acct_healthy", result.AccountID)
	}
	if got, want := result.Components.NetworkProxy, 0.65*0.75+0.35*0.50; math.Abs(got-want) > 1e-9 {
		t.Errorf("network proxy = %f, want %f", got, want)
	}
	if result.Confidence != scoring.ConfidenceHigh {
		t.Errorf("confidence = %s, want HIGH", result.Confidence)
	}
	if result.TwitterScore1000 != 601 {
		t.Errorf("score = %d, want 601", result.TwitterScore1000)
	}
	if result.Grade != "B" {
		t.Errorf("grade = %q, want B", result.Grade)
	}
	if result.Components.RiskPenalty != 0.02 {
		t.Errorf("risk penalty = %f, want 0.02", result.Components.RiskPenalty)
	}
	if result.Explain.Summary == "" {
		t.Error("expected a non-empty explanation summary")
	}
}

func TestComputeDeterministic(t *testing.T) {
	in := scoring.AccountMetricsInput{
		AccountID:     "acct_det",
		BaseInfluence: f(420),
		XScore:        f(390),
		Velocity:      f(-12),
		RiskLevel:     scoring.RiskMed,
		RedFlags:      []scoring.RedFlag{scoring.FlagLikeHeavy, scoring.FlagViralSpike},
	}
	cfg := scoring.Defaults()

	first, err := scoring.Compute(in, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := scoring.Compute(in, cfg)
		if err != nil {
			t.Fatalf("Compute() error on run %d: %v", i, err)
		}
		if again.TwitterScore1000 != first.TwitterScore1000 {
			t.Fatalf("run %d: score %d != %d", i, again.TwitterScore1000, first.TwitterScore1000)
		}
		if again.Explain.Summary != first.Explain.Summary {
			t.Fatalf("run %d: summary changed", i)
		}
	}
}

func TestComputePenaltyCap(t *testing.T) {
	in := scoring.AccountMetricsInput{
		AccountID:     "acct_risky",
		BaseInfluence: f(800),
		XScore:        f(700),
		RiskLevel:     scoring.RiskHigh,
		RedFlags: []scoring.RedFlag{
			scoring.FlagBotLikePattern,
			scoring.FlagRepostFarm,
			scoring.FlagFakeEngagement,
		},
	}

	// Raw penalty is 0.18 + 0.15 + 0.12 + 0.12 = 0.57, well past the cap.
	result, err := scoring.Compute(in, scoring.Defaults())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if result.Components.RiskPenalty != 0.35 {
		t.Errorf("risk penalty = %f, want capped 0.35", result.Components.RiskPenalty)
	}
}

func TestComputeScoreRange(t *testing.T) {
	cfg := scoring.Defaults()
	inputs := []scoring.AccountMetricsInput{
		{AccountID: "empty"},
		{AccountID: "max", BaseInfluence: f(1000), XScore: f(1000), SignalNoise: f(10),
			Velocity: f(100), Acceleration: f(100), Consistency: f(1),
			AudienceQuality: f(1), AuthorityProximity: f(1)},
		{AccountID: "min", BaseInfluence: f(0), XScore: f(0), SignalNoise: f(0),
			Velocity: f(-100), Acceleration: f(-100), Consistency: f(0),
			AudienceQuality: f(0), AuthorityProximity: f(0),
			RiskLevel: scoring.RiskHigh,
			RedFlags:  []scoring.RedFlag{scoring.FlagBotLikePattern, scoring.FlagRepostFarm}},
	}

	for _, in := range inputs {
		result, err := scoring.Compute(in, cfg)
		if err != nil {
			t.Fatalf("Compute(%s) error: %v", in.AccountID, err)
		}
		if result.TwitterScore1000 < 0 || result.TwitterScore1000 > 1000 {
			t.Errorf("%s: score %d outside [0,1000]", in.AccountID, result.TwitterScore1000)
		}
	}
}

func TestComputeMissingMetricsNeverError(t *testing.T) {
	result, err := scoring.Compute(scoring.AccountMetricsInput{AccountID: "acct_bare"}, scoring.Defaults())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if result.Confidence != scoring.ConfidenceLow {
		t.Errorf("confidence = %s, want LOW", result.Confidence)
	}
	// Absent network signals default to neutral, never zero.
	if result.Components.NetworkProxy != 0.5 {
		t.Errorf("network proxy = %f, want neutral 0.5", result.Components.NetworkProxy)
	}
	want := map[string]bool{
		"audience_quality_score_0_1":    true,
		"authority_proximity_score_0_1": true,
		"consistency_0_1":               true,
	}
	for _, field := range result.Meta.DefaultedFields {
		if !want[field] {
			t.Errorf("unexpected defaulted field %q", field)
		}
		delete(want, field)
	}
	for field := range want {
		t.Errorf("missing defaulted field %q", field)
	}
}

func TestComputeConfidenceTiers(t *testing.T) {
	tests := []struct {
		name string
		in   scoring.AccountMetricsInput
		want scoring.Confidence
	}{
		{
			name: "all core metrics",
			in: scoring.AccountMetricsInput{
				BaseInfluence: f(500), XScore: f(500), Velocity: f(0), Acceleration: f(0),
			},
			want: scoring.ConfidenceHigh,
		},
		{
			name: "influence and x_score only",
			in:   scoring.AccountMetricsInput{BaseInfluence: f(500), XScore: f(500)},
			want: scoring.ConfidenceMed,
		},
		{
			name: "x_score only",
			in:   scoring.AccountMetricsInput{XScore: f(500)},
			want: scoring.ConfidenceLow,
		},
		{
			name: "nothing",
			in:   scoring.AccountMetricsInput{},
			want: scoring.ConfidenceLow,
		},
	}

	cfg := scoring.Defaults()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scoring.Compute(tt.in, cfg)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if result.Confidence != tt.want {
				t.Errorf("confidence = %s, want %s", result.Confidence, tt.want)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		in    scoring.AccountMetricsInput
		field string
	}{
		{"base_influence too high", scoring.AccountMetricsInput{BaseInfluence: f(1001)}, "base_influence"},
		{"x_score negative", scoring.AccountMetricsInput{XScore: f(-1)}, "x_score"},
		{"signal_noise too high", scoring.AccountMetricsInput{SignalNoise: f(10.5)}, "signal_noise"},
		{"velocity out of range", scoring.AccountMetricsInput{Velocity: f(150)}, "velocity"},
		{"consistency out of range", scoring.AccountMetricsInput{Consistency: f(1.2)}, "consistency_0_1"},
		{"unknown risk level", scoring.AccountMetricsInput{RiskLevel: "EXTREME"}, "risk_level"},
		{"unknown red flag", scoring.AccountMetricsInput{RedFlags: []scoring.RedFlag{"SUSPICIOUS_VIBES"}}, "red_flags"},
	}

	cfg := scoring.Defaults()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scoring.Compute(tt.in, cfg)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			verr, ok := err.(*scoring.ValidationError)
			if !ok {
				t.Fatalf("error type %T, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestNetworkProxyDefaults(t *testing.T) {
	v, defaulted := scoring.NetworkProxy(nil, nil)
	if v != 0.5 {
		t.Errorf("both absent: proxy = %f, want 0.5", v)
	}
	if len(defaulted) != 2 {
		t.Errorf("both absent: %d defaulted fields, want 2", len(defaulted))
	}

	v, defaulted = scoring.NetworkProxy(f(0.8), nil)
	if want := 0.65*0.8 + 0.35*0.5; math.Abs(v-want) > 1e-9 {
		t.Errorf("proximity absent: proxy = %f, want %f", v, want)
	}
	if len(defaulted) != 1 || defaulted[0] != "authority_proximity_score_0_1" {
		t.Errorf("proximity absent: defaulted = %v", defaulted)
	}
}
