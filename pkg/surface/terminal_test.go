package surface_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/credlens/credlens/pkg/explain"
	"github.com/credlens/credlens/pkg/scoring"
	"github.com/credlens/credlens/pkg/surface"
)

func sampleResult() *scoring.TwitterScoreResult {
	return &scoring.TwitterScoreResult{
		AccountID:        "acct_sample",
		TwitterScore1000: 601,
		Grade:            "B",
		Confidence:       scoring.ConfidenceHigh,
		Components: scoring.Components{
			Influence:    0.65,
			Quality:      0.61,
			Trend:        0.56,
			NetworkProxy: 0.66,
			Consistency:  0.50,
			RiskPenalty:  0.02,
		},
		Explain: explain.Explanation{
			Summary:         "acct_sample sits mid-band, with network_proxy as the strongest signal.",
			Drivers:         []string{"Strong influence (0.65)."},
			Concerns:        []string{"Active red flags reduce the score: LIKE_HEAVY."},
			Recommendations: []string{"Run the hops engine for this account; authority proximity currently uses a neutral default."},
		},
		Meta: scoring.Meta{
			DataSources:     []string{"account_metrics", "audience_quality"},
			DefaultedFields: []string{"authority_proximity_score_0_1"},
		},
	}
}

func TestTerminalRender(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	r := &surface.TerminalRenderer{}
	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"acct_sample",
		"Score 601",
		"Grade B",
		"confidence HIGH",
		"risk_penalty   -0.02",
		"Drivers:",
		"Strong influence (0.65).",
		"Concerns:",
		"Recommendations:",
		"Defaulted: authority_proximity_score_0_1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalRenderNoColorHasNoEscapes(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	r := &surface.TerminalRenderer{}
	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(buf.String(), "\033[") {
		t.Error("NO_COLOR output still contains ANSI escapes")
	}
}

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	r := &surface.JSONRenderer{}
	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"twitter_score_1000": 601`) {
		t.Errorf("JSON output missing score field:\n%s", out)
	}
	if !strings.Contains(out, `"grade": "B"`) {
		t.Errorf("JSON output missing grade:\n%s", out)
	}
}
