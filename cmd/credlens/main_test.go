package main

import (
	"testing"
)

func TestScoreCmdFlags(t *testing.T) {
	cmd := newScoreCmd()
	f := cmd.Flags()

	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}

	for _, flag := range []string{"input", "config", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestAudienceCmdFlags(t *testing.T) {
	cmd := newAudienceCmd()
	f := cmd.Flags()

	for _, flag := range []string{"input", "config", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestHopsCmdFlags(t *testing.T) {
	cmd := newHopsCmd()
	f := cmd.Flags()

	topN, _ := f.GetInt("top-n")
	if topN != 10 {
		t.Errorf("default top-n = %d, want 10", topN)
	}

	for _, flag := range []string{"graph", "source", "top", "score-field", "top-n", "max-hops", "min-strength", "config", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestAlertCmdFlags(t *testing.T) {
	cmd := newAlertCmd()
	f := cmd.Flags()

	for _, flag := range []string{"input", "tag"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}
