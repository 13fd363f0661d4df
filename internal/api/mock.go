package api

import (
	"log"
	"net/http"

	"github.com/credlens/credlens/pkg/audience"
	"github.com/credlens/credlens/pkg/explain"
	"github.com/credlens/credlens/pkg/scoring"
)

func ptr(v float64) *float64 { return &v }

// mockAudienceInputs are fixed personas run through the real engine, so the
// mock endpoint always reflects current config and output shape.
var mockAudienceInputs = []audience.Input{
	{
		AccountID:   "mock_institutional",
		XScore:      ptr(880),
		SignalNoise: ptr(8.5),
		Consistency: ptr(0.85),
		Overlap: &audience.OverlapStats{
			AvgJaccard: 0.04,
			MaxJaccard: 0.09,
			AvgShared:  120,
			MaxShared:  340,
			SampleSize: 12,
		},
	},
	{
		AccountID:   "mock_midtier",
		XScore:      ptr(540),
		SignalNoise: ptr(5.0),
		Consistency: ptr(0.55),
		RedFlags:    []scoring.RedFlag{scoring.FlagLikeHeavy},
		Overlap: &audience.OverlapStats{
			AvgJaccard: 0.14,
			MaxJaccard: 0.31,
			AvgShared:  85,
			MaxShared:  210,
			SampleSize: 8,
		},
	},
	{
		AccountID:   "mock_farmed",
		XScore:      ptr(310),
		SignalNoise: ptr(2.2),
		Consistency: ptr(0.30),
		RedFlags:    []scoring.RedFlag{scoring.FlagBotLikePattern, scoring.FlagRepostFarm},
		Overlap: &audience.OverlapStats{
			AvgJaccard: 0.27,
			MaxJaccard: 0.58,
			AvgShared:  400,
			MaxShared:  950,
			SampleSize: 10,
		},
	},
}

func (h *Handler) handleAudienceMock(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Get()

	results := make([]*audience.Result, 0, len(mockAudienceInputs))
	dist := map[string]int{"high": 0, "medium": 0, "low": 0}
	for _, in := range mockAudienceInputs {
		res, err := audience.Compute(in, snap.Config)
		if err != nil {
			// Mock inputs are fixed and valid; failing here means a broken config.
			log.Printf("mock audience compute for %s: %v", in.AccountID, err)
			writeError(w, http.StatusInternalServerError, "mock computation failed")
			return
		}
		results = append(results, res)
		switch {
		case res.Score >= explain.BandHighMin:
			dist["high"]++
		case res.Score >= explain.BandMidMin:
			dist["medium"]++
		default:
			dist["low"]++
		}
	}

	writeData(w, http.StatusOK, map[string]any{
		"results":              results,
		"quality_distribution": dist,
	})
}
