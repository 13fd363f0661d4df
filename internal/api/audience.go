package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/credlens/credlens/pkg/audience"
	"github.com/credlens/credlens/pkg/explain"
)

func (h *Handler) handleAudience(w http.ResponseWriter, r *http.Request) {
	var in audience.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap := h.store.Get()
	result, err := audience.Compute(in, snap.Config)
	if err != nil {
		writeComputeError(w, err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handler) handleAudienceBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []audience.Input `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap := h.store.Get()
	if len(req.Items) > snap.Config.BatchCaps.Audience {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("batch size %d exceeds cap %d", len(req.Items), snap.Config.BatchCaps.Audience))
		return
	}

	env := newBatchEnvelope()
	for i, item := range req.Items {
		result, err := audience.Compute(item, snap.Config)
		if err != nil {
			env.Errors = append(env.Errors, batchItemError{Index: i, AccountID: item.AccountID, Error: err.Error()})
			continue
		}
		env.Results = append(env.Results, result)
	}
	env.Stats = batchStats{
		Total:     len(req.Items),
		Succeeded: len(env.Results),
		Failed:    len(env.Errors),
	}

	writeData(w, http.StatusOK, env)
}

func (h *Handler) handleAudienceInfo(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Get()
	writeData(w, http.StatusOK, map[string]any{
		"version": Version,
		"weights": snap.Config.AudienceWeights,
		"overlap_thresholds": map[string]float64{
			"avg_jaccard_ceiling": audience.AvgJaccardCeiling,
			"max_jaccard_ceiling": audience.MaxJaccardCeiling,
		},
		"quality_thresholds": map[string]float64{
			"high":   explain.BandHighMin,
			"medium": explain.BandMidMin,
		},
		"components": []string{"purity", "smart_followers_proxy", "signal_quality", "consistency"},
	})
}
