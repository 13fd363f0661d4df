package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/credlens/credlens/pkg/scoring"
)

// batchStats summarizes per-item outcomes of a batch computation.
type batchStats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// batchItemError reports one failed item. Item failures are isolated: they
// never abort sibling items.
type batchItemError struct {
	Index     int    `json:"index"`
	AccountID string `json:"account_id,omitempty"`
	Error     string `json:"error"`
}

// batchEnvelope is the shared batch response shape.
type batchEnvelope struct {
	Version    string           `json:"version"`
	BatchID    string           `json:"batch_id"`
	ComputedAt time.Time        `json:"computed_at"`
	Results    []any            `json:"results"`
	Errors     []batchItemError `json:"errors"`
	Stats      batchStats       `json:"stats"`
}

func newBatchEnvelope() batchEnvelope {
	return batchEnvelope{
		Version:    Version,
		BatchID:    uuid.New().String(),
		ComputedAt: time.Now().UTC(),
		Results:    []any{},
		Errors:     []batchItemError{},
	}
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	var in scoring.AccountMetricsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap := h.store.Get()
	result, err := scoring.Compute(in, snap.Config)
	if err != nil {
		writeComputeError(w, err)
		return
	}
	result.Meta.ConfigVersion = snap.Version

	writeData(w, http.StatusOK, result)
}

func (h *Handler) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []scoring.AccountMetricsInput `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap := h.store.Get()
	if len(req.Items) > snap.Config.BatchCaps.Score {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("batch size %d exceeds cap %d", len(req.Items), snap.Config.BatchCaps.Score))
		return
	}

	env := newBatchEnvelope()
	for i, item := range req.Items {
		result, err := scoring.Compute(item, snap.Config)
		if err != nil {
			env.Errors = append(env.Errors, batchItemError{Index: i, AccountID: item.AccountID, Error: err.Error()})
			continue
		}
		result.Meta.ConfigVersion = snap.Version
		env.Results = append(env.Results, result)
	}
	env.Stats = batchStats{
		Total:     len(req.Items),
		Succeeded: len(env.Results),
		Failed:    len(env.Errors),
	}

	writeData(w, http.StatusOK, env)
}

// writeComputeError maps engine errors to HTTP statuses: field-scoped
// validation failures are the caller's fault, everything else is ours.
func writeComputeError(w http.ResponseWriter, err error) {
	var verr *scoring.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
