package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/credlens/credlens/pkg/graph"
	"github.com/credlens/credlens/pkg/hops"
)

// hopsRequest is the transport shape for a hops computation. The top-node
// set comes either pre-resolved (top_nodes) or as a selector the adapter
// resolves against the graph before the engine runs.
type hopsRequest struct {
	GraphID  string                 `json:"graph_id"`
	Selector *graph.TopNodeSelector `json:"selector,omitempty"`
	hops.Input
}

func (h *Handler) handleHops(w http.ResponseWriter, r *http.Request) {
	var req hopsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	g, err := h.loadGraph(r.Context(), req.GraphID)
	if err != nil {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}

	in, err := resolveTopNodes(g, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.store.Get()
	result, err := hops.Compute(g, in, snap.Config)
	if err != nil {
		if errors.Is(err, hops.ErrSourceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeComputeError(w, err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handler) handleHopsBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GraphID  string                 `json:"graph_id"`
		Selector *graph.TopNodeSelector `json:"selector,omitempty"`
		Items    []hops.Input           `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap := h.store.Get()
	if len(req.Items) > snap.Config.BatchCaps.Hops {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("batch size %d exceeds cap %d", len(req.Items), snap.Config.BatchCaps.Hops))
		return
	}

	g, err := h.loadGraph(r.Context(), req.GraphID)
	if err != nil {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}

	// A shared selector resolves once for the whole batch.
	var shared []string
	if req.Selector != nil {
		shared, err = req.Selector.Resolve(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	// One adjacency index serves every item in the batch.
	index := hops.NewIndex(g)

	env := newBatchEnvelope()
	for i, item := range req.Items {
		if item.TopNodes == nil && shared != nil {
			item.TopNodes = shared
		}
		result, err := index.Compute(item, snap.Config)
		if err != nil {
			env.Errors = append(env.Errors, batchItemError{Index: i, AccountID: item.SourceID, Error: err.Error()})
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

func resolveTopNodes(g *graph.Graph, req hopsRequest) (hops.Input, error) {
	in := req.Input
	if req.Selector != nil {
		resolved, err := req.Selector.Resolve(g)
		if err != nil {
			return in, err
		}
		in.TopNodes = resolved
	}
	return in, nil
}

// loadGraph loads a graph by ID, checking the cache first, then falling back
// to blob storage.
func (h *Handler) loadGraph(ctx context.Context, graphID string) (*graph.Graph, error) {
	if graphID == "" {
		return nil, fmt.Errorf("graph_id is required")
	}
	if g := h.cache.Get(graphID); g != nil {
		return g, nil
	}

	data, err := h.storage.GetGraph(ctx, graphID)
	if err != nil {
		return nil, fmt.Errorf("load graph blob: %w", err)
	}

	g, err := graph.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}

	h.cache.Put(graphID, g)
	return g, nil
}
