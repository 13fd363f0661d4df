package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/credlens/credlens/pkg/graph"
)

// maxGraphUploadBytes bounds a single graph upload. Materialized graphs for
// one account neighborhood are small; anything larger is a client bug.
const maxGraphUploadBytes = 32 << 20

func (h *Handler) handleUploadGraph(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxGraphUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return
	}

	g, err := graph.Unmarshal(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(g.Nodes) == 0 {
		writeError(w, http.StatusBadRequest, "graph has no nodes")
		return
	}

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.MaterializedAt.IsZero() {
		g.MaterializedAt = time.Now().UTC()
	}
	g.ComputeStats()

	// Re-marshal so the stored blob carries the assigned ID and stats.
	blob, err := json.Marshal(g)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "marshaling graph: "+err.Error())
		return
	}
	if err := h.storage.PutGraph(r.Context(), g.ID, blob); err != nil {
		writeError(w, http.StatusInternalServerError, "storing graph: "+err.Error())
		return
	}

	if h.db != nil {
		_, err := h.db.ExecContext(r.Context(), `
			INSERT INTO graphs (id, node_count, edge_count, materialized_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				node_count = EXCLUDED.node_count,
				edge_count = EXCLUDED.edge_count,
				materialized_at = EXCLUDED.materialized_at`,
			g.ID, g.Stats.NodeCount, g.Stats.EdgeCount, g.MaterializedAt)
		if err != nil {
			// Blob storage is the source of truth; metadata is best effort.
			log.Printf("recording graph metadata for %s: %v", g.ID, err)
		}
	}

	h.cache.Put(g.ID, g)

	writeData(w, http.StatusCreated, map[string]any{
		"id":              g.ID,
		"stats":           g.Stats,
		"materialized_at": g.MaterializedAt,
	})
}

func (h *Handler) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	graphID := r.PathValue("graphID")

	g, err := h.loadGraph(r.Context(), graphID)
	if err != nil {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}

	writeData(w, http.StatusOK, g)
}
