// Package api implements the hosted Credlens REST API: compute endpoints for
// the three scoring engines, graph upload/fetch, and the admin configuration
// surface.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/credlens/credlens/internal/configstore"
	"github.com/credlens/credlens/internal/graphstore"
)

// Version is the API payload version reported in info and batch responses.
const Version = "1.0.0"

// Handler is the top-level API handler for the hosted Credlens service.
type Handler struct {
	db      *sql.DB // optional; used for graph metadata and health
	store   *configstore.Store
	storage graphstore.StorageClient
	cache   *GraphCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, store *configstore.Store, storage graphstore.StorageClient, cache *GraphCache) *Handler {
	if cache == nil {
		cache = NewGraphCacheFromEnv()
	}
	return &Handler{
		db:      db,
		store:   store,
		storage: storage,
		cache:   cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Compute endpoints
	mux.HandleFunc("POST /api/v1/score", h.handleScore)
	mux.HandleFunc("POST /api/v1/score/batch", h.handleScoreBatch)
	mux.HandleFunc("POST /api/v1/audience-quality", h.handleAudience)
	mux.HandleFunc("POST /api/v1/audience-quality/batch", h.handleAudienceBatch)
	mux.HandleFunc("POST /api/v1/hops", h.handleHops)
	mux.HandleFunc("POST /api/v1/hops/batch", h.handleHopsBatch)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/audience-quality/info", h.handleAudienceInfo)
	mux.HandleFunc("GET /api/v1/audience-quality/mock", h.handleAudienceMock)
	mux.HandleFunc("GET /api/v1/config", h.handleGetConfig)
	mux.HandleFunc("GET /api/v1/graphs/{graphID}", h.handleGetGraph)

	// Write endpoints
	mux.HandleFunc("POST /api/v1/graphs", h.handleUploadGraph)
	mux.HandleFunc("PATCH /api/v1/admin/config", h.handleUpdateConfig)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// writeData wraps a payload in the {"data": ...} envelope every read and
// compute endpoint uses.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
