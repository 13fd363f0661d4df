package api

import (
	"encoding/json"
	"net/http"

	"github.com/credlens/credlens/internal/configstore"
)

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.store.Get())
}

func (h *Handler) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var patch configstore.Patch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap, err := h.store.Update(r.Context(), patch)
	if err != nil {
		// A rejected patch never changes the published config.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeData(w, http.StatusOK, snap)
}
