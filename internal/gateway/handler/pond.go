package handler

import (
	"encoding/json"
	"net/http"

	"finguard/internal/pond"
)

// PondHandler exposes the session-scoped pond state.
type PondHandler struct {
	ponds *pond.Store
}

func NewPondHandler(ponds *pond.Store) *PondHandler {
	return &PondHandler{ponds: ponds}
}

func (h *PondHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p := h.ponds.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"pond":   p,
		"status": pond.HealthLabel(p.HealthScore),
	})
}

func (h *PondHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in pond.Metrics
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	h.ponds.UpdateMetrics(in)
	writeJSON(w, http.StatusOK, map[string]any{"pond": h.ponds.Snapshot()})
}

func (h *PondHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := h.ponds.SetHealthScore(in.Score); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pond": h.ponds.Snapshot()})
}

func (h *PondHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p := h.ponds.Reset()
	writeJSON(w, http.StatusOK, map[string]any{
		"pond":   p,
		"status": pond.HealthLabel(p.HealthScore),
	})
}

func (h *PondHandler) HandleCrisis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p := h.ponds.SimulateCrisis()
	writeJSON(w, http.StatusOK, map[string]any{
		"pond":   p,
		"status": pond.HealthLabel(p.HealthScore),
	})
}
