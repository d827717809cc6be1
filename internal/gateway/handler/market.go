package handler

import (
	"net/http"

	"finguard/internal/market"
)

// MarketHandler serves the static marketplace catalog and the cold
// storage directory.
type MarketHandler struct{}

func NewMarketHandler() *MarketHandler { return &MarketHandler{} }

func (h *MarketHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items := market.Items()
	if cat := r.URL.Query().Get("category"); cat != "" {
		filtered := items[:0]
		for _, it := range items {
			if string(it.Category) == cat {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *MarketHandler) HandleColdStorages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"coldStorages": market.ColdStorages()})
}
