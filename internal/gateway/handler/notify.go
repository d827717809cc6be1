package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"finguard/internal/notify"
	"finguard/internal/pond"
	"finguard/internal/sms"
)

// NotifyHandler drives the draft-then-broadcast pipeline. The draft is
// always staged back to the operator; broadcast is its own request.
type NotifyHandler struct {
	drafter     *notify.Drafter
	broadcaster *sms.Broadcaster
	ponds       *pond.Store
}

func NewNotifyHandler(drafter *notify.Drafter, broadcaster *sms.Broadcaster, ponds *pond.Store) *NotifyHandler {
	return &NotifyHandler{drafter: drafter, broadcaster: broadcaster, ponds: ponds}
}

func (h *NotifyHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Lang string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	draft := h.drafter.Draft(r.Context(), h.ponds.Snapshot(), in.Lang)
	writeJSON(w, http.StatusOK, draft)
}

func (h *NotifyHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	out, err := h.broadcaster.Broadcast(r.Context(), in.Message)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
