package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"finguard/internal/disease"
)

// DiseaseHandler accepts a base64 image and returns the structured
// analysis the vision model produced.
type DiseaseHandler struct {
	detector *disease.Detector
}

func NewDiseaseHandler(detector *disease.Detector) *DiseaseHandler {
	return &DiseaseHandler{detector: detector}
}

func (h *DiseaseHandler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Image    string `json:"image"`
		MIMEType string `json:"mimeType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Image) == "" {
		http.Error(w, "image is required", http.StatusBadRequest)
		return
	}
	raw, err := base64.StdEncoding.DecodeString(in.Image)
	if err != nil {
		http.Error(w, "image must be base64", http.StatusBadRequest)
		return
	}

	analysis, detectionID, err := h.detector.Detect(r.Context(), raw, in.MIMEType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"detectionId": detectionID,
		"analysis":    analysis,
	})
}
