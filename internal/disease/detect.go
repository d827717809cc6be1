// Package disease runs fish-disease identification over an uploaded image
// through the vision model, constrained to a declared JSON schema.
package disease

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	genai "google.golang.org/genai"

	"finguard/internal/artifact"
	"finguard/internal/llm"
)

// Analysis is the structured result the model must return.
type Analysis struct {
	DiseaseID       string   `json:"diseaseId"`
	Confidence      float64  `json:"confidence"`
	TreatmentPlan   string   `json:"treatmentPlan"`
	Recommendations []string `json:"recommendations"`
}

const detectPrompt = "Identify the fish disease in this image. Provide the disease name, confidence level (0-1), a treatment plan, and prevention tips in JSON format."

// analysisSchema declares the response shape the model is held to.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"diseaseId":       {Type: genai.TypeString},
		"confidence":      {Type: genai.TypeNumber},
		"treatmentPlan":   {Type: genai.TypeString},
		"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"diseaseId", "confidence", "treatmentPlan", "recommendations"},
}

// Detector runs detections and, when a store is configured, keeps the
// image and result as artifacts for later review.
type Detector struct {
	vision llm.VisionAnalyzer
	store  artifact.Store
}

// NewDetector wires the detector; store may be nil (no artifacts kept).
func NewDetector(vision llm.VisionAnalyzer, store artifact.Store) (*Detector, error) {
	if vision == nil {
		return nil, fmt.Errorf("disease: vision analyzer is required")
	}
	return &Detector{vision: vision, store: store}, nil
}

// Detect analyzes one image. The detection id identifies stored artifacts.
func (d *Detector) Detect(ctx context.Context, image []byte, mimeType string) (Analysis, string, error) {
	if len(image) == 0 {
		return Analysis{}, "", fmt.Errorf("disease: image is required")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	raw, err := d.vision.AnalyzeImageJSON(ctx, llm.VisionRequest{
		MIMEType: mimeType,
		Data:     image,
		Prompt:   detectPrompt,
		Schema:   analysisSchema,
	})
	if err != nil {
		return Analysis{}, "", fmt.Errorf("disease: analyze image: %w", err)
	}

	var out Analysis
	if err := json.Unmarshal(raw, &out); err != nil {
		return Analysis{}, "", fmt.Errorf("disease: malformed analysis: %w", err)
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 1 {
		out.Confidence = 1
	}

	detectionID := uuid.NewString()
	if d.store != nil {
		// Best effort; a dead artifact backend must not fail the detection.
		if err := d.store.Put(ctx, detectionID, "image", image); err != nil {
			log.Printf("disease: store image artifact: %v", err)
		}
		if err := d.store.Put(ctx, detectionID, "analysis.json", raw); err != nil {
			log.Printf("disease: store analysis artifact: %v", err)
		}
	}
	return out, detectionID, nil
}
