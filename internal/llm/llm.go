package llm

import (
	"context"
	"encoding/json"
	"errors"

	genai "google.golang.org/genai"
)

// ErrEmptyResponse means the model returned no usable candidate.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// TextRequest is a single conversational generation call.
type TextRequest struct {
	// System is the provider-level system preamble, may be empty.
	System string
	// Prompt is the user-facing content.
	Prompt string
	// Temperature of 0 leaves the provider default in place.
	Temperature float32
}

// VisionRequest is a single image-analysis call that must return JSON
// matching Schema.
type VisionRequest struct {
	MIMEType string
	Data     []byte
	Prompt   string
	Schema   *genai.Schema
}

// TextGenerator produces plain text from a prompt.
type TextGenerator interface {
	Name() string
	Close() error
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// VisionAnalyzer produces structured JSON from an image plus prompt.
type VisionAnalyzer interface {
	Name() string
	Close() error
	AnalyzeImageJSON(ctx context.Context, req VisionRequest) (json.RawMessage, error)
}
