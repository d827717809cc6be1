package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultElevenLabsBase = "https://api.elevenlabs.io"

// ElevenLabs synthesizes speech through the ElevenLabs text-to-speech API.
type ElevenLabs struct {
	http    *http.Client
	apiKey  string
	voiceID string
	modelID string
	baseURL string
}

// ElevenLabsConfig carries the voice tuning the client sends verbatim.
type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string // test override; empty means the public API
}

func NewElevenLabs(cfg ElevenLabsConfig) (*ElevenLabs, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("elevenlabs: api key is required")
	}
	if strings.TrimSpace(cfg.VoiceID) == "" {
		return nil, fmt.Errorf("elevenlabs: voice id is required")
	}
	modelID := strings.TrimSpace(cfg.ModelID)
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultElevenLabsBase
	}
	return &ElevenLabs{
		http:    &http.Client{Timeout: 30 * time.Second},
		apiKey:  cfg.APIKey,
		voiceID: cfg.VoiceID,
		modelID: modelID,
		baseURL: strings.TrimRight(base, "/"),
	}, nil
}

type elevenLabsReq struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id"`
	VoiceSettings elevenLabsVoiceSetting `json:"voice_settings"`
}

type elevenLabsVoiceSetting struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize posts the text and returns the raw audio payload.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) (Clip, error) {
	if strings.TrimSpace(text) == "" {
		return Clip{}, fmt.Errorf("elevenlabs: text is required")
	}
	b, _ := json.Marshal(elevenLabsReq{
		Text:    text,
		ModelID: e.modelID,
		VoiceSettings: elevenLabsVoiceSetting{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	url := e.baseURL + "/v1/text-to-speech/" + e.voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return Clip{}, err
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return Clip{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Clip{}, fmt.Errorf("elevenlabs: unexpected status %s: %s", resp.Status, string(body))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Clip{}, err
	}
	if len(data) == 0 {
		return Clip{}, fmt.Errorf("elevenlabs: empty audio payload")
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/mpeg"
	}
	return Clip{ID: uuid.NewString(), MIMEType: mime, Data: data}, nil
}
