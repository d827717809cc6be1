package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestElevenLabsSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody elevenLabsReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("fake-mp3-bytes"))
	}))
	defer srv.Close()

	e, err := NewElevenLabs(ElevenLabsConfig{
		APIKey:  "key-1",
		VoiceID: "voice-1",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("NewElevenLabs() error = %v", err)
	}

	clip, err := e.Synthesize(context.Background(), "hello pond")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if gotPath != "/v1/text-to-speech/voice-1" {
		t.Fatalf("path = %q, want /v1/text-to-speech/voice-1", gotPath)
	}
	if gotKey != "key-1" {
		t.Fatalf("xi-api-key = %q, want key-1", gotKey)
	}
	if gotBody.Text != "hello pond" || gotBody.ModelID != "eleven_multilingual_v2" {
		t.Fatalf("request body = %+v", gotBody)
	}
	if gotBody.VoiceSettings.Stability != 0.5 || gotBody.VoiceSettings.SimilarityBoost != 0.75 {
		t.Fatalf("voice settings = %+v", gotBody.VoiceSettings)
	}
	if string(clip.Data) != "fake-mp3-bytes" || clip.MIMEType != "audio/mpeg" {
		t.Fatalf("clip = %+v", clip)
	}
	if clip.ID == "" {
		t.Fatalf("clip.ID is empty")
	}
}

func TestElevenLabsSynthesizeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e, err := NewElevenLabs(ElevenLabsConfig{APIKey: "k", VoiceID: "v", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewElevenLabs() error = %v", err)
	}
	if _, err := e.Synthesize(context.Background(), "hi"); err == nil {
		t.Fatalf("Synthesize() error = nil, want upstream failure")
	}
}

func TestElevenLabsRejectsEmptyText(t *testing.T) {
	e, err := NewElevenLabs(ElevenLabsConfig{APIKey: "k", VoiceID: "v"})
	if err != nil {
		t.Fatalf("NewElevenLabs() error = %v", err)
	}
	if _, err := e.Synthesize(context.Background(), "   "); err == nil {
		t.Fatalf("Synthesize(blank) error = nil, want validation error")
	}
}

func TestUnsupportedRecognizer(t *testing.T) {
	var r Recognizer = UnsupportedRecognizer{}
	if _, err := r.Listen(context.Background(), "en-US"); err != ErrUnavailable {
		t.Fatalf("Listen() error = %v, want ErrUnavailable", err)
	}
}
