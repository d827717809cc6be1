package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Fake returns canned replies for offline runs and tests.
type Fake struct {
	mu sync.Mutex

	// Reply/JSON are returned on success; Err forces the failure path.
	Reply string
	JSON  json.RawMessage
	Err   error

	TextCalls   []TextRequest
	VisionCalls []VisionRequest
}

func (f *Fake) Name() string { return "FakeLLM" }
func (f *Fake) Close() error { return nil }

func (f *Fake) GenerateText(_ context.Context, req TextRequest) (string, error) {
	f.mu.Lock()
	f.TextCalls = append(f.TextCalls, req)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *Fake) AnalyzeImageJSON(_ context.Context, req VisionRequest) (json.RawMessage, error) {
	f.mu.Lock()
	f.VisionCalls = append(f.VisionCalls, req)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.JSON, nil
}
