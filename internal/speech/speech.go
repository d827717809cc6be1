// Package speech wraps the platform audio capabilities the assistant
// needs: synthesis, playback, and single-utterance recognition. Playback
// and recognition are capability interfaces with absent implementations,
// so hosts without audio hardware degrade instead of branching all over
// the UI layer.
package speech

import (
	"context"
	"errors"
)

// ErrUnavailable marks a capability the host platform does not provide.
var ErrUnavailable = errors.New("speech: capability unavailable")

// Synthesizer turns text into a playable audio payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (Clip, error)
}

// Clip is one synthesized audio payload.
type Clip struct {
	ID       string
	MIMEType string
	Data     []byte
}

// Recognizer captures exactly one utterance per call; it returns when a
// single final result is available or the context ends. Interim results
// are not surfaced.
type Recognizer interface {
	Listen(ctx context.Context, locale string) (string, error)
}

// UnsupportedRecognizer is the absent-capability implementation.
type UnsupportedRecognizer struct{}

func (UnsupportedRecognizer) Listen(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
