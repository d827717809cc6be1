package speech

import (
	"context"
	"sync"
)

// Player plays at most one clip at a time. Play must stop whatever is
// currently playing before the new clip starts.
type Player interface {
	Play(ctx context.Context, clip Clip) error
	Stop()
}

// NopPlayer is the absent-capability playback implementation. It still
// tracks the active clip so preemption semantics hold for callers that
// only care about "what is playing now".
type NopPlayer struct {
	mu      sync.Mutex
	current string
}

func NewNopPlayer() *NopPlayer { return &NopPlayer{} }

func (p *NopPlayer) Play(_ context.Context, clip Clip) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = clip.ID
	return nil
}

func (p *NopPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ""
}

// Playing reports the active clip id, empty when idle.
func (p *NopPlayer) Playing() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
