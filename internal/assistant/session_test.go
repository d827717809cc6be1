package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"finguard/internal/artifact"
	"finguard/internal/llm"
	"finguard/internal/pond"
	"finguard/internal/speech"
)

// recordingPlayer logs stop/play ordering.
type recordingPlayer struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPlayer) Play(_ context.Context, clip speech.Clip) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "play:"+clip.ID)
	return nil
}

func (p *recordingPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, "stop")
}

func (p *recordingPlayer) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	copy(out, p.events)
	return out
}

type fakeTTS struct {
	err   error
	calls int
}

func (f *fakeTTS) Synthesize(_ context.Context, text string) (speech.Clip, error) {
	f.calls++
	if f.err != nil {
		return speech.Clip{}, f.err
	}
	return speech.Clip{ID: "clip", MIMEType: "audio/mpeg", Data: []byte(text)}, nil
}

// blockingGen parks GenerateText until released.
type blockingGen struct {
	entered  chan struct{}
	release  chan struct{}
	reply    string
	onceOnly sync.Once
}

func (g *blockingGen) Name() string { return "blocking" }
func (g *blockingGen) Close() error { return nil }
func (g *blockingGen) GenerateText(ctx context.Context, _ llm.TextRequest) (string, error) {
	g.onceOnly.Do(func() { close(g.entered) })
	select {
	case <-g.release:
		return g.reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Listen(_ context.Context, locale string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	if cfg.Ponds == nil {
		cfg.Ponds = pond.NewStore()
	}
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestAskAppendsTranscriptInOrder(t *testing.T) {
	s := newTestSession(t, Config{Generator: &llm.Fake{Reply: "All metrics look stable."}})

	ans, err := s.Ask(context.Background(), "How is my pond?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Text != "All metrics look stable." {
		t.Fatalf("Text = %q", ans.Text)
	}
	tr := s.Transcript()
	if len(tr) != 2 {
		t.Fatalf("len(transcript) = %d, want 2", len(tr))
	}
	if tr[0].Role != RoleUser || tr[0].Text != "How is my pond?" {
		t.Fatalf("transcript[0] = %+v", tr[0])
	}
	if tr[1].Role != RoleAssistant || tr[1].Text != "All metrics look stable." {
		t.Fatalf("transcript[1] = %+v", tr[1])
	}
	if s.State() != StateIdle {
		t.Fatalf("state = %q after Ask, want idle", s.State())
	}
}

func TestAskEmbedsPondSnapshotInPreamble(t *testing.T) {
	fake := &llm.Fake{Reply: "ok"}
	ponds := pond.NewStore()
	ponds.SimulateCrisis()
	s := newTestSession(t, Config{Generator: fake, Ponds: ponds})

	if _, err := s.Ask(context.Background(), "status?"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	sys := fake.TextCalls[0].System
	for _, want := range []string{"Pond Alpha", "5,000 Liters", "1200 (Rohu & Catla)", "Health Score: 38/100"} {
		if !strings.Contains(sys, want) {
			t.Fatalf("preamble missing %q:\n%s", want, sys)
		}
	}
	if fake.TextCalls[0].Temperature != 0.7 {
		t.Fatalf("Temperature = %v, want 0.7", fake.TextCalls[0].Temperature)
	}
}

func TestAskSpeaksWithPreemption(t *testing.T) {
	player := &recordingPlayer{}
	s := newTestSession(t, Config{
		Generator: &llm.Fake{Reply: "answer"},
		TTS:       &fakeTTS{},
		Player:    player,
	})

	ans, err := s.Ask(context.Background(), "q1")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !ans.Spoken || len(ans.Clip.Data) == 0 {
		t.Fatalf("answer = %+v, want spoken clip", ans)
	}
	ev := player.Events()
	if len(ev) != 2 || ev[0] != "stop" || ev[1] != "play:clip" {
		t.Fatalf("player events = %v, want stop before play", ev)
	}

	// A second response must stop the first before playing.
	if _, err := s.Ask(context.Background(), "q2"); err != nil {
		t.Fatalf("second Ask() error = %v", err)
	}
	ev = player.Events()
	if len(ev) != 4 || ev[2] != "stop" || ev[3] != "play:clip" {
		t.Fatalf("player events = %v, want second stop before second play", ev)
	}
}

func TestAskStoresSpokenClipArtifact(t *testing.T) {
	store := artifact.NewMemoryStore()
	s := newTestSession(t, Config{
		Generator: &llm.Fake{Reply: "answer"},
		TTS:       &fakeTTS{},
		Artifacts: store,
	})

	ans, err := s.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !ans.Spoken {
		t.Fatalf("answer = %+v, want spoken clip", ans)
	}
	raw, err := store.Get(context.Background(), ans.Clip.ID, "audio")
	if err != nil {
		t.Fatalf("Get(clip artifact) error = %v", err)
	}
	if string(raw) != "answer" {
		t.Fatalf("stored clip = %q, want synthesized payload", raw)
	}
}

func TestAskSilentDegradationOnTTSFailure(t *testing.T) {
	player := &recordingPlayer{}
	s := newTestSession(t, Config{
		Generator: &llm.Fake{Reply: "answer"},
		TTS:       &fakeTTS{err: errors.New("elevenlabs down")},
		Player:    player,
	})

	ans, err := s.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask() error = %v, want silent degradation", err)
	}
	if ans.Spoken {
		t.Fatalf("Spoken = true, want false on TTS failure")
	}
	if ans.Text != "answer" {
		t.Fatalf("Text = %q, want text preserved", ans.Text)
	}
	if len(player.Events()) != 0 {
		t.Fatalf("player events = %v, want none", player.Events())
	}
	if s.State() != StateIdle {
		t.Fatalf("state = %q, want idle", s.State())
	}
}

func TestAskUnavailableReplyOnGeneratorFailure(t *testing.T) {
	s := newTestSession(t, Config{Generator: &llm.Fake{Err: errors.New("network")}})

	ans, err := s.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Text != unavailableReply {
		t.Fatalf("Text = %q, want canned unavailable reply", ans.Text)
	}
	tr := s.Transcript()
	if len(tr) != 2 || tr[1].Text != unavailableReply {
		t.Fatalf("transcript = %+v", tr)
	}
}

func TestAskRejectsEmptyAndConcurrent(t *testing.T) {
	gen := &blockingGen{entered: make(chan struct{}), release: make(chan struct{}), reply: "late"}
	s := newTestSession(t, Config{Generator: gen})

	if _, err := s.Ask(context.Background(), "   "); err == nil {
		t.Fatalf("Ask(blank) error = nil, want validation error")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Ask(context.Background(), "first")
	}()
	<-gen.entered

	if _, err := s.Ask(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("concurrent Ask() error = %v, want ErrBusy", err)
	}
	close(gen.release)
	<-done
}

func TestCloseDiscardsInFlightResponse(t *testing.T) {
	gen := &blockingGen{entered: make(chan struct{}), release: make(chan struct{}), reply: "stale answer"}
	player := &recordingPlayer{}
	s := newTestSession(t, Config{Generator: gen, TTS: &fakeTTS{}, Player: player})

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Ask(context.Background(), "question")
		errCh <- err
	}()
	<-gen.entered

	s.Close()
	close(gen.release)

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrStale) {
			t.Fatalf("Ask() error = %v, want ErrStale", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Ask() did not return after Close()")
	}

	// Stale reply never reaches the transcript; the user entry stays.
	tr := s.Transcript()
	if len(tr) != 1 || tr[0].Role != RoleUser {
		t.Fatalf("transcript = %+v, want only the user entry", tr)
	}
	for _, ev := range player.Events() {
		if ev == "play:clip" {
			t.Fatalf("stale response was played: %v", player.Events())
		}
	}
}

func TestStartListeningRoutesUtteranceToAsk(t *testing.T) {
	s := newTestSession(t, Config{
		Generator:  &llm.Fake{Reply: "heard you"},
		Recognizer: &fakeRecognizer{text: "is the oxygen ok"},
	})

	ans, err := s.StartListening(context.Background(), "en")
	if err != nil {
		t.Fatalf("StartListening() error = %v", err)
	}
	if ans.Text != "heard you" {
		t.Fatalf("Text = %q", ans.Text)
	}
	tr := s.Transcript()
	if len(tr) != 2 || tr[0].Text != "is the oxygen ok" {
		t.Fatalf("transcript = %+v", tr)
	}
}

func TestStartListeningUnavailableRecognizer(t *testing.T) {
	s := newTestSession(t, Config{Generator: &llm.Fake{Reply: "x"}})

	_, err := s.StartListening(context.Background(), "en")
	if !errors.Is(err, speech.ErrUnavailable) {
		t.Fatalf("StartListening() error = %v, want speech.ErrUnavailable", err)
	}
	if s.State() != StateIdle {
		t.Fatalf("state = %q, want idle after degraded listen", s.State())
	}
}

func TestLocaleFor(t *testing.T) {
	if got := LocaleFor("en"); got != "en-US" {
		t.Fatalf("LocaleFor(en) = %q, want en-US", got)
	}
	for _, lang := range []string{"hi", "bn", "ta", ""} {
		if got := LocaleFor(lang); got != "hi-IN" {
			t.Fatalf("LocaleFor(%q) = %q, want hi-IN", lang, got)
		}
	}
}
