// Package assistant implements the voice assistant flow: a question plus
// live pond state goes through the generative model, then text-to-speech,
// then playback. Typed and spoken input share one Processing path.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"finguard/internal/artifact"
	"finguard/internal/llm"
	"finguard/internal/pond"
	"finguard/internal/speech"
)

// State of the assistant panel. Idle -> Listening -> Processing ->
// Speaking -> Idle; typed input skips Listening.
type State string

const (
	StateIdle       State = "idle"
	StateListening  State = "listening"
	StateProcessing State = "processing"
	StateSpeaking   State = "speaking"
)

// Role of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one transcript line. The transcript is append-only and lives
// for the session; it is never persisted.
type Entry struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

var (
	// ErrBusy means a request is already in flight; only one request per
	// session may be processing at a time.
	ErrBusy = errors.New("assistant: request already in flight")
	// ErrStale means the panel was dismissed while the request was in
	// flight; the response was discarded.
	ErrStale = errors.New("assistant: response superseded by dismissal")
)

// unavailableReply stands in for the model when the generative path fails.
const unavailableReply = "The AI system is temporarily unavailable. Please check your connection."

// Answer is the outcome of one Ask.
type Answer struct {
	Text   string
	Clip   speech.Clip
	Spoken bool
}

// Session drives one assistant panel. All state behind the mutex; the
// network calls run unlocked so the panel stays responsive.
type Session struct {
	gen       llm.TextGenerator
	tts       speech.Synthesizer
	player    speech.Player
	rec       speech.Recognizer
	ponds     *pond.Store
	artifacts artifact.Store

	mu           sync.Mutex
	state        State
	transcript   []Entry
	generation   uint64
	listenCancel context.CancelFunc
}

// Config wires a session. Generator and Ponds are required; TTS, Player
// and Recognizer are capabilities that may be absent. Artifacts, when
// set, keeps every spoken clip for later review.
type Config struct {
	Generator  llm.TextGenerator
	TTS        speech.Synthesizer
	Player     speech.Player
	Recognizer speech.Recognizer
	Ponds      *pond.Store
	Artifacts  artifact.Store
}

func NewSession(cfg Config) (*Session, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("assistant: generator is required")
	}
	if cfg.Ponds == nil {
		return nil, fmt.Errorf("assistant: pond store is required")
	}
	player := cfg.Player
	if player == nil {
		player = speech.NewNopPlayer()
	}
	rec := cfg.Recognizer
	if rec == nil {
		rec = speech.UnsupportedRecognizer{}
	}
	return &Session{
		gen:       cfg.Generator,
		tts:       cfg.TTS,
		player:    player,
		rec:       rec,
		ponds:     cfg.Ponds,
		artifacts: cfg.Artifacts,
		state:     StateIdle,
	}, nil
}

// State reports the current panel state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the append-only transcript.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Ask runs the typed-input path: Processing then Speaking. Exactly one
// request may be in flight; a second concurrent Ask gets ErrBusy. A
// dismissal during the round trip discards the response (ErrStale).
func (s *Session) Ask(ctx context.Context, text string) (Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{}, fmt.Errorf("assistant: question is required")
	}

	s.mu.Lock()
	if s.state == StateProcessing || s.state == StateSpeaking {
		s.mu.Unlock()
		return Answer{}, ErrBusy
	}
	s.state = StateProcessing
	myGen := s.generation
	s.transcript = append(s.transcript, Entry{Role: RoleUser, Text: text, At: time.Now()})
	s.mu.Unlock()

	snapshot := s.ponds.Snapshot()
	reply, err := s.gen.GenerateText(ctx, llm.TextRequest{
		System:      Preamble(snapshot),
		Prompt:      text,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("assistant: generation failed: %v", err)
		reply = unavailableReply
	}

	s.mu.Lock()
	if s.generation != myGen {
		s.mu.Unlock()
		return Answer{}, ErrStale
	}
	s.transcript = append(s.transcript, Entry{Role: RoleAssistant, Text: reply, At: time.Now()})
	s.state = StateSpeaking
	s.mu.Unlock()

	ans := Answer{Text: reply}
	if s.tts != nil {
		clip, ttsErr := s.tts.Synthesize(ctx, reply)
		s.mu.Lock()
		stale := s.generation != myGen
		s.mu.Unlock()
		if stale {
			return Answer{}, ErrStale
		}
		if ttsErr != nil {
			// Silent degradation: the text answer stands, no audio.
			log.Printf("assistant: synthesis failed: %v", ttsErr)
		} else {
			if s.artifacts != nil {
				// Best effort; a dead artifact backend must not mute the panel.
				if putErr := s.artifacts.Put(ctx, clip.ID, "audio", clip.Data); putErr != nil {
					log.Printf("assistant: store clip artifact: %v", putErr)
				}
			}
			// New speech preempts whatever is still playing.
			s.player.Stop()
			if playErr := s.player.Play(ctx, clip); playErr != nil {
				log.Printf("assistant: playback failed: %v", playErr)
			} else {
				ans.Clip = clip
				ans.Spoken = true
			}
		}
	}

	s.mu.Lock()
	if s.state == StateSpeaking {
		s.state = StateIdle
	}
	s.mu.Unlock()
	return ans, nil
}

// StartListening captures a single utterance and routes it into Ask.
// Hosts without a recognizer get speech.ErrUnavailable; the panel
// degrades, nothing crashes.
func (s *Session) StartListening(ctx context.Context, lang string) (Answer, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return Answer{}, ErrBusy
	}
	listenCtx, cancel := context.WithCancel(ctx)
	s.state = StateListening
	s.listenCancel = cancel
	s.mu.Unlock()

	text, err := s.rec.Listen(listenCtx, LocaleFor(lang))
	cancel()

	s.mu.Lock()
	s.listenCancel = nil
	s.state = StateIdle
	s.mu.Unlock()

	if err != nil {
		return Answer{}, err
	}
	return s.Ask(ctx, text)
}

// StopListening ends an active capture without an utterance.
func (s *Session) StopListening() {
	s.mu.Lock()
	cancel := s.listenCancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Close dismisses the panel: playback stops, any in-flight response is
// discarded via the generation bump, and the session returns to Idle.
// The transcript survives; the panel can be reopened.
func (s *Session) Close() {
	s.mu.Lock()
	s.generation++
	cancel := s.listenCancel
	s.listenCancel = nil
	s.state = StateIdle
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.player.Stop()
}

// Preamble embeds the live pond snapshot into the system instruction.
func Preamble(p pond.Pond) string {
	return fmt.Sprintf(`You are FinGuard AI, a helpful aquaculture expert for a farm in India.
CURRENT POND DATA:
- Name: %s
- Tank Size: %s
- Fish: %d (%s)
- Temp: %s°C
- pH: %s
- Oxygen: %s mg/L
- Ammonia: %s mg/L
- Health Score: %d/100

Answer questions based on this data. If metrics are bad, give advice.
Keep responses conversational but concise for a voicebot.`,
		p.Name, p.TankSize, p.FishCount, p.FishType,
		p.Metrics.Temp, p.Metrics.PH, p.Metrics.Oxygen, p.Metrics.Ammonia,
		p.HealthScore)
}

// LocaleFor maps the application language to a recognition locale.
func LocaleFor(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), "en") {
		return "en-US"
	}
	return "hi-IN"
}
