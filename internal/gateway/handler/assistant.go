package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"finguard/internal/assistant"
	"finguard/internal/speech"
)

// AssistantHandler serves the typed assistant path, the transcript, and
// the websocket used by the voice panel.
type AssistantHandler struct {
	session *assistant.Session
}

func NewAssistantHandler(session *assistant.Session) *AssistantHandler {
	return &AssistantHandler{session: session}
}

func (h *AssistantHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	ans, err := h.session.Ask(r.Context(), req.Text)
	switch {
	case errors.Is(err, assistant.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, assistant.ErrStale):
		http.Error(w, err.Error(), http.StatusGone)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, assistantAnswerBody(ans))
}

func (h *AssistantHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":      h.session.State(),
		"transcript": h.session.Transcript(),
	})
}

const (
	assistantWSWriteWait = 10 * time.Second
	assistantWSPongWait  = 60 * time.Second
	assistantWSPingEvery = (assistantWSPongWait * 9) / 10
)

var assistantWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type assistantWSInbound struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Lang string `json:"lang,omitempty"`
}

type assistantWSOutbound struct {
	Type  string          `json:"type"`
	State assistant.State `json:"state,omitempty"`
	Text  string          `json:"text,omitempty"`
	Audio string          `json:"audio,omitempty"`
	MIME  string          `json:"mimeType,omitempty"`
	Code  string          `json:"code,omitempty"`
	Error string          `json:"error,omitempty"`
}

// HandleWS runs the voice panel connection. Inbound messages are
// {type: "ask"|"listen"|"stop"|"close"|"ping"}; every state transition
// and answer is pushed back to the panel.
func (h *AssistantHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := assistantWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(assistantWSPongWait)); err != nil {
		log.Printf("assistant ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(assistantWSPongWait))
	})

	writeCh := make(chan assistantWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(assistantWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(assistantWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(assistantWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushAssistantWS(writeCh, assistantWSOutbound{Type: "state", State: h.session.State()})

	for {
		var in assistantWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		msgType := strings.ToLower(strings.TrimSpace(in.Type))
		switch msgType {
		case "ping":
			pushAssistantWS(writeCh, assistantWSOutbound{Type: "pong"})
		case "ask":
			go h.runAsk(ctx, writeCh, in.Text)
		case "listen":
			go h.runListen(ctx, writeCh, in.Lang)
		case "stop":
			h.session.StopListening()
			pushAssistantWS(writeCh, assistantWSOutbound{Type: "state", State: h.session.State()})
		case "close":
			h.session.Close()
			pushAssistantWS(writeCh, assistantWSOutbound{Type: "state", State: assistant.StateIdle})
		default:
			pushAssistantWS(writeCh, assistantWSOutbound{
				Type:  "error",
				Code:  "invalid_argument",
				Error: "unsupported type: " + msgType,
			})
		}
	}
}

func (h *AssistantHandler) runAsk(ctx context.Context, writeCh chan assistantWSOutbound, text string) {
	pushAssistantWS(writeCh, assistantWSOutbound{Type: "state", State: assistant.StateProcessing})
	ans, err := h.session.Ask(ctx, text)
	h.sendOutcome(ctx, writeCh, ans, err)
}

func (h *AssistantHandler) runListen(ctx context.Context, writeCh chan assistantWSOutbound, lang string) {
	pushAssistantWS(writeCh, assistantWSOutbound{Type: "state", State: assistant.StateListening})
	ans, err := h.session.StartListening(ctx, lang)
	h.sendOutcome(ctx, writeCh, ans, err)
}

func (h *AssistantHandler) sendOutcome(ctx context.Context, writeCh chan assistantWSOutbound, ans assistant.Answer, err error) {
	switch {
	case errors.Is(err, assistant.ErrStale):
		// Dismissed mid-flight; nothing to deliver.
	case errors.Is(err, assistant.ErrBusy):
		sendAssistantWS(ctx, writeCh, assistantWSOutbound{Type: "error", Code: "busy", Error: err.Error()})
	case errors.Is(err, speech.ErrUnavailable):
		sendAssistantWS(ctx, writeCh, assistantWSOutbound{Type: "error", Code: "unavailable", Error: err.Error()})
	case err != nil:
		sendAssistantWS(ctx, writeCh, assistantWSOutbound{Type: "error", Code: "invalid_argument", Error: err.Error()})
	default:
		out := assistantWSOutbound{Type: "answer", State: h.session.State(), Text: ans.Text}
		if ans.Spoken {
			out.Audio = base64.StdEncoding.EncodeToString(ans.Clip.Data)
			out.MIME = ans.Clip.MIMEType
		}
		sendAssistantWS(ctx, writeCh, out)
	}
	pushAssistantWS(writeCh, assistantWSOutbound{Type: "state", State: h.session.State()})
}

// sendAssistantWS queues a frame the panel must not miss (answers,
// errors). It waits out backpressure up to the write deadline instead
// of dropping.
func sendAssistantWS(ctx context.Context, writeCh chan assistantWSOutbound, out assistantWSOutbound) bool {
	if writeCh == nil {
		return false
	}
	timer := time.NewTimer(assistantWSWriteWait)
	defer timer.Stop()
	select {
	case writeCh <- out:
		return true
	case <-ctx.Done():
		return false
	case <-timer.C:
		return false
	}
}

// pushAssistantWS queues a disposable frame (state, pong). Under
// backpressure the oldest queued frame gives way; a missed state frame
// is superseded by the next one anyway.
func pushAssistantWS(writeCh chan assistantWSOutbound, out assistantWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}

func assistantAnswerBody(ans assistant.Answer) map[string]any {
	body := map[string]any{"text": ans.Text, "spoken": ans.Spoken}
	if ans.Spoken {
		body["audio"] = base64.StdEncoding.EncodeToString(ans.Clip.Data)
		body["mimeType"] = ans.Clip.MIMEType
	}
	return body
}
