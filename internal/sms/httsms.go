package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHttSmsURL = "https://httsms.com/api/v1/messages"

// Sender delivers one message to one normalized recipient.
type Sender interface {
	Send(ctx context.Context, to, message string) (Receipt, error)
}

// Receipt is the adapter-level delivery outcome for one recipient.
type Receipt struct {
	To        string `json:"to"`
	MessageID string `json:"messageId,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// HttSmsSender sends real SMS through an HttSms gateway (an Android phone
// acting as the carrier path).
type HttSmsSender struct {
	http   *http.Client
	apiKey string
	url    string
}

func NewHttSmsSender(apiKey, url string) (*HttSmsSender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("httsms: api key is required")
	}
	if strings.TrimSpace(url) == "" {
		url = defaultHttSmsURL
	}
	return &HttSmsSender{
		http:   &http.Client{Timeout: 20 * time.Second},
		apiKey: apiKey,
		url:    url,
	}, nil
}

type httSmsReq struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

type httSmsResp struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send posts one message. A non-2xx status becomes an error; the gateway's
// own message is surfaced when present.
func (s *HttSmsSender) Send(ctx context.Context, to, message string) (Receipt, error) {
	b, _ := json.Marshal(httSmsReq{To: to, Content: message})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	if err != nil {
		return Receipt{To: to}, err
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return Receipt{To: to}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var out httSmsResp
		_ = json.Unmarshal(body, &out)
		if out.Message != "" {
			return Receipt{To: to}, fmt.Errorf("httsms: %s", out.Message)
		}
		return Receipt{To: to}, fmt.Errorf("httsms: unexpected status %s", resp.Status)
	}

	var out httSmsResp
	_ = json.Unmarshal(body, &out)
	id := out.ID
	if id == "" {
		id = "sent"
	}
	return Receipt{To: to, MessageID: id, Success: true}, nil
}
