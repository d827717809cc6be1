package sms

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
)

// Broadcaster fans a message out to a fixed recipient list. The list is
// configured once and is not editable through the API.
type Broadcaster struct {
	sender      Sender
	recipients  []string
	countryCode string
}

// Outcome reports one broadcast attempt. Delivered is true iff at least
// one recipient attempt succeeded; when none did, FallbackURI carries a
// device-native compose intent for the first recipient only (the native
// path does not support multiple recipients).
type Outcome struct {
	Delivered   bool      `json:"delivered"`
	Receipts    []Receipt `json:"receipts"`
	FallbackURI string    `json:"fallbackUri,omitempty"`
}

func NewBroadcaster(sender Sender, recipients []string, countryCode string) (*Broadcaster, error) {
	if sender == nil {
		return nil, fmt.Errorf("sms: sender is required")
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("sms: at least one recipient is required")
	}
	normalized := make([]string, 0, len(recipients))
	for _, r := range recipients {
		n, err := Normalize(r, countryCode)
		if err != nil {
			return nil, fmt.Errorf("sms: recipient %q: %w", r, err)
		}
		normalized = append(normalized, n)
	}
	return &Broadcaster{sender: sender, recipients: normalized, countryCode: countryCode}, nil
}

// Recipients returns a copy of the normalized recipient list.
func (b *Broadcaster) Recipients() []string {
	out := make([]string, len(b.recipients))
	copy(out, b.recipients)
	return out
}

// Broadcast sends message to every recipient. Per-recipient sends run
// concurrently with no ordering between them; one recipient's failure
// never aborts the batch.
func (b *Broadcaster) Broadcast(ctx context.Context, message string) (Outcome, error) {
	if strings.TrimSpace(message) == "" {
		return Outcome{}, fmt.Errorf("sms: message is required")
	}

	receipts := make([]Receipt, len(b.recipients))
	var wg sync.WaitGroup
	for i, to := range b.recipients {
		wg.Add(1)
		go func(i int, to string) {
			defer wg.Done()
			rec, err := b.sender.Send(ctx, to, message)
			if err != nil {
				rec.To = to
				rec.Success = false
				rec.Error = err.Error()
				log.Printf("sms: delivery to %s failed: %v", to, err)
			}
			receipts[i] = rec
		}(i, to)
	}
	wg.Wait()

	out := Outcome{Receipts: receipts}
	for _, r := range receipts {
		if r.Success {
			out.Delivered = true
			break
		}
	}
	if !out.Delivered {
		out.FallbackURI = ComposeIntent(b.recipients[0], message)
	}
	return out, nil
}

// ComposeIntent builds the platform sms: URI handed to the OS when the
// network path fails entirely. No programmatic delivery confirmation
// exists beyond this point.
func ComposeIntent(to, message string) string {
	// QueryEscape uses '+' for spaces; sms: bodies want %20.
	body := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "sms:" + digitsOnly(to) + "?body=" + body
}
