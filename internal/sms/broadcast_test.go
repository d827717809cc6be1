package sms

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// scriptedSender fails or succeeds per recipient.
type scriptedSender struct {
	mu   sync.Mutex
	fail map[string]bool
	sent []string
}

func (s *scriptedSender) Send(_ context.Context, to, message string) (Receipt, error) {
	s.mu.Lock()
	s.sent = append(s.sent, to)
	fail := s.fail[to]
	s.mu.Unlock()
	if fail {
		return Receipt{To: to}, fmt.Errorf("gateway unreachable")
	}
	return Receipt{To: to, MessageID: "msg-" + to, Success: true}, nil
}

func TestBroadcastPartialFailureStillDelivered(t *testing.T) {
	sender := &scriptedSender{fail: map[string]bool{"+919876543210": true}}
	b, err := NewBroadcaster(sender, []string{"+919876543210", "+919988776655"}, "")
	if err != nil {
		t.Fatalf("NewBroadcaster() error = %v", err)
	}

	out, err := b.Broadcast(context.Background(), "pond update")
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if !out.Delivered {
		t.Fatalf("Delivered = false, want true when one recipient succeeds")
	}
	if out.FallbackURI != "" {
		t.Fatalf("FallbackURI = %q, want empty when delivered", out.FallbackURI)
	}
	if len(out.Receipts) != 2 {
		t.Fatalf("len(Receipts) = %d, want 2", len(out.Receipts))
	}
	if out.Receipts[0].Success || out.Receipts[0].Error == "" {
		t.Fatalf("first receipt = %+v, want recorded failure", out.Receipts[0])
	}
	if !out.Receipts[1].Success {
		t.Fatalf("second receipt = %+v, want success", out.Receipts[1])
	}
}

func TestBroadcastTotalFailureFallsBackToFirstRecipient(t *testing.T) {
	sender := &scriptedSender{fail: map[string]bool{
		"+919876543210": true,
		"+919988776655": true,
	}}
	b, err := NewBroadcaster(sender, []string{"+919876543210", "+919988776655"}, "")
	if err != nil {
		t.Fatalf("NewBroadcaster() error = %v", err)
	}

	out, err := b.Broadcast(context.Background(), "pond update")
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if out.Delivered {
		t.Fatalf("Delivered = true, want false when all recipients fail")
	}
	if !strings.HasPrefix(out.FallbackURI, "sms:919876543210?body=") {
		t.Fatalf("FallbackURI = %q, want intent for first recipient only", out.FallbackURI)
	}
	// Batch must not abort on the first failure.
	if len(sender.sent) != 2 {
		t.Fatalf("sent to %d recipients, want 2", len(sender.sent))
	}
}

func TestBroadcastNormalizesRecipientsUpFront(t *testing.T) {
	sender := &scriptedSender{}
	b, err := NewBroadcaster(sender, []string{"9876543210"}, "")
	if err != nil {
		t.Fatalf("NewBroadcaster() error = %v", err)
	}
	if got := b.Recipients(); len(got) != 1 || got[0] != "+919876543210" {
		t.Fatalf("Recipients() = %v, want [+919876543210]", got)
	}
}

func TestBroadcastRejectsEmptyMessage(t *testing.T) {
	sender := &scriptedSender{}
	b, err := NewBroadcaster(sender, []string{"9876543210"}, "")
	if err != nil {
		t.Fatalf("NewBroadcaster() error = %v", err)
	}
	if _, err := b.Broadcast(context.Background(), "  "); err == nil {
		t.Fatalf("Broadcast(blank) error = nil, want validation error")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("sent = %v, want no adapter calls on validation failure", sender.sent)
	}
}

func TestComposeIntentEncodesBody(t *testing.T) {
	got := ComposeIntent("+919876543210", "Pond Alpha: score 84/100")
	want := "sms:919876543210?body=Pond%20Alpha%3A%20score%2084%2F100"
	if got != want {
		t.Fatalf("ComposeIntent() = %q, want %q", got, want)
	}
}
