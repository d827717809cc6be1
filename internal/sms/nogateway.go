package sms

import (
	"context"
	"fmt"
)

// NoGatewaySender stands in when no SMS gateway is configured. Every
// send fails, which routes the broadcast to the compose-intent fallback.
type NoGatewaySender struct{}

func (NoGatewaySender) Send(_ context.Context, to, _ string) (Receipt, error) {
	err := fmt.Errorf("httsms: no gateway configured")
	return Receipt{To: to, Success: false, Error: err.Error()}, err
}
