package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHttSmsSenderSend(t *testing.T) {
	var gotKey string
	var gotBody httSmsReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "abc-123"})
	}))
	defer srv.Close()

	s, err := NewHttSmsSender("pk_test", srv.URL)
	if err != nil {
		t.Fatalf("NewHttSmsSender() error = %v", err)
	}
	rec, err := s.Send(context.Background(), "+919876543210", "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotKey != "pk_test" {
		t.Fatalf("x-api-key = %q, want pk_test", gotKey)
	}
	if gotBody.To != "+919876543210" || gotBody.Content != "hello" {
		t.Fatalf("request body = %+v", gotBody)
	}
	if !rec.Success || rec.MessageID != "abc-123" {
		t.Fatalf("receipt = %+v", rec)
	}
}

func TestHttSmsSenderSurfacesGatewayMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "credits exhausted"})
	}))
	defer srv.Close()

	s, err := NewHttSmsSender("pk_test", srv.URL)
	if err != nil {
		t.Fatalf("NewHttSmsSender() error = %v", err)
	}
	_, err = s.Send(context.Background(), "+919876543210", "hello")
	if err == nil {
		t.Fatalf("Send() error = nil, want gateway failure")
	}
	if got := err.Error(); got != "httsms: credits exhausted" {
		t.Fatalf("error = %q, want httsms: credits exhausted", got)
	}
}

func TestHttSmsSenderRequiresAPIKey(t *testing.T) {
	if _, err := NewHttSmsSender("  ", ""); err == nil {
		t.Fatalf("NewHttSmsSender(blank key) error = nil, want error")
	}
}
