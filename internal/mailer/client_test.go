package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_Send(t *testing.T) {
	var received Email

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/send-email" {
			t.Errorf("path = %s, want /api/send-email", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"msg-1"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	msg := Email{To: "marie@x.com", Subject: "Bienvenue", HTML: "<p>Bonjour</p>"}
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if received != msg {
		t.Fatalf("server received %+v, want %+v", received, msg)
	}
}

func TestClient_Send_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid recipient"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	err := client.Send(context.Background(), Email{To: "bad"})
	if err == nil {
		t.Fatalf("expected error for unconfirmed send")
	}
	if !strings.Contains(err.Error(), "invalid recipient") {
		t.Fatalf("error does not carry service message: %v", err)
	}
}

func TestClient_Send_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "temporary", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.httpClient.RetryWaitMin = time.Millisecond
	client.httpClient.RetryWaitMax = 5 * time.Millisecond

	if err := client.Send(context.Background(), Email{To: "marie@x.com"}); err != nil {
		t.Fatalf("Send error after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestClient_Send_AddsHTTPScheme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	// Адрес без схемы, как из переменной окружения.
	client := NewClient(strings.TrimPrefix(srv.URL, "http://"))

	if err := client.Send(context.Background(), Email{To: "marie@x.com"}); err != nil {
		t.Fatalf("Send error: %v", err)
	}
}
