package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(url string, maxRetries int) (*Client, *[]time.Duration) {
	c := NewClient(url, 25590, 5*time.Second, maxRetries)
	var sleeps []time.Duration
	c.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return c, &sleeps
}

func TestClient_SucceedsAfterFailures(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.BotID != 25590 {
			t.Errorf("bot_id = %d", req.BotID)
		}
		if req.ChatID != "chat_42_7" {
			t.Errorf("chat_id = %q", req.ChatID)
		}
		if req.Message != "hello" {
			t.Errorf("message = %q", req.Message)
		}
		json.NewEncoder(w).Encode(map[string]any{"done": "ok"})
	}))
	defer server.Close()

	c, sleeps := newTestClient(server.URL, 3)
	resp, err := c.Send(context.Background(), 42, 7, "hello")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if resp["done"] != "ok" {
		t.Errorf("unexpected response: %v", resp)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	// Backoff is 2^attempt seconds after each failed attempt.
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *sleeps, want)
	}
	for i := range want {
		if (*sleeps)[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], want[i])
		}
	}
}

func TestClient_ExhaustsRetries(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, sleeps := newTestClient(server.URL, 3)
	_, err := c.Send(context.Background(), 1, 1, "hello")
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	// No sleep after the final failed attempt.
	if len(*sleeps) != 2 {
		t.Errorf("sleeps = %v, want 2 entries", *sleeps)
	}
}

func TestClient_SerializesNonStringContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if !strings.Contains(req.Message, `"file_url":"https://example.com/f.pdf"`) {
			t.Errorf("message is not the JSON payload: %q", req.Message)
		}
		json.NewEncoder(w).Encode(map[string]any{"done": "ok"})
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL, 1)
	content := map[string]any{
		"file": map[string]any{"file_url": "https://example.com/f.pdf"},
	}
	if _, err := c.Send(context.Background(), 1, 1, content); err != nil {
		t.Fatalf("send failed: %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	c, sleeps := newTestClient("http://127.0.0.1:1", 2)
	_, err := c.Send(context.Background(), 1, 1, "hello")
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if len(*sleeps) != 1 {
		t.Errorf("sleeps = %v, want 1 entry", *sleeps)
	}
}
