package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/logger"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) With(args ...any) logger.LoggerInterface            { return m }

func TestClient_Advise(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 1 {
			t.Errorf("request = %+v, want one message for test-model", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"riskScore\": 40}"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	text, err := client.Advise(context.Background(), "score this")
	if err != nil {
		t.Fatalf("Advise error: %v", err)
	}
	if text != `{"riskScore": 40}` {
		t.Errorf("text = %q", text)
	}
}

func TestClient_Advise_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k", Model: "m"}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	_, err = client.Advise(context.Background(), "score this")
	if err == nil {
		t.Fatal("expected error for 503")
	}
	if code := apperror.GetCode(err); code != apperror.CodeAdvisoryUnavailable {
		t.Errorf("code = %s, want ADVISORY_UNAVAILABLE", code)
	}
}

func TestClient_Advise_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k", Model: "m"}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if _, err := client.Advise(context.Background(), "score this"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
