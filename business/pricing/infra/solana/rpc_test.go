package solana

import (
	"context"
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

func TestRPCClient_Balance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","result":{"context":{"slot":311178098},"value":2039280000},"id":1}`))
	}))
	defer server.Close()

	client, err := NewRPCClient(RPCClientConfig{URL: server.URL}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewRPCClient error: %v", err)
	}

	bal, err := client.Balance(context.Background(), "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU")
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}

	if bal.Uint64() != 2_039_280_000 {
		t.Errorf("balance = %d lamports, want 2039280000", bal.Uint64())
	}
	if bal.Asset().Symbol() != "SOL" {
		t.Errorf("asset = %s, want SOL", bal.Asset().Symbol())
	}
}

func TestRPCClient_Balance_RPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"Invalid param: WrongSize"},"id":1}`))
	}))
	defer server.Close()

	client, err := NewRPCClient(RPCClientConfig{URL: server.URL}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewRPCClient error: %v", err)
	}

	_, err = client.Balance(context.Background(), "bogus")
	if err == nil {
		t.Fatal("expected error for RPC error response")
	}
	if code := apperror.GetCode(err); code != apperror.CodeRPCError {
		t.Errorf("code = %s, want RPC_ERROR", code)
	}
}
