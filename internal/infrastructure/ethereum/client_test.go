package ethereum

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/config"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newWalletServer answers eth_accounts and eth_chainId with fixed values
func newWalletServer(t *testing.T, accounts []string, chainID string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_accounts":
			resp["result"] = accounts
		case "eth_chainId":
			resp["result"] = chainID
		default:
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T, url string) *WalletProvider {
	t.Helper()

	provider, err := NewWalletProvider(context.Background(), config.WalletConfig{
		RPCURL:         url,
		RequestTimeout: 2 * time.Second,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(provider.Close)
	return provider
}

func TestWalletProvider_SelectedAccount(t *testing.T) {
	srv := newWalletServer(t, []string{
		"0x742d35cc6634c0532925a3b844bc9e7595f0beb0",
		"0x1111111111111111111111111111111111111111",
	}, "0x1")

	address, chainID, err := newTestProvider(t, srv.URL).SelectedAccount(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != "0x742d35cc6634c0532925a3b844bc9e7595f0beb0" {
		t.Errorf("expected first account, got %s", address)
	}
	if chainID != "0x1" {
		t.Errorf("expected chain id 0x1, got %s", chainID)
	}
}

func TestWalletProvider_NoAccount(t *testing.T) {
	srv := newWalletServer(t, []string{}, "0x89")

	address, chainID, err := newTestProvider(t, srv.URL).SelectedAccount(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != "" || chainID != "" {
		t.Errorf("expected no account, got (%q, %q)", address, chainID)
	}
}

func TestWalletProvider_Unreachable(t *testing.T) {
	srv := newWalletServer(t, nil, "0x1")
	url := srv.URL
	srv.Close()

	provider := newTestProvider(t, url)
	if _, _, err := provider.SelectedAccount(context.Background()); err == nil {
		t.Fatal("expected error for unreachable wallet")
	}
	if err := provider.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check to fail for unreachable wallet")
	}
}

func TestNewWalletProvider_RequiresURL(t *testing.T) {
	if _, err := NewWalletProvider(context.Background(), config.WalletConfig{}, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty rpc url")
	}
}
