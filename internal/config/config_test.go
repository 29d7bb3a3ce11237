package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MORALIS_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Moralis.APIKey)
	assert.Equal(t, "https://deep-index.moralis.io/api/v2.2", cfg.Moralis.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Moralis.RequestTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Console.Debounce)
	assert.Equal(t, 2*time.Millisecond, cfg.Console.TypingInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.Console.Preload)
	assert.Equal(t, "memory", cfg.API.SessionStore)
	assert.Equal(t, "0.0.0.0:8081", cfg.API.Addr())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Empty(t, cfg.Wallet.RPCURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MORALIS_API_KEY", "test-key")
	t.Setenv("WALLETCONNECT_PROJECT_ID", "project-123")
	t.Setenv("WALLET_RPC_URL", "http://127.0.0.1:1248")
	t.Setenv("CONSOLE_DEBOUNCE", "500ms")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("API_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "project-123", cfg.Wallet.ProjectID)
	assert.Equal(t, "http://127.0.0.1:1248", cfg.Wallet.RPCURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Console.Debounce)
	assert.Equal(t, "redis", cfg.API.SessionStore)
	assert.Equal(t, 9090, cfg.API.Port)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing api key",
			env:  map[string]string{"MORALIS_API_KEY": ""},
		},
		{
			name: "unknown session store",
			env:  map[string]string{"MORALIS_API_KEY": "k", "SESSION_STORE": "postgres"},
		},
		{
			name: "invalid log level",
			env:  map[string]string{"MORALIS_API_KEY": "k", "LOG_LEVEL": "verbose"},
		},
		{
			name: "invalid wallet rpc url",
			env:  map[string]string{"MORALIS_API_KEY": "k", "WALLET_RPC_URL": "not a url"},
		},
		{
			name: "zero debounce window",
			env:  map[string]string{"MORALIS_API_KEY": "k", "CONSOLE_DEBOUNCE": "0s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
