package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

func TestMockChainDataRepository_Defaults(t *testing.T) {
	repo := NewMockChainDataRepository()
	ctx := context.Background()

	balance, err := repo.GetNativeBalance(ctx, AliceAddress, "0x1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != "0" {
		t.Errorf("expected zero balance, got %s", balance)
	}

	nfts, err := repo.GetWalletNFTs(ctx, AliceAddress, "0x1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nfts) != 0 {
		t.Errorf("expected no nfts, got %d", len(nfts))
	}

	if repo.CallCount("GetNativeBalance") != 1 || repo.CallCount("GetWalletNFTs") != 1 {
		t.Errorf("unexpected call tracking: %+v", repo.Calls)
	}
}

func TestMockChainDataRepository_StoredData(t *testing.T) {
	repo := NewMockChainDataRepository()
	ctx := context.Background()

	repo.SetBalance(AliceAddress, "1500000000000000000")
	repo.AddTransactions(AliceAddress, CreateMultipleTransactions(3)...)
	repo.SetWallet(AliceAddress, CreateTestWalletSummary(AliceAddress))

	// Lookups are case-insensitive
	balance, _ := repo.GetNativeBalance(ctx, "0x1111111111111111111111111111111111111111", "0x1")
	if balance != "1500000000000000000" {
		t.Errorf("expected stored balance, got %s", balance)
	}

	txs, _ := repo.GetWalletTransactions(ctx, AliceAddress)
	if len(txs) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].Hash == txs[1].Hash {
		t.Error("expected distinct transaction hashes")
	}

	wallet, _ := repo.GetWalletActiveChains(ctx, AliceAddress)
	if wallet == nil || len(wallet.ActiveChains) != 1 {
		t.Errorf("expected stored wallet summary, got %+v", wallet)
	}
}

func TestMockChainDataRepository_Strict(t *testing.T) {
	repo := NewMockChainDataRepository()
	repo.StrictAddresses = true

	if _, err := repo.GetWalletTransactions(context.Background(), BobAddress); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMockWalletProvider(t *testing.T) {
	provider := NewMockWalletProvider(AliceAddress, "0x1")
	ctx := context.Background()

	addr, chain, err := provider.SelectedAccount(ctx)
	if err != nil || addr != AliceAddress || chain != "0x1" {
		t.Errorf("unexpected account: %s %s %v", addr, chain, err)
	}

	provider.SetError(errors.New("locked"))
	if _, _, err := provider.SelectedAccount(ctx); err == nil {
		t.Error("expected error")
	}
}

func TestMockSessionStore(t *testing.T) {
	store := NewMockSessionStore()
	ctx := context.Background()

	if err := store.Save(ctx, repositories.SessionState{ID: "abc", ActiveTab: "nfts.json"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := store.Load(ctx, "abc")
	if err != nil || state == nil || state.ActiveTab != "nfts.json" {
		t.Errorf("unexpected state: %+v, %v", state, err)
	}

	_ = store.Delete(ctx, "abc")
	if state, _ := store.Load(ctx, "abc"); state != nil {
		t.Errorf("expected nil after delete, got %+v", state)
	}
}

func TestMockHealthChecker(t *testing.T) {
	checker := NewMockHealthChecker(true)
	if err := checker.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got %v", err)
	}

	checker.SetHealthy(false)
	if err := checker.HealthCheck(context.Background()); err == nil {
		t.Error("expected unhealthy")
	}
}
