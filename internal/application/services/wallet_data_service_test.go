package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/domain/entities"
	"github.com/bimakw/wallet-console/internal/testutil"
)

func TestWalletDataService_Fetch(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	t.Run("collects all four parts", func(t *testing.T) {
		repo := testutil.NewMockChainDataRepository()
		repo.SetBalance(testutil.AliceAddress, "1500000000000000000")
		repo.AddNFTs(testutil.AliceAddress, testutil.CreateTestNFT())
		repo.SetWallet(testutil.AliceAddress, testutil.CreateTestWalletSummary(testutil.AliceAddress))
		repo.AddTransactions(testutil.AliceAddress, testutil.CreateMultipleTransactions(3)...)

		service := NewWalletDataService(repo, clock, logger)
		key := entities.NewSnapshotKey(testutil.AliceAddress, "0x1")

		snapshot := service.Fetch(ctx, key)

		if snapshot.Key != key {
			t.Errorf("expected key %v, got %v", key, snapshot.Key)
		}
		if !snapshot.Balance.Valid || !snapshot.Balance.Decimal.Equal(decimal.RequireFromString("1.5")) {
			t.Errorf("expected balance 1.5, got %v", snapshot.Balance)
		}
		if len(snapshot.NFTs) != 1 {
			t.Errorf("expected 1 nft, got %d", len(snapshot.NFTs))
		}
		if snapshot.Wallet == nil || len(snapshot.Wallet.ActiveChains) != 1 {
			t.Errorf("expected wallet summary, got %+v", snapshot.Wallet)
		}
		if len(snapshot.Transactions) != 3 {
			t.Errorf("expected 3 transactions, got %d", len(snapshot.Transactions))
		}
		if len(snapshot.Failures) != 0 {
			t.Errorf("expected no failures, got %+v", snapshot.Failures)
		}
		if !snapshot.FetchedAt.Equal(clock.Now()) {
			t.Errorf("expected fetched at %v, got %v", clock.Now(), snapshot.FetchedAt)
		}
	})

	t.Run("requests use the key's chain except transactions", func(t *testing.T) {
		repo := testutil.NewMockChainDataRepository()
		service := NewWalletDataService(repo, clock, logger)

		service.Fetch(ctx, entities.NewSnapshotKey(testutil.AliceAddress, "0x89"))

		for _, call := range repo.Calls {
			switch call.Method {
			case "GetNativeBalance", "GetWalletNFTs":
				if call.Args[1] != "0x89" {
					t.Errorf("%s: expected chain 0x89, got %v", call.Method, call.Args[1])
				}
			case "GetWalletTransactions", "GetWalletActiveChains":
				if len(call.Args) != 1 {
					t.Errorf("%s: expected address only, got %v", call.Method, call.Args)
				}
			}
		}
		if len(repo.Calls) != 4 {
			t.Errorf("expected 4 calls, got %d", len(repo.Calls))
		}
	})

	t.Run("failures leave their part empty", func(t *testing.T) {
		repo := testutil.NewMockChainDataRepository()
		repo.SetWallet(testutil.AliceAddress, testutil.CreateTestWalletSummary(testutil.AliceAddress))
		repo.GetWalletTransactionsFunc = func(ctx context.Context, address string) ([]entities.Transaction, error) {
			return nil, errors.New("upstream returned 500")
		}
		repo.GetWalletNFTsFunc = func(ctx context.Context, address, chainID string) ([]entities.NFT, error) {
			return nil, errors.New("rate limited")
		}
		repo.GetNativeBalanceFunc = func(ctx context.Context, address, chainID string) (string, error) {
			return "lots", nil
		}

		service := NewWalletDataService(repo, clock, logger)
		snapshot := service.Fetch(ctx, entities.NewSnapshotKey(testutil.AliceAddress, "0x1"))

		if snapshot.Balance.Valid {
			t.Errorf("expected null balance, got %v", snapshot.Balance)
		}
		if snapshot.Transactions == nil || len(snapshot.Transactions) != 0 {
			t.Errorf("expected empty transactions, got %v", snapshot.Transactions)
		}
		if snapshot.NFTs == nil || len(snapshot.NFTs) != 0 {
			t.Errorf("expected empty nfts, got %v", snapshot.NFTs)
		}
		if snapshot.Wallet == nil {
			t.Error("expected wallet summary to survive other failures")
		}

		wantKinds := []entities.DataKind{entities.DataKindBalance, entities.DataKindNFTs, entities.DataKindTransactions}
		if len(snapshot.Failures) != len(wantKinds) {
			t.Fatalf("expected %d failures, got %+v", len(wantKinds), snapshot.Failures)
		}
		for i, kind := range wantKinds {
			if snapshot.Failures[i].Kind != kind {
				t.Errorf("failure %d: expected %s, got %s", i, kind, snapshot.Failures[i].Kind)
			}
		}
	})
}

func TestWalletDataService_BalanceIsExact(t *testing.T) {
	clock := clockwork.NewFakeClock()

	tests := []struct {
		wei  string
		want string
	}{
		{"0", "0"},
		{"1", "0.000000000000000001"},
		{"1000000000000000000", "1"},
		{"123456789012345678901234567890", "123456789012.34567890123456789"},
		{"999999999999999999", "0.999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.wei, func(t *testing.T) {
			repo := testutil.NewMockChainDataRepository()
			repo.SetBalance(testutil.AliceAddress, tt.wei)

			service := NewWalletDataService(repo, clock, zap.NewNop())
			snapshot := service.Fetch(context.Background(), entities.NewSnapshotKey(testutil.AliceAddress, "0x1"))

			want := decimal.RequireFromString(tt.want)
			if !snapshot.Balance.Valid || !snapshot.Balance.Decimal.Equal(want) {
				t.Errorf("expected %s ETH, got %v", tt.want, snapshot.Balance)
			}

			// wei * 10^-18 * 10^18 must give back the raw amount
			back := snapshot.Balance.Decimal.Shift(18)
			if back.String() != tt.wei {
				t.Errorf("expected round trip to %s, got %s", tt.wei, back.String())
			}
		})
	}
}
