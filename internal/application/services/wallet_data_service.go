package services

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/wallet-console/internal/domain/entities"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

var kindOrder = map[entities.DataKind]int{
	entities.DataKindBalance:      0,
	entities.DataKindNFTs:         1,
	entities.DataKindWallet:       2,
	entities.DataKindTransactions: 3,
}

// WalletDataService gathers everything the console shows for one wallet
type WalletDataService struct {
	chainData repositories.ChainDataRepository
	clock     clockwork.Clock
	logger    *zap.Logger
}

// NewWalletDataService creates a new wallet data service
func NewWalletDataService(
	chainData repositories.ChainDataRepository,
	clock clockwork.Clock,
	logger *zap.Logger,
) *WalletDataService {
	return &WalletDataService{
		chainData: chainData,
		clock:     clock,
		logger:    logger,
	}
}

// Fetch issues the balance, NFT, active-chain and transaction requests
// concurrently and returns once all of them settled. A failed request
// leaves its part of the snapshot empty and is listed in Failures.
func (s *WalletDataService) Fetch(ctx context.Context, key entities.SnapshotKey) entities.WalletSnapshot {
	start := s.clock.Now()

	snapshot := entities.WalletSnapshot{
		Key:          key,
		NFTs:         []entities.NFT{},
		Transactions: []entities.Transaction{},
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)

	fail := func(kind entities.DataKind, err error) {
		fetchFailuresTotal.WithLabelValues(string(kind)).Inc()
		s.logger.Warn("Wallet data request failed",
			zap.String("kind", string(kind)),
			zap.String("address", key.Address),
			zap.String("chain_id", key.ChainID),
			zap.Error(err),
		)
		mu.Lock()
		snapshot.Failures = append(snapshot.Failures, entities.FetchFailure{Kind: kind, Message: err.Error()})
		mu.Unlock()
	}

	g.Go(func() error {
		wei, err := s.chainData.GetNativeBalance(ctx, key.Address, key.ChainID)
		if err != nil {
			fail(entities.DataKindBalance, err)
			return nil
		}
		balance, err := entities.WeiToEther(wei)
		if err != nil {
			fail(entities.DataKindBalance, err)
			return nil
		}
		mu.Lock()
		snapshot.Balance = decimal.NewNullDecimal(balance)
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		nfts, err := s.chainData.GetWalletNFTs(ctx, key.Address, key.ChainID)
		if err != nil {
			fail(entities.DataKindNFTs, err)
			return nil
		}
		if nfts != nil {
			mu.Lock()
			snapshot.NFTs = nfts
			mu.Unlock()
		}
		return nil
	})

	g.Go(func() error {
		wallet, err := s.chainData.GetWalletActiveChains(ctx, key.Address)
		if err != nil {
			fail(entities.DataKindWallet, err)
			return nil
		}
		mu.Lock()
		snapshot.Wallet = wallet
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		txs, err := s.chainData.GetWalletTransactions(ctx, key.Address)
		if err != nil {
			fail(entities.DataKindTransactions, err)
			return nil
		}
		if txs != nil {
			mu.Lock()
			snapshot.Transactions = txs
			mu.Unlock()
		}
		return nil
	})

	_ = g.Wait()

	sort.Slice(snapshot.Failures, func(i, j int) bool {
		return kindOrder[snapshot.Failures[i].Kind] < kindOrder[snapshot.Failures[j].Kind]
	})
	snapshot.FetchedAt = s.clock.Now()
	fetchDuration.Observe(snapshot.FetchedAt.Sub(start).Seconds())

	s.logger.Debug("Wallet data fetched",
		zap.String("address", key.Address),
		zap.String("chain_id", key.ChainID),
		zap.Int("nfts", len(snapshot.NFTs)),
		zap.Int("transactions", len(snapshot.Transactions)),
		zap.Int("failures", len(snapshot.Failures)),
	)

	return snapshot
}
