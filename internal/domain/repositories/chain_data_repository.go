package repositories

import (
	"context"

	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// ChainDataRepository defines the read operations against the indexing API.
// Every failure is returned as an error, never as an empty value.
type ChainDataRepository interface {
	// GetNativeBalance returns the raw native balance (wei) as a decimal string
	GetNativeBalance(ctx context.Context, address, chainID string) (string, error)

	// GetWalletNFTs returns the NFTs held by the wallet on a chain
	GetWalletNFTs(ctx context.Context, address, chainID string) ([]entities.NFT, error)

	// GetWalletActiveChains returns the wallet's active-chain summary
	GetWalletActiveChains(ctx context.Context, address string) (*entities.WalletSummary, error)

	// GetWalletTransactions returns primary chain transactions, newest first
	GetWalletTransactions(ctx context.Context, address string) ([]entities.Transaction, error)
}
