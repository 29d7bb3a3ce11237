package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/domain/entities"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

// AddressResolver decides which (address, chain) pair, if any, to fetch
type AddressResolver struct {
	wallet repositories.WalletProvider
	logger *zap.Logger
}

// NewAddressResolver creates a new resolver. wallet may be nil when no
// wallet is connected.
func NewAddressResolver(wallet repositories.WalletProvider, logger *zap.Logger) *AddressResolver {
	return &AddressResolver{
		wallet: wallet,
		logger: logger,
	}
}

// Resolve returns the pair to fetch. With no explicit address and no chain
// the connected wallet's selected account is used; an explicit address is
// taken verbatim on chainID (default 0x1). An explicit chain without an
// address, a wallet that cannot answer, or a malformed address resolve to
// nothing.
func (r *AddressResolver) Resolve(ctx context.Context, address, chainID string) (entities.SnapshotKey, bool) {
	switch {
	case address != "":
		if !entities.IsValidAddress(address) {
			r.logger.Debug("Ignoring malformed address", zap.String("address", address))
			return entities.SnapshotKey{}, false
		}
		return entities.NewSnapshotKey(address, chainID), true

	case chainID != "":
		return entities.SnapshotKey{}, false
	}

	if r.wallet == nil {
		return entities.SnapshotKey{}, false
	}

	selected, selectedChain, err := r.wallet.SelectedAccount(ctx)
	if err != nil {
		r.logger.Warn("Failed to read connected wallet", zap.Error(err))
		return entities.SnapshotKey{}, false
	}
	if !entities.IsValidAddress(selected) {
		return entities.SnapshotKey{}, false
	}

	return entities.NewSnapshotKey(selected, selectedChain), true
}
