package repositories

import "context"

// WalletProvider exposes the account selected in a connected wallet
type WalletProvider interface {
	// SelectedAccount returns the selected address and chain id.
	// An empty address means no account is selected.
	SelectedAccount(ctx context.Context) (address string, chainID string, err error)
}
