package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataKind names one of the four data sets fetched per cycle
type DataKind string

const (
	DataKindBalance      DataKind = "balance"
	DataKindNFTs         DataKind = "nfts"
	DataKindWallet       DataKind = "wallet"
	DataKindTransactions DataKind = "transactions"
)

// FetchFailure records why one data set of a snapshot is empty
type FetchFailure struct {
	Kind    DataKind `json:"kind"`
	Message string   `json:"message"`
}

// WalletSnapshot is the data fetched for one (address, chain) pair.
// It is replaced as a whole, never patched.
type WalletSnapshot struct {
	Key          SnapshotKey         `json:"key"`
	Balance      decimal.NullDecimal `json:"balance"` // ETH
	Wallet       *WalletSummary      `json:"wallet"`
	NFTs         []NFT               `json:"nfts"`
	Transactions []Transaction       `json:"transactions"` // Newest first
	Failures     []FetchFailure      `json:"failures,omitempty"`
	FetchedAt    time.Time           `json:"fetched_at"`
}

// IsEmpty reports whether no cycle has been published into the snapshot
func (s WalletSnapshot) IsEmpty() bool {
	return s.Key.IsZero()
}

// Failed reports whether the given data set failed to load
func (s WalletSnapshot) Failed(kind DataKind) bool {
	for _, f := range s.Failures {
		if f.Kind == kind {
			return true
		}
	}
	return false
}
