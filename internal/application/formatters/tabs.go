package formatters

import (
	"errors"

	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// ErrUnknownTab is returned by ParseTab for names outside Tabs
var ErrUnknownTab = errors.New("unknown tab")

// Tab names one of the console's file tabs
type Tab string

const (
	TabWallet       Tab = "wallet.json"
	TabTransactions Tab = "transactions.json"
	TabNFTs         Tab = "nfts.json"
)

const explorerGuidance = "Try entering a different wallet address in the search\n\n" +
	"The address of the wallets can be taken from the website https://etherscan.io"

// Fallback texts shown when a tab has nothing to render
const (
	NoTransactionsText = "Don't have transactions.\n" + explorerGuidance
	NoNFTsText         = "No NFTs found.\n" + explorerGuidance
	NoWalletText       = "No wallet information found.\n" + explorerGuidance
	LoadingText        = "loading information..."
)

var tabs = []Tab{TabWallet, TabTransactions, TabNFTs}

// Tabs returns the tabs in display order
func Tabs() []Tab {
	out := make([]Tab, len(tabs))
	copy(out, tabs)
	return out
}

// ParseTab validates a tab name
func ParseTab(name string) (Tab, error) {
	for _, t := range tabs {
		if string(t) == name {
			return t, nil
		}
	}
	return "", ErrUnknownTab
}

// Next returns the tab after t, wrapping around
func (t Tab) Next() Tab {
	return t.offset(1)
}

// Prev returns the tab before t, wrapping around
func (t Tab) Prev() Tab {
	return t.offset(len(tabs) - 1)
}

func (t Tab) offset(n int) Tab {
	for i, candidate := range tabs {
		if candidate == t {
			return tabs[(i+n)%len(tabs)]
		}
	}
	return TabWallet
}

// FormatTab renders the snapshot's data for tab. It reports false when the
// snapshot holds nothing to show on that tab.
func FormatTab(tab Tab, snapshot entities.WalletSnapshot) (string, bool) {
	switch tab {
	case TabWallet:
		if snapshot.Wallet == nil {
			return "", false
		}
		return FormatWallet(snapshot.Wallet, snapshot.Balance), true
	case TabTransactions:
		if len(snapshot.Transactions) == 0 {
			return "", false
		}
		return FormatTransactions(snapshot.Transactions), true
	case TabNFTs:
		if len(snapshot.NFTs) == 0 {
			return "", false
		}
		return FormatNFTs(snapshot.NFTs), true
	}
	return "", false
}

// Fallback returns the fixed text of an empty tab. loading selects the
// wallet tab's loading text.
func Fallback(tab Tab, loading bool) string {
	switch tab {
	case TabTransactions:
		return NoTransactionsText
	case TabNFTs:
		return NoNFTsText
	}
	if loading {
		return LoadingText
	}
	return NoWalletText
}

// RenderTab renders tab from the snapshot, or its fallback text
func RenderTab(tab Tab, snapshot entities.WalletSnapshot, loading bool) string {
	if text, ok := FormatTab(tab, snapshot); ok {
		return text
	}
	return Fallback(tab, loading)
}
