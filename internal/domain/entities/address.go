package entities

import (
	"regexp"
	"strings"
)

// PrimaryChainID is the chain queried when no chain is given
const PrimaryChainID = "0x1"

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsValidAddress reports whether s is a 0x-prefixed 40 hex character address.
// Checksums are not verified.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// SnapshotKey identifies the target of one fetch cycle
type SnapshotKey struct {
	Address string `json:"address"`
	ChainID string `json:"chain_id"`
}

// NewSnapshotKey builds a key, defaulting the chain to the primary chain
func NewSnapshotKey(address, chainID string) SnapshotKey {
	if chainID == "" {
		chainID = PrimaryChainID
	}
	return SnapshotKey{Address: address, ChainID: chainID}
}

// IsZero reports whether the key is unset
func (k SnapshotKey) IsZero() bool {
	return k.Address == "" && k.ChainID == ""
}

// Equal compares keys; addresses are case-insensitive
func (k SnapshotKey) Equal(other SnapshotKey) bool {
	return strings.EqualFold(k.Address, other.Address) && strings.EqualFold(k.ChainID, other.ChainID)
}

func (k SnapshotKey) String() string {
	return k.Address + "@" + k.ChainID
}
