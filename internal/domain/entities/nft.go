package entities

import (
	jsoniter "github.com/json-iterator/go"
)

// NFT is a single NFT holding of a wallet
type NFT struct {
	TokenAddress          string `json:"token_address"`
	TokenID               string `json:"token_id"`
	TokenHash             string `json:"token_hash"`
	OwnerOf               string `json:"owner_of"`
	Symbol                string `json:"symbol"`
	Name                  string `json:"name"`
	ContractType          string `json:"contract_type"`
	Amount                string `json:"amount"`
	PossibleSpam          bool   `json:"possible_spam"`
	VerifiedCollection    bool   `json:"verified_collection"`
	BlockNumber           string `json:"block_number"`
	BlockNumberMinted     string `json:"block_number_minted"`
	LastMetadataSync      string `json:"last_metadata_sync"`
	LastTokenURISync      string `json:"last_token_uri_sync"`
	Metadata              string `json:"metadata"` // raw JSON document as served by the indexer
	TokenURI              string `json:"token_uri"`
	CollectionLogo        string `json:"collection_logo"`
	CollectionBannerImage string `json:"collection_banner_image"`
}

// MinterAddress extracts minter_address from the raw metadata, if any
func (n NFT) MinterAddress() (string, bool) {
	if n.Metadata == "" {
		return "", false
	}
	minter := jsoniter.Get([]byte(n.Metadata), "minter_address")
	if minter.LastError() != nil || minter.ValueType() != jsoniter.StringValue {
		return "", false
	}
	addr := minter.ToString()
	return addr, addr != ""
}
