package entities

// WalletSummary is the active-chain summary of a wallet
type WalletSummary struct {
	Address      string        `json:"address"`
	ActiveChains []ActiveChain `json:"active_chains"`
}

// ActiveChain describes one chain the wallet has been active on
type ActiveChain struct {
	Chain            string            `json:"chain"`
	ChainID          string            `json:"chain_id"`
	FirstTransaction *ChainTransaction `json:"first_transaction"`
	LastTransaction  *ChainTransaction `json:"last_transaction"`
}

// ChainTransaction points at a single transaction on a chain
type ChainTransaction struct {
	BlockNumber     string `json:"block_number"`
	BlockTimestamp  string `json:"block_timestamp"`
	TransactionHash string `json:"transaction_hash"`
}
