package formatters

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bimakw/wallet-console/internal/domain/entities"
)

const recordSeparator = "\n\n"

// FormatTransaction renders one transaction block
func FormatTransaction(tx entities.Transaction) string {
	status := Text("Failed")
	if tx.Succeeded() {
		status = Text("Success")
	}

	fee := Undefined()
	if tx.TransactionFee != "" {
		fee = Text(tx.TransactionFee + etherSuffix)
	}

	return NewDocument(true,
		F("hash", orUndefined(tx.Hash)),
		F("nonce", orUndefined(tx.Nonce)),
		F("transaction_index", orUndefined(tx.TransactionIndex)),
		F("from_address", orUndefined(tx.FromAddress)),
		F("from_address_label", orNotAvailable(tx.FromAddressLabel)),
		F("to_address", orUndefined(tx.ToAddress)),
		F("to_address_label", orNotAvailable(tx.ToAddressLabel)),
		F("value", etherAmount(tx.Value)),
		F("gas", orUndefined(tx.Gas)),
		F("gas_price", etherAmount(tx.GasPrice)),
		F("input", orUndefined(tx.Input)),
		F("receipt_cumulative_gas_used", orUndefined(tx.ReceiptCumulativeGasUsed)),
		F("receipt_gas_used", orUndefined(tx.ReceiptGasUsed)),
		F("receipt_status", status),
		F("block_timestamp", timestamp(tx.BlockTimestamp)),
		F("block_number", orUndefined(tx.BlockNumber)),
		F("block_hash", orUndefined(tx.BlockHash)),
		F("transaction_fee", fee),
	).String()
}

// FormatTransactions renders transactions separated by a blank line
func FormatTransactions(txs []entities.Transaction) string {
	blocks := make([]string, len(txs))
	for i, tx := range txs {
		blocks[i] = FormatTransaction(tx)
	}
	return strings.Join(blocks, recordSeparator)
}

// FormatNFT renders one NFT block
func FormatNFT(nft entities.NFT) string {
	minter := Text(notAvailable)
	if addr, ok := nft.MinterAddress(); ok {
		minter = Text(addr)
	}

	return NewDocument(false,
		F("amount", orUndefined(nft.Amount)),
		F("block_number", orUndefined(nft.BlockNumber)),
		F("block_number_minted", orUndefined(nft.BlockNumberMinted)),
		F("collection_banner_image", orUndefined(nft.CollectionBannerImage)),
		F("collection_logo", orUndefined(nft.CollectionLogo)),
		F("contract_type", orUndefined(nft.ContractType)),
		F("last_metadata_sync", timestamp(nft.LastMetadataSync)),
		F("last_token_uri_sync", timestamp(nft.LastTokenURISync)),
		F("metadata", Object(
			F("minter_address", minter),
		)),
		F("name", orUndefined(nft.Name)),
		F("owner_of", orUndefined(nft.OwnerOf)),
		F("possible_spam", yesNo(nft.PossibleSpam)),
		F("symbol", orUndefined(nft.Symbol)),
		F("token_address", orUndefined(nft.TokenAddress)),
		F("token_hash", orUndefined(nft.TokenHash)),
		F("token_id", orUndefined(nft.TokenID)),
		F("token_uri", orUndefined(nft.TokenURI)),
		F("verified_collection", yesNo(nft.VerifiedCollection)),
	).String()
}

// FormatNFTs renders NFTs separated by a blank line
func FormatNFTs(nfts []entities.NFT) string {
	blocks := make([]string, len(nfts))
	for i, nft := range nfts {
		blocks[i] = FormatNFT(nft)
	}
	return strings.Join(blocks, recordSeparator)
}

// FormatWallet renders the wallet summary with its balance. A wallet with no
// active chains still shows one placeholder chain entry.
func FormatWallet(summary *entities.WalletSummary, balance decimal.NullDecimal) string {
	if summary == nil {
		summary = &entities.WalletSummary{}
	}

	chains := make([]Value, 0, len(summary.ActiveChains))
	for _, chain := range summary.ActiveChains {
		chains = append(chains, activeChain(chain))
	}
	if len(chains) == 0 {
		chains = append(chains, activeChain(entities.ActiveChain{}))
	}

	return NewDocument(false,
		F("address", orUndefined(summary.Address)),
		F("balance", etherBalance(balance)),
		F("active_chains", List(chains...)),
	).String()
}

func activeChain(chain entities.ActiveChain) Value {
	return Object(
		F("chain", orUndefined(chain.Chain)),
		F("chain_id", orUndefined(chain.ChainID)),
		F("first_transaction", chainTransaction(chain.FirstTransaction)),
		F("last_transaction", chainTransaction(chain.LastTransaction)),
	)
}

func chainTransaction(tx *entities.ChainTransaction) Value {
	if tx == nil {
		return Null()
	}
	return Object(
		F("block_number", orUndefined(tx.BlockNumber)),
		F("block_timestamp", timestamp(tx.BlockTimestamp)),
		F("transaction_hash", orUndefined(tx.TransactionHash)),
	)
}
