package testutil

import (
	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// Common test addresses
const (
	AliceAddress = "0x1111111111111111111111111111111111111111"
	BobAddress   = "0x2222222222222222222222222222222222222222"
	DeadAddress  = "0x000000000000000000000000000000000000dEaD"
	BAYCAddress  = "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"
)

// CreateTestTransaction creates a test transaction with default values
func CreateTestTransaction(opts ...TransactionOption) entities.Transaction {
	tx := entities.Transaction{
		Hash:                     "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Nonce:                    "7",
		TransactionIndex:         "12",
		FromAddress:              AliceAddress,
		ToAddress:                BobAddress,
		Value:                    "1000000000000000000", // 1 ETH
		Gas:                      "21000",
		GasPrice:                 "20000000000", // 20 gwei
		Input:                    "0x",
		ReceiptCumulativeGasUsed: "1250000",
		ReceiptGasUsed:           "21000",
		ReceiptStatus:            entities.ReceiptStatusSuccess,
		BlockTimestamp:           "2024-01-15T10:30:00.000Z",
		BlockNumber:              "19012345",
		BlockHash:                "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		TransactionFee:           "0.00042",
	}

	for _, opt := range opts {
		opt(&tx)
	}

	return tx
}

type TransactionOption func(*entities.Transaction)

func TxWithHash(hash string) TransactionOption {
	return func(tx *entities.Transaction) {
		tx.Hash = hash
	}
}

func TxWithValue(wei string) TransactionOption {
	return func(tx *entities.Transaction) {
		tx.Value = wei
	}
}

func TxWithGasPrice(wei string) TransactionOption {
	return func(tx *entities.Transaction) {
		tx.GasPrice = wei
	}
}

func TxWithStatus(status string) TransactionOption {
	return func(tx *entities.Transaction) {
		tx.ReceiptStatus = status
	}
}

func TxWithTimestamp(ts string) TransactionOption {
	return func(tx *entities.Transaction) {
		tx.BlockTimestamp = ts
	}
}

func TxWithLabels(from, to string) TransactionOption {
	return func(tx *entities.Transaction) {
		tx.FromAddressLabel = from
		tx.ToAddressLabel = to
	}
}

// CreateTestNFT creates a test NFT with default values
func CreateTestNFT(opts ...NFTOption) entities.NFT {
	n := entities.NFT{
		TokenAddress:       BAYCAddress,
		TokenID:            "42",
		TokenHash:          "5e3f0e2c1d6a7b8c9d0e1f2a3b4c5d6e",
		OwnerOf:            AliceAddress,
		Symbol:             "BAYC",
		Name:               "BoredApeYachtClub",
		ContractType:       "ERC721",
		Amount:             "1",
		PossibleSpam:       false,
		VerifiedCollection: true,
		BlockNumber:        "19000000",
		BlockNumberMinted:  "12299000",
		LastMetadataSync:   "2024-01-10T08:00:00.000Z",
		LastTokenURISync:   "2024-01-10T07:59:00.000Z",
		TokenURI:           "ipfs://QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq/42",
	}

	for _, opt := range opts {
		opt(&n)
	}

	return n
}

type NFTOption func(*entities.NFT)

func NFTWithTokenID(id string) NFTOption {
	return func(n *entities.NFT) {
		n.TokenID = id
	}
}

func NFTWithSpam(spam bool) NFTOption {
	return func(n *entities.NFT) {
		n.PossibleSpam = spam
	}
}

func NFTWithMetadata(metadata string) NFTOption {
	return func(n *entities.NFT) {
		n.Metadata = metadata
	}
}

func NFTWithCollectionLogo(uri string) NFTOption {
	return func(n *entities.NFT) {
		n.CollectionLogo = uri
	}
}

// CreateTestWalletSummary creates a wallet summary active on the primary chain
func CreateTestWalletSummary(address string, chains ...entities.ActiveChain) *entities.WalletSummary {
	if len(chains) == 0 {
		chains = []entities.ActiveChain{CreateTestActiveChain()}
	}
	return &entities.WalletSummary{
		Address:      address,
		ActiveChains: chains,
	}
}

// CreateTestActiveChain creates an eth mainnet chain entry with first and last transactions
func CreateTestActiveChain() entities.ActiveChain {
	return entities.ActiveChain{
		Chain:   "eth",
		ChainID: entities.PrimaryChainID,
		FirstTransaction: &entities.ChainTransaction{
			BlockNumber:     "12916166",
			BlockTimestamp:  "2021-07-28T10:11:05.000Z",
			TransactionHash: "0x1111aaaa",
		},
		LastTransaction: &entities.ChainTransaction{
			BlockNumber:     "19012345",
			BlockTimestamp:  "2024-01-15T10:30:00.000Z",
			TransactionHash: "0x2222bbbb",
		},
	}
}

// CreateMultipleTransactions creates count transactions with distinct hashes
func CreateMultipleTransactions(count int, opts ...TransactionOption) []entities.Transaction {
	txs := make([]entities.Transaction, count)
	for i := 0; i < count; i++ {
		hash := "0x" + string(rune('a'+i%26)) + "000000000000000000000000000000000000000000000000000000000000000"
		allOpts := append([]TransactionOption{TxWithHash(hash)}, opts...)
		txs[i] = CreateTestTransaction(allOpts...)
	}
	return txs
}
