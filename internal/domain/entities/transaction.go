package entities

// ReceiptStatusSuccess is the receipt status of a successful transaction
const ReceiptStatusSuccess = "1"

// Transaction is a native transaction of a wallet
type Transaction struct {
	Hash                     string `json:"hash"`
	Nonce                    string `json:"nonce"`
	TransactionIndex         string `json:"transaction_index"`
	FromAddress              string `json:"from_address"`
	FromAddressLabel         string `json:"from_address_label"`
	ToAddress                string `json:"to_address"`
	ToAddressLabel           string `json:"to_address_label"`
	Value                    string `json:"value"`     // Raw wei
	Gas                      string `json:"gas"`
	GasPrice                 string `json:"gas_price"` // Raw wei
	Input                    string `json:"input"`
	ReceiptCumulativeGasUsed string `json:"receipt_cumulative_gas_used"`
	ReceiptGasUsed           string `json:"receipt_gas_used"`
	ReceiptStatus            string `json:"receipt_status"`
	BlockTimestamp           string `json:"block_timestamp"`
	BlockNumber              string `json:"block_number"`
	BlockHash                string `json:"block_hash"`
	TransactionFee           string `json:"transaction_fee"` // Already in ETH
}

// Succeeded reports whether the receipt status marks success
func (t Transaction) Succeeded() bool {
	return t.ReceiptStatus == ReceiptStatusSuccess
}
