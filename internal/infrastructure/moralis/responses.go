package moralis

import "github.com/bimakw/wallet-console/internal/domain/entities"

type balanceResponse struct {
	Balance string `json:"balance"`
}

type nftResponse struct {
	Status   string         `json:"status"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Cursor   *string        `json:"cursor"`
	Result   []entities.NFT `json:"result"`
}

type transactionsResponse struct {
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
	Cursor   *string                `json:"cursor"`
	Result   []entities.Transaction `json:"result"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type errorResponse struct {
	Message string `json:"message"`
}
