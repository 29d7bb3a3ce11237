package ethereum

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/config"
)

// WalletProvider reads the selected account of a connected wallet over
// JSON-RPC (Frame, a local signer, or any node exposing eth_accounts)
type WalletProvider struct {
	client  *rpc.Client
	rpcURL  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewWalletProvider dials the wallet's JSON-RPC endpoint
func NewWalletProvider(ctx context.Context, cfg config.WalletConfig, logger *zap.Logger) (*WalletProvider, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("wallet rpc url is not defined")
	}

	client, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to wallet: %w", err)
	}

	logger.Info("Wallet provider configured", zap.String("rpc_url", cfg.RPCURL))

	return &WalletProvider{
		client:  client,
		rpcURL:  cfg.RPCURL,
		timeout: cfg.RequestTimeout,
		logger:  logger.Named("wallet"),
	}, nil
}

// Close closes the wallet connection
func (p *WalletProvider) Close() {
	p.client.Close()
}

// SelectedAccount returns the wallet's first account and its current chain.
// A wallet with no unlocked account yields an empty address and no error.
func (p *WalletProvider) SelectedAccount(ctx context.Context) (string, string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var accounts []string
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		p.logger.Warn("Failed to read wallet accounts", zap.Error(err))
		return "", "", fmt.Errorf("failed to get wallet accounts: %w", err)
	}
	if len(accounts) == 0 {
		p.logger.Debug("Wallet has no selected account")
		return "", "", nil
	}

	chainID, err := p.chainID(ctx)
	if err != nil {
		return "", "", err
	}

	p.logger.Debug("Wallet account selected",
		zap.String("address", accounts[0]),
		zap.String("chain_id", chainID),
	)
	return accounts[0], chainID, nil
}

// HealthCheck checks if the wallet endpoint answers
func (p *WalletProvider) HealthCheck(ctx context.Context) error {
	_, err := p.chainID(ctx)
	return err
}

// chainID returns the wallet's chain id as a 0x quantity
func (p *WalletProvider) chainID(ctx context.Context) (string, error) {
	var id hexutil.Big
	if err := p.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return "", fmt.Errorf("failed to get wallet chain ID: %w", err)
	}
	return hexutil.EncodeBig(id.ToInt()), nil
}
