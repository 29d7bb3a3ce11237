package moralis

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/config"
	"github.com/bimakw/wallet-console/internal/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	endpointBalance      = "balance"
	endpointNFTs         = "nfts"
	endpointActiveChains = "active_chains"
	endpointTransactions = "transactions"
	endpointVersion      = "version"
)

// Client talks to the Moralis Web3 Data API
type Client struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a new indexing API client
func NewClient(cfg config.MoralisConfig, logger *zap.Logger) *Client {
	return &Client{
		client: &fasthttp.Client{
			Name:                "wallet-console",
			MaxIdleConnDuration: 90 * time.Second,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.RequestTimeout,
		logger:  logger.Named("moralis"),
	}
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Start initializes the process-wide client. It fails if the client is
// already running; call Stop first to start it again.
func Start(cfg config.MoralisConfig, logger *zap.Logger) (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient != nil {
		return nil, ErrAlreadyStarted
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("moralis api key is not defined")
	}

	defaultClient = NewClient(cfg, logger)
	logger.Info("Moralis client started", zap.String("base_url", defaultClient.baseURL))
	return defaultClient, nil
}

// Default returns the process-wide client
func Default() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient == nil {
		return nil, ErrNotStarted
	}
	return defaultClient, nil
}

// Stop tears down the process-wide client
func Stop() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient == nil {
		return
	}
	defaultClient.client.CloseIdleConnections()
	defaultClient = nil
}

// GetNativeBalance returns the raw native balance in wei
func (c *Client) GetNativeBalance(ctx context.Context, address, chainID string) (string, error) {
	query := url.Values{}
	query.Set("chain", chainID)

	var resp balanceResponse
	if err := c.get(ctx, endpointBalance, "/"+url.PathEscape(address)+"/balance", query, &resp); err != nil {
		return "", err
	}
	if resp.Balance == "" {
		return "", fmt.Errorf("moralis %s: empty balance: %w", endpointBalance, ErrMalformedPayload)
	}
	return resp.Balance, nil
}

// GetWalletNFTs returns the first page of NFTs held by the wallet
func (c *Client) GetWalletNFTs(ctx context.Context, address, chainID string) ([]entities.NFT, error) {
	query := url.Values{}
	query.Set("chain", chainID)
	query.Set("format", "decimal")

	var resp nftResponse
	if err := c.get(ctx, endpointNFTs, "/"+url.PathEscape(address)+"/nft", query, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return []entities.NFT{}, nil
	}
	return resp.Result, nil
}

// GetWalletActiveChains returns the wallet's active-chain summary
func (c *Client) GetWalletActiveChains(ctx context.Context, address string) (*entities.WalletSummary, error) {
	var resp entities.WalletSummary
	if err := c.get(ctx, endpointActiveChains, "/wallets/"+url.PathEscape(address)+"/chains", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Address == "" {
		resp.Address = address
	}
	return &resp, nil
}

// GetWalletTransactions returns the first page of primary chain
// transactions, newest first
func (c *Client) GetWalletTransactions(ctx context.Context, address string) ([]entities.Transaction, error) {
	query := url.Values{}
	query.Set("chain", entities.PrimaryChainID)
	query.Set("order", "DESC")

	var resp transactionsResponse
	if err := c.get(ctx, endpointTransactions, "/"+url.PathEscape(address), query, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return []entities.Transaction{}, nil
	}
	return resp.Result, nil
}

// HealthCheck checks if the indexing API is reachable with our key
func (c *Client) HealthCheck(ctx context.Context) error {
	var resp versionResponse
	return c.get(ctx, endpointVersion, "/web3/version", nil, &resp)
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("moralis %s: %w", endpoint, err)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Requesting indexing API",
		zap.String("endpoint", endpoint),
		zap.String("path", path),
	)

	start := time.Now()
	err := c.do(ctx, req, resp)
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		c.logger.Warn("Indexing API request failed",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("moralis %s: request failed: %w", endpoint, err)
	}

	body := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		upstreamRequestsTotal.WithLabelValues(endpoint, "status_error").Inc()
		apiErr := &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode()}
		var errBody errorResponse
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Message
		}
		c.logger.Warn("Indexing API returned error status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode()),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if err := json.Unmarshal(body, dest); err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "malformed").Inc()
		c.logger.Warn("Failed to decode indexing API response",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("moralis %s: %w: %v", endpoint, ErrMalformedPayload, err)
	}

	upstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

// do executes the request honouring the context deadline and the
// configured timeout, whichever comes first. A zero timeout and no
// deadline leave the call unbounded.
func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline, hasDeadline := ctx.Deadline()
	if c.timeout > 0 {
		timeoutDeadline := time.Now().Add(c.timeout)
		if !hasDeadline || timeoutDeadline.Before(deadline) {
			deadline = timeoutDeadline
			hasDeadline = true
		}
	}

	if hasDeadline {
		return c.client.DoDeadline(req, resp, deadline)
	}
	return c.client.Do(req, resp)
}
