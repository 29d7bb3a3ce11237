package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bimakw/wallet-console/internal/domain/entities"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

// ErrNotFound is returned by MockChainDataRepository for unknown addresses
// when StrictAddresses is set
var ErrNotFound = errors.New("address not found")

// MockChainDataRepository is a mock implementation of ChainDataRepository
type MockChainDataRepository struct {
	mu           sync.RWMutex
	balances     map[string]string
	nfts         map[string][]entities.NFT
	wallets      map[string]*entities.WalletSummary
	transactions map[string][]entities.Transaction

	// StrictAddresses makes lookups of unknown addresses fail with ErrNotFound
	StrictAddresses bool

	// Function hooks for custom behavior
	GetNativeBalanceFunc      func(ctx context.Context, address, chainID string) (string, error)
	GetWalletNFTsFunc         func(ctx context.Context, address, chainID string) ([]entities.NFT, error)
	GetWalletActiveChainsFunc func(ctx context.Context, address string) (*entities.WalletSummary, error)
	GetWalletTransactionsFunc func(ctx context.Context, address string) ([]entities.Transaction, error)

	// Call tracking
	Calls []MockCall
}

type MockCall struct {
	Method string
	Args   []interface{}
}

func NewMockChainDataRepository() *MockChainDataRepository {
	return &MockChainDataRepository{
		balances:     make(map[string]string),
		nfts:         make(map[string][]entities.NFT),
		wallets:      make(map[string]*entities.WalletSummary),
		transactions: make(map[string][]entities.Transaction),
		Calls:        make([]MockCall, 0),
	}
}

func (m *MockChainDataRepository) record(method string, args ...interface{}) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
	m.mu.Unlock()
}

func (m *MockChainDataRepository) GetNativeBalance(ctx context.Context, address, chainID string) (string, error) {
	m.record("GetNativeBalance", address, chainID)

	if m.GetNativeBalanceFunc != nil {
		return m.GetNativeBalanceFunc(ctx, address, chainID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if b, ok := m.balances[strings.ToLower(address)]; ok {
		return b, nil
	}
	if m.StrictAddresses {
		return "", ErrNotFound
	}
	return "0", nil
}

func (m *MockChainDataRepository) GetWalletNFTs(ctx context.Context, address, chainID string) ([]entities.NFT, error) {
	m.record("GetWalletNFTs", address, chainID)

	if m.GetWalletNFTsFunc != nil {
		return m.GetWalletNFTsFunc(ctx, address, chainID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if n, ok := m.nfts[strings.ToLower(address)]; ok {
		return n, nil
	}
	if m.StrictAddresses {
		return nil, ErrNotFound
	}
	return []entities.NFT{}, nil
}

func (m *MockChainDataRepository) GetWalletActiveChains(ctx context.Context, address string) (*entities.WalletSummary, error) {
	m.record("GetWalletActiveChains", address)

	if m.GetWalletActiveChainsFunc != nil {
		return m.GetWalletActiveChainsFunc(ctx, address)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if w, ok := m.wallets[strings.ToLower(address)]; ok {
		return w, nil
	}
	if m.StrictAddresses {
		return nil, ErrNotFound
	}
	return &entities.WalletSummary{Address: address, ActiveChains: []entities.ActiveChain{}}, nil
}

func (m *MockChainDataRepository) GetWalletTransactions(ctx context.Context, address string) ([]entities.Transaction, error) {
	m.record("GetWalletTransactions", address)

	if m.GetWalletTransactionsFunc != nil {
		return m.GetWalletTransactionsFunc(ctx, address)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if txs, ok := m.transactions[strings.ToLower(address)]; ok {
		return txs, nil
	}
	if m.StrictAddresses {
		return nil, ErrNotFound
	}
	return []entities.Transaction{}, nil
}

// SetBalance stores the raw wei balance returned for address
func (m *MockChainDataRepository) SetBalance(address, wei string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[strings.ToLower(address)] = wei
}

// AddNFTs appends NFTs returned for address
func (m *MockChainDataRepository) AddNFTs(address string, nfts ...entities.NFT) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(address)
	m.nfts[key] = append(m.nfts[key], nfts...)
}

// SetWallet stores the active-chain summary returned for address
func (m *MockChainDataRepository) SetWallet(address string, summary *entities.WalletSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[strings.ToLower(address)] = summary
}

// AddTransactions appends transactions returned for address
func (m *MockChainDataRepository) AddTransactions(address string, txs ...entities.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(address)
	m.transactions[key] = append(m.transactions[key], txs...)
}

// CallCount returns how many times method was called
func (m *MockChainDataRepository) CallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockChainDataRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances = make(map[string]string)
	m.nfts = make(map[string][]entities.NFT)
	m.wallets = make(map[string]*entities.WalletSummary)
	m.transactions = make(map[string][]entities.Transaction)
	m.Calls = make([]MockCall, 0)
}

// MockWalletProvider is a mock implementation of WalletProvider
type MockWalletProvider struct {
	mu      sync.RWMutex
	address string
	chainID string
	err     error

	Calls []MockCall
}

func NewMockWalletProvider(address, chainID string) *MockWalletProvider {
	return &MockWalletProvider{
		address: address,
		chainID: chainID,
		Calls:   make([]MockCall, 0),
	}
}

func (m *MockWalletProvider) SelectedAccount(ctx context.Context) (string, string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "SelectedAccount"})
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return "", "", m.err
	}
	return m.address, m.chainID, nil
}

// SetAccount changes the selected account
func (m *MockWalletProvider) SetAccount(address, chainID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.address = address
	m.chainID = chainID
}

// SetError makes SelectedAccount fail with err
func (m *MockWalletProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// MockSessionStore is a mock implementation of SessionStore
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]repositories.SessionState

	SaveFunc func(ctx context.Context, state repositories.SessionState) error
	LoadFunc func(ctx context.Context, id string) (*repositories.SessionState, error)

	Calls []MockCall
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]repositories.SessionState),
		Calls:    make([]MockCall, 0),
	}
}

func (m *MockSessionStore) Save(ctx context.Context, state repositories.SessionState) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "Save", Args: []interface{}{state}})
	m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, state)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[state.ID] = state
	return nil
}

func (m *MockSessionStore) Load(ctx context.Context, id string) (*repositories.SessionState, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: "Load", Args: []interface{}{id}})
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: "Delete", Args: []interface{}{id}})
	delete(m.sessions, id)
	return nil
}

// Stored returns the saved state for id
func (m *MockSessionStore) Stored(id string) (repositories.SessionState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[id]
	return state, ok
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	mu sync.RWMutex

	Healthy bool
	Error   error
	Calls   []MockCall
}

func NewMockHealthChecker(healthy bool) *MockHealthChecker {
	var err error
	if !healthy {
		err = errors.New("health check failed")
	}
	return &MockHealthChecker{
		Healthy: healthy,
		Error:   err,
		Calls:   make([]MockCall, 0),
	}
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: "HealthCheck", Args: nil})
	return m.Error
}

// CallCount returns how many checks were made
func (m *MockHealthChecker) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Calls)
}

func (m *MockHealthChecker) SetHealthy(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Healthy = healthy
	if healthy {
		m.Error = nil
	} else {
		m.Error = errors.New("health check failed")
	}
}
