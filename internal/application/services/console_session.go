package services

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/application/formatters"
	"github.com/bimakw/wallet-console/internal/domain/entities"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
)

// Where a console text came from
const (
	SourceSearch   = "search"
	SourceWallet   = "wallet"
	SourceFallback = "fallback"
)

// ConnectedAccount holds the account reported by a browser wallet widget.
// It satisfies repositories.WalletProvider.
type ConnectedAccount struct {
	mu      sync.RWMutex
	address string
	chainID string
}

// Set records the widget's selected account
func (a *ConnectedAccount) Set(address, chainID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.address = address
	a.chainID = chainID
}

// SelectedAccount returns the last reported account
func (a *ConnectedAccount) SelectedAccount(context.Context) (string, string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.address, a.chainID, nil
}

// ConsoleView is what one console tab currently shows
type ConsoleView struct {
	Tab    formatters.Tab `json:"tab"`
	State  string         `json:"state"`
	Source string         `json:"source"`
	Text   string         `json:"text"`
}

// SessionDTO is the API representation of a console session
type SessionDTO struct {
	ID          string                `json:"id"`
	Wallet      *entities.SnapshotKey `json:"wallet"`
	WalletState string                `json:"wallet_state"`
	SearchText  string                `json:"search_text"`
	SearchState string                `json:"search_state"`
	ActiveTab   formatters.Tab        `json:"active_tab"`
	CreatedAt   string                `json:"created_at"`
}

// SessionResponse wraps a session for API response
type SessionResponse struct {
	Data SessionDTO `json:"data"`
}

// ConsoleSession is one open console: the connected wallet, the debounced
// search box and the selected tab
type ConsoleSession struct {
	id        string
	createdAt time.Time
	logger    *zap.Logger

	wallet    repositories.WalletProvider
	connected *WalletTracker
	search    *WalletTracker
	debouncer *Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.RWMutex
	searchText string
	activeTab  formatters.Tab
	closed     bool
}

// SessionOptions configures a new ConsoleSession
type SessionOptions struct {
	ID string
	// Wallet supplies the connected account. A nil Wallet gets a
	// ConnectedAccount the caller can update with ConnectWallet.
	Wallet   repositories.WalletProvider
	Fetcher  SnapshotFetcher
	Clock    clockwork.Clock
	Debounce time.Duration
	Logger   *zap.Logger
}

// NewConsoleSession creates a session showing the wallet tab
func NewConsoleSession(opts SessionOptions) *ConsoleSession {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Wallet == nil {
		opts.Wallet = &ConnectedAccount{}
	}
	logger := opts.Logger.With(zap.String("session_id", opts.ID))

	ctx, cancel := context.WithCancel(context.Background())
	s := &ConsoleSession{
		id:        opts.ID,
		createdAt: opts.Clock.Now(),
		logger:    logger,
		wallet:    opts.Wallet,
		connected: NewWalletTracker(NewAddressResolver(opts.Wallet, logger), opts.Fetcher, logger),
		search:    NewWalletTracker(NewAddressResolver(nil, logger), opts.Fetcher, logger),
		ctx:       ctx,
		cancel:    cancel,
		activeTab: formatters.TabWallet,
	}
	s.debouncer = NewDebouncer(opts.Clock, opts.Debounce, s.commitSearch)
	return s
}

// ID returns the session id
func (s *ConsoleSession) ID() string {
	return s.id
}

// Start resolves the connected wallet
func (s *ConsoleSession) Start(ctx context.Context) {
	s.connected.Track(ctx, "", "")
}

// ConnectWallet records an account reported by the wallet widget and
// refetches when it changed. It reports whether the account resolved.
func (s *ConsoleSession) ConnectWallet(ctx context.Context, address, chainID string) bool {
	if account, ok := s.wallet.(*ConnectedAccount); ok {
		account.Set(address, chainID)
	}
	if !s.connected.Track(ctx, "", "") {
		s.connected.Reset()
		return false
	}
	return true
}

// Type updates the search box; the value is committed after the quiet window
func (s *ConsoleSession) Type(text string) {
	s.mu.Lock()
	s.searchText = text
	s.mu.Unlock()

	s.debouncer.Submit(text)
}

// Submit commits the pending search text immediately
func (s *ConsoleSession) Submit() {
	if !s.debouncer.Flush() {
		s.mu.RLock()
		text := s.searchText
		s.mu.RUnlock()
		s.commitSearch(text)
	}
}

func (s *ConsoleSession) commitSearch(text string) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return
	}

	if !s.search.Track(s.ctx, text, entities.PrimaryChainID) {
		s.search.Reset()
	}
}

// SelectTab switches the visible tab
func (s *ConsoleSession) SelectTab(tab formatters.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

// ActiveTab returns the visible tab
func (s *ConsoleSession) ActiveTab() formatters.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTab
}

// SearchText returns the raw search box contents
func (s *ConsoleSession) SearchText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchText
}

// View renders the active tab
func (s *ConsoleSession) View() ConsoleView {
	return s.ViewTab(s.ActiveTab())
}

// ViewTab renders tab: the search result when it has data for the tab,
// otherwise the connected wallet's data, otherwise the tab's fallback text
func (s *ConsoleSession) ViewTab(tab formatters.Tab) ConsoleView {
	searchState := s.search.State()
	connectedState := s.connected.State()

	if searchState == StateReady {
		if text, ok := formatters.FormatTab(tab, s.search.Snapshot()); ok {
			return ConsoleView{Tab: tab, State: searchState.String(), Source: SourceSearch, Text: text}
		}
	}
	if connectedState == StateReady {
		if text, ok := formatters.FormatTab(tab, s.connected.Snapshot()); ok {
			return ConsoleView{Tab: tab, State: connectedState.String(), Source: SourceWallet, Text: text}
		}
	}

	state := connectedState
	if searchState != StateIdle {
		state = searchState
	}
	loading := state != StateReady
	return ConsoleView{Tab: tab, State: state.String(), Source: SourceFallback, Text: formatters.Fallback(tab, loading)}
}

// DTO returns the API representation of the session
func (s *ConsoleSession) DTO() SessionDTO {
	state := s.State()
	dto := SessionDTO{
		ID:          state.ID,
		WalletState: s.connected.State().String(),
		SearchText:  state.SearchText,
		SearchState: s.search.State().String(),
		ActiveTab:   formatters.Tab(state.ActiveTab),
		CreatedAt:   state.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !state.Wallet.IsZero() {
		dto.Wallet = &state.Wallet
	}
	return dto
}

// SearchSnapshot returns the last search result
func (s *ConsoleSession) SearchSnapshot() entities.WalletSnapshot {
	return s.search.Snapshot()
}

// WalletSnapshot returns the connected wallet's data
func (s *ConsoleSession) WalletSnapshot() entities.WalletSnapshot {
	return s.connected.Snapshot()
}

// SearchUpdates delivers each published search snapshot
func (s *ConsoleSession) SearchUpdates() <-chan entities.WalletSnapshot {
	return s.search.Updates()
}

// WalletUpdates delivers each published connected-wallet snapshot
func (s *ConsoleSession) WalletUpdates() <-chan entities.WalletSnapshot {
	return s.connected.Updates()
}

// State returns the persistable inputs of the session
func (s *ConsoleSession) State() repositories.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return repositories.SessionState{
		ID:         s.id,
		Wallet:     s.connected.Key(),
		SearchText: s.searchText,
		ActiveTab:  string(s.activeTab),
		CreatedAt:  s.createdAt,
	}
}

// Restore replays persisted inputs into a fresh session
func (s *ConsoleSession) Restore(ctx context.Context, state repositories.SessionState) {
	s.mu.Lock()
	s.createdAt = state.CreatedAt
	if tab, err := formatters.ParseTab(state.ActiveTab); err == nil {
		s.activeTab = tab
	}
	s.searchText = state.SearchText
	s.mu.Unlock()

	if !state.Wallet.IsZero() {
		s.ConnectWallet(ctx, state.Wallet.Address, state.Wallet.ChainID)
	}
	if state.SearchText != "" {
		s.commitSearch(state.SearchText)
	}
}

// Close stops the debouncer and discards both trackers
func (s *ConsoleSession) Close() {
	s.shutdown()
}

// shutdown closes the session and reports whether this call did it.
func (s *ConsoleSession) shutdown() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	s.mu.Unlock()

	s.debouncer.Stop()
	s.cancel()
	s.search.Close()
	s.connected.Close()
	s.logger.Debug("Console session closed")
	return true
}

// Closed reports whether Close has been called
func (s *ConsoleSession) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
