package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/application/formatters"
	"github.com/bimakw/wallet-console/internal/application/services"
	"github.com/bimakw/wallet-console/internal/domain/entities"
	"github.com/bimakw/wallet-console/internal/domain/repositories"
	"github.com/bimakw/wallet-console/internal/testutil"
)

type sessionFixture struct {
	router   chi.Router
	repo     *testutil.MockChainDataRepository
	store    *testutil.MockSessionStore
	clock    *clockwork.FakeClock
	registry *services.SessionRegistry
}

func setupSessionHandler(t *testing.T) *sessionFixture {
	t.Helper()

	logger := zap.NewNop()
	repo := testutil.NewMockChainDataRepository()
	store := testutil.NewMockSessionStore()
	clock := clockwork.NewFakeClock()
	registry := services.NewSessionRegistry(
		store,
		services.NewWalletDataService(repo, clock, logger),
		clock,
		300*time.Millisecond,
		time.Minute,
		logger,
	)
	t.Cleanup(registry.Close)

	r := chi.NewRouter()
	NewSessionHandler(registry, logger).RegisterRoutes(r)

	return &sessionFixture{router: r, repo: repo, store: store, clock: clock, registry: registry}
}

func (f *sessionFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *sessionFixture) create(t *testing.T, body string) services.SessionDTO {
	t.Helper()

	w := f.do(http.MethodPost, "/sessions", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response services.SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response.Data
}

func (f *sessionFixture) console(t *testing.T, path string) services.ConsoleView {
	t.Helper()

	w := f.do(http.MethodGet, path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response ConsoleResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response.Data
}

func waitFor(t *testing.T, updates <-chan entities.WalletSnapshot) {
	t.Helper()
	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
}

func TestSessionHandler_CreateSession(t *testing.T) {
	t.Run("creates session without wallet", func(t *testing.T) {
		f := setupSessionHandler(t)

		dto := f.create(t, "")

		if dto.ID == "" {
			t.Error("expected session id")
		}
		if dto.Wallet != nil {
			t.Errorf("expected no wallet, got %+v", dto.Wallet)
		}
		if dto.ActiveTab != formatters.TabWallet {
			t.Errorf("expected active tab %s, got %s", formatters.TabWallet, dto.ActiveTab)
		}
		if _, ok := f.store.Stored(dto.ID); !ok {
			t.Error("expected session to be stored")
		}
	})

	t.Run("creates session for connected account", func(t *testing.T) {
		f := setupSessionHandler(t)

		dto := f.create(t, `{"address":"`+testutil.AliceAddress+`","chain_id":"0x89"}`)

		if dto.Wallet == nil {
			t.Fatal("expected wallet")
		}
		if dto.Wallet.Address != testutil.AliceAddress || dto.Wallet.ChainID != "0x89" {
			t.Errorf("unexpected wallet %+v", dto.Wallet)
		}
	})

	t.Run("returns error for malformed body", func(t *testing.T) {
		f := setupSessionHandler(t)

		w := f.do(http.MethodPost, "/sessions", "{")

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns error when store fails", func(t *testing.T) {
		f := setupSessionHandler(t)
		f.store.SaveFunc = func(ctx context.Context, state repositories.SessionState) error {
			return errors.New("redis down")
		}

		w := f.do(http.MethodPost, "/sessions", "")

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}

		var response map[string]string
		json.NewDecoder(w.Body).Decode(&response)
		if response["error"] == "" {
			t.Error("expected error message")
		}
	})
}

func TestSessionHandler_GetSession(t *testing.T) {
	t.Run("returns session", func(t *testing.T) {
		f := setupSessionHandler(t)
		dto := f.create(t, "")

		w := f.do(http.MethodGet, "/sessions/"+dto.ID, "")

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		var response services.SessionResponse
		json.NewDecoder(w.Body).Decode(&response)
		if response.Data.ID != dto.ID {
			t.Errorf("expected id %s, got %s", dto.ID, response.Data.ID)
		}
	})

	t.Run("returns not found for unknown session", func(t *testing.T) {
		f := setupSessionHandler(t)

		w := f.do(http.MethodGet, "/sessions/missing", "")

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})
}

func TestSessionHandler_UpdateSearch(t *testing.T) {
	f := setupSessionHandler(t)
	f.repo.AddTransactions(testutil.BobAddress, testutil.CreateTestTransaction(testutil.TxWithHash("0xbob")))
	dto := f.create(t, "")

	w := f.do(http.MethodPut, "/sessions/"+dto.ID+"/tab", `{"tab":"transactions.json"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = f.do(http.MethodPut, "/sessions/"+dto.ID+"/search", `{"text":"`+testutil.BobAddress+`"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.Code)
	}

	stored, _ := f.store.Stored(dto.ID)
	if stored.SearchText != testutil.BobAddress {
		t.Errorf("expected stored search text, got %q", stored.SearchText)
	}

	session, err := f.registry.Get(context.Background(), dto.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.clock.Advance(300 * time.Millisecond)
	waitFor(t, session.SearchUpdates())

	view := f.console(t, "/sessions/"+dto.ID+"/console")
	if view.Source != services.SourceSearch {
		t.Errorf("expected source search, got %s", view.Source)
	}
	if !strings.Contains(view.Text, "0xbob") {
		t.Errorf("expected transaction in console text, got %s", view.Text)
	}
}

func TestSessionHandler_UpdateWallet(t *testing.T) {
	f := setupSessionHandler(t)
	f.repo.SetBalance(testutil.AliceAddress, "2500000000000000000")
	dto := f.create(t, "")

	w := f.do(http.MethodPut, "/sessions/"+dto.ID+"/wallet", `{"address":"`+testutil.AliceAddress+`","chain_id":"0x1"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.Code)
	}

	session, _ := f.registry.Get(context.Background(), dto.ID)
	waitFor(t, session.WalletUpdates())

	view := f.console(t, "/sessions/"+dto.ID+"/console?tab=wallet.json")
	if view.Source != services.SourceWallet {
		t.Errorf("expected source wallet, got %s", view.Source)
	}
	if !strings.Contains(view.Text, `"balance": 2.5 ETH`) {
		t.Errorf("expected balance in console text, got %s", view.Text)
	}
}

func TestSessionHandler_SelectTab(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"known tab", `{"tab":"nfts.json"}`, http.StatusOK},
		{"unknown tab", `{"tab":"balances.json"}`, http.StatusBadRequest},
		{"malformed body", `tab`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupSessionHandler(t)
			dto := f.create(t, "")

			w := f.do(http.MethodPut, "/sessions/"+dto.ID+"/tab", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestSessionHandler_GetConsole(t *testing.T) {
	t.Run("renders loading before any data", func(t *testing.T) {
		f := setupSessionHandler(t)
		dto := f.create(t, "")

		view := f.console(t, "/sessions/"+dto.ID+"/console")

		if view.Tab != formatters.TabWallet {
			t.Errorf("expected tab %s, got %s", formatters.TabWallet, view.Tab)
		}
		if view.Text != formatters.LoadingText {
			t.Errorf("expected loading text, got %q", view.Text)
		}
	})

	t.Run("returns error for unknown tab", func(t *testing.T) {
		f := setupSessionHandler(t)
		dto := f.create(t, "")

		w := f.do(http.MethodGet, "/sessions/"+dto.ID+"/console?tab=x", "")

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestSessionHandler_GetSnapshot(t *testing.T) {
	f := setupSessionHandler(t)
	dto := f.create(t, "")

	w := f.do(http.MethodGet, "/sessions/"+dto.ID+"/snapshot", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response map[string]map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, field := range []string{"wallet", "search"} {
		if _, ok := response["data"][field]; !ok {
			t.Errorf("missing %s snapshot", field)
		}
	}
}

func TestSessionHandler_DeleteSession(t *testing.T) {
	f := setupSessionHandler(t)
	dto := f.create(t, "")

	w := f.do(http.MethodDelete, "/sessions/"+dto.ID, "")
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}

	w = f.do(http.MethodGet, "/sessions/"+dto.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", w.Code)
	}

	w = f.do(http.MethodDelete, "/sessions/"+dto.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for second delete, got %d", w.Code)
	}
}
