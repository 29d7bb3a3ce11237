package handlers

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/application/formatters"
	"github.com/bimakw/wallet-console/internal/application/services"
	"github.com/bimakw/wallet-console/internal/domain/entities"
)

var chainIDPattern = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)

// WalletHandler renders a console tab for an arbitrary address without a session
type WalletHandler struct {
	data   *services.WalletDataService
	logger *zap.Logger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(data *services.WalletDataService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		data:   data,
		logger: logger,
	}
}

// RegisterRoutes registers wallet routes
func (h *WalletHandler) RegisterRoutes(r chi.Router) {
	r.Get("/wallets/{address}/console/{tab}", h.GetConsole)
}

// GetConsole handles GET /api/v1/wallets/{address}/console/{tab}
func (h *WalletHandler) GetConsole(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if !entities.IsValidAddress(address) {
		respondError(w, http.StatusBadRequest, "Invalid wallet address format")
		return
	}

	tab, err := formatters.ParseTab(chi.URLParam(r, "tab"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown tab")
		return
	}

	chainID := r.URL.Query().Get("chain")
	if chainID != "" && !chainIDPattern.MatchString(chainID) {
		respondError(w, http.StatusBadRequest, "Invalid chain id format")
		return
	}

	snapshot := h.data.Fetch(r.Context(), entities.NewSnapshotKey(address, chainID))
	if len(snapshot.Failures) > 0 {
		h.logger.Warn("Rendering partial wallet data",
			zap.String("address", address),
			zap.Int("failures", len(snapshot.Failures)),
		)
	}

	view := services.ConsoleView{
		Tab:    tab,
		State:  services.StateReady.String(),
		Source: services.SourceSearch,
	}
	if text, ok := formatters.FormatTab(tab, snapshot); ok {
		view.Text = text
	} else {
		view.Source = services.SourceFallback
		view.Text = formatters.Fallback(tab, false)
	}

	respondJSON(w, http.StatusOK, ConsoleResponse{Data: view})
}
