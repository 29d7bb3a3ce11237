package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bimakw/wallet-console/internal/application/formatters"
	"github.com/bimakw/wallet-console/internal/config"
	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// ConfigHandler serves the public settings the console page boots with
type ConfigHandler struct {
	response PublicConfig
}

// PublicConfig holds the settings safe to hand to a browser
type PublicConfig struct {
	WalletConnectProjectID string           `json:"walletconnect_project_id"`
	PrimaryChain           string           `json:"primary_chain"`
	Tabs                   []formatters.Tab `json:"tabs"`
	DebounceMS             int64            `json:"debounce_ms"`
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(wallet config.WalletConfig, console config.ConsoleConfig) *ConfigHandler {
	return &ConfigHandler{
		response: PublicConfig{
			WalletConnectProjectID: wallet.ProjectID,
			PrimaryChain:           entities.PrimaryChainID,
			Tabs:                   formatters.Tabs(),
			DebounceMS:             console.Debounce.Milliseconds(),
		},
	}
}

// RegisterRoutes registers config routes
func (h *ConfigHandler) RegisterRoutes(r chi.Router) {
	r.Get("/config", h.GetConfig)
}

// GetConfig handles GET /api/v1/config
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.response)
}
