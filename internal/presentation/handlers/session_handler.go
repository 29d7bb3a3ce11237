package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/application/formatters"
	"github.com/bimakw/wallet-console/internal/application/services"
	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// SessionHandler handles console session requests
type SessionHandler struct {
	registry *services.SessionRegistry
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *services.SessionRegistry, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		logger:   logger,
	}
}

// AccountRequest is the account reported by the wallet widget
type AccountRequest struct {
	Address string `json:"address"`
	ChainID string `json:"chain_id"`
}

// SearchRequest carries the search box contents
type SearchRequest struct {
	Text string `json:"text"`
}

// TabRequest selects a console tab
type TabRequest struct {
	Tab string `json:"tab"`
}

// ConsoleResponse wraps a console view for API response
type ConsoleResponse struct {
	Data services.ConsoleView `json:"data"`
}

// SnapshotResponse wraps both snapshots of a session
type SnapshotResponse struct {
	Data struct {
		Wallet entities.WalletSnapshot `json:"wallet"`
		Search entities.WalletSnapshot `json:"search"`
	} `json:"data"`
}

// RegisterRoutes registers session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Put("/search", h.UpdateSearch)
			r.Put("/wallet", h.UpdateWallet)
			r.Put("/tab", h.SelectTab)
			r.Get("/console", h.GetConsole)
			r.Get("/snapshot", h.GetSnapshot)
		})
	})
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	session, err := h.registry.Create(r.Context(), req.Address, req.ChainID)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, services.SessionResponse{Data: session.DTO()})
}

// GetSession handles GET /api/v1/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, services.SessionResponse{Data: session.DTO()})
}

// UpdateSearch handles PUT /api/v1/sessions/{id}/search
func (h *SessionHandler) UpdateSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	session.Type(req.Text)
	if !h.persist(w, r, session) {
		return
	}

	respondJSON(w, http.StatusAccepted, services.SessionResponse{Data: session.DTO()})
}

// UpdateWallet handles PUT /api/v1/sessions/{id}/wallet
func (h *SessionHandler) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	session.ConnectWallet(r.Context(), req.Address, req.ChainID)
	if !h.persist(w, r, session) {
		return
	}

	respondJSON(w, http.StatusAccepted, services.SessionResponse{Data: session.DTO()})
}

// SelectTab handles PUT /api/v1/sessions/{id}/tab
func (h *SessionHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	var req TabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tab, err := formatters.ParseTab(req.Tab)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown tab")
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	session.SelectTab(tab)
	if !h.persist(w, r, session) {
		return
	}

	respondJSON(w, http.StatusOK, services.SessionResponse{Data: session.DTO()})
}

// GetConsole handles GET /api/v1/sessions/{id}/console
func (h *SessionHandler) GetConsole(w http.ResponseWriter, r *http.Request) {
	var tab formatters.Tab
	if name := r.URL.Query().Get("tab"); name != "" {
		parsed, err := formatters.ParseTab(name)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Unknown tab")
			return
		}
		tab = parsed
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	view := session.View()
	if tab != "" {
		view = session.ViewTab(tab)
	}

	respondJSON(w, http.StatusOK, ConsoleResponse{Data: view})
}

// GetSnapshot handles GET /api/v1/sessions/{id}/snapshot
func (h *SessionHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var response SnapshotResponse
	response.Data.Wallet = session.WalletSnapshot()
	response.Data.Search = session.SearchSnapshot()
	respondJSON(w, http.StatusOK, response)
}

// DeleteSession handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.registry.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "Session not found")
			return
		}
		h.logger.Error("Failed to delete session", zap.Error(err), zap.String("session_id", id))
		respondError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.ConsoleSession, bool) {
	id := chi.URLParam(r, "id")

	session, err := h.registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "Session not found")
			return nil, false
		}
		h.logger.Error("Failed to get session", zap.Error(err), zap.String("session_id", id))
		respondError(w, http.StatusInternalServerError, "Failed to get session")
		return nil, false
	}
	return session, true
}

func (h *SessionHandler) persist(w http.ResponseWriter, r *http.Request, session *services.ConsoleSession) bool {
	if err := h.registry.Persist(r.Context(), session); err != nil {
		h.logger.Error("Failed to persist session", zap.Error(err), zap.String("session_id", session.ID()))
		respondError(w, http.StatusInternalServerError, "Failed to save session")
		return false
	}
	return true
}
