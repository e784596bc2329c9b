package server

import (
	"net/http"

	"github.com/ksharma/stockpilot/internal/models"
)

// handleBuyStock handles POST /buy-stock.
func (s *Server) handleBuyStock(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.BuyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := s.app.Ledger.Buy(r.Context(), &req); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Stock bought successfully"})
}

// handleSellStock handles POST /sell-stock.
func (s *Server) handleSellStock(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.SellRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := s.app.Ledger.Sell(r.Context(), &req); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Sell successful"})
}

// handleBuySuggestions handles POST /buy-suggestions.
func (s *Server) handleBuySuggestions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.BuySuggestionsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	suggestions, err := s.app.Suggestions.SuggestBuys(r.Context(), req.Amount)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, suggestions)
}

// handleSellSuggestions handles GET /sell-suggestions/{user}.
func (s *Server) handleSellSuggestions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := PathParam(r, "/sell-suggestions/")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user is required in path")
		return
	}

	suggestions, err := s.app.Suggestions.SuggestSells(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, suggestions)
}

// handlePortfolio handles GET /portfolio/{user}.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := PathParam(r, "/portfolio/")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user is required in path")
		return
	}

	valuation, err := s.app.Valuation.Valuate(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, valuation)
}
