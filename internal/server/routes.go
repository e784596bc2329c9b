package server

import (
	"net/http"
	"os"

	"github.com/ksharma/stockpilot/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Trading
	mux.HandleFunc("/buy-stock", s.handleBuyStock)
	mux.HandleFunc("/sell-stock", s.handleSellStock)

	// Suggestions
	mux.HandleFunc("/buy-suggestions", s.handleBuySuggestions)
	mux.HandleFunc("/sell-suggestions/", s.handleSellSuggestions)

	// Valuation
	mux.HandleFunc("/portfolio/", s.handlePortfolio)

	// Frontend
	if dir := s.app.Config.Server.StaticDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			mux.Handle("/", http.FileServer(http.Dir(dir)))
		}
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
