package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/ghostwriter/internal/generation"
	"github.com/lehigh-university-libraries/ghostwriter/internal/models"
	"github.com/lehigh-university-libraries/ghostwriter/internal/storage"
)

type Handler struct {
	sessionStore      *storage.SessionStore
	generationService *generation.Service
}

// New builds the handler set backed by a generation service for the given
// provider and model.
func New(provider, model string) *Handler {
	return &Handler{
		sessionStore:      storage.New(),
		generationService: generation.NewService(provider, model),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError replies with the contract's {"detail": ...} error body.
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(models.ErrorResponse{Detail: message}); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}

// cors allows the browser front end, which runs on its own origin during
// development, to reach the API.
func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
