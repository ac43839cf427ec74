package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/ghostwriter/internal/models"
)

// maxRequestBytes bounds the request body; image payloads are inline
// base64, so the limit is generous.
const maxRequestBytes = 32 * 1024 * 1024

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	cors(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request models.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(request.TargetPrompt) == "" {
		h.writeError(w, "Target prompt is required.", http.StatusBadRequest)
		return
	}

	response, err := h.generationService.Generate(r.Context(), &request)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.recordSession(&request, response)
	h.writeJSON(w, response)
}

func (h *Handler) recordSession(request *models.GenerateRequest, response *models.GenerateResponse) {
	mapCount := 0
	if response.DebugMapCount != nil {
		mapCount = *response.DebugMapCount
	}
	sampleCount := len(request.Samples)
	if request.TextContent != "" {
		sampleCount++
	}

	session := &models.GenerationSession{
		ID:           uuid.NewString(),
		TargetPrompt: request.TargetPrompt,
		SampleCount:  sampleCount,
		ImageCount:   len(request.SampleImages),
		Provider:     h.generationService.Provider(),
		Model:        h.generationService.Model(),
		Letter:       response.Letter,
		MapCount:     mapCount,
		Mock:         request.APIKey == "" || request.APIKey == models.MockAPIKey,
		CreatedAt:    time.Now(),
	}
	h.sessionStore.Set(session.ID, session)
}
