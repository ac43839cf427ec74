package models

import "time"

// MockAPIKey is the wire sentinel that selects the non-billed generation path.
// Clients should construct credentials through the letters package rather than
// comparing against this string directly.
const MockAPIKey = "mock"

// GenerateRequest is the JSON body accepted by POST /api/generate.
//
// Two request shapes exist historically: the multi-sample shape
// (Samples/SampleImages) and the older single-blob shape (TextContent).
// The multi-sample shape is canonical; servers fold TextContent into
// Samples on receipt.
type GenerateRequest struct {
	Samples      []string `json:"samples,omitempty"`
	SampleImages []string `json:"sample_images,omitempty"`
	TextContent  string   `json:"text_content,omitempty"`
	TargetPrompt string   `json:"target_prompt"`
	APIKey       string   `json:"api_key,omitempty"`
}

// GenerateResponse is the JSON body returned on success.
// The debug fields are optional; a missing map count is distinct from a
// count of zero, so both use pointers.
type GenerateResponse struct {
	Letter              string `json:"letter"`
	DebugAnonymizedSent string `json:"debug_anonymized_sent,omitempty"`
	DebugMapCount       *int   `json:"debug_map_count,omitempty"`
}

// ErrorResponse is the JSON body returned on any non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}

// GenerationSession records one generation handled by the server, for the
// sessions listing API.
type GenerationSession struct {
	ID           string    `json:"id"`
	TargetPrompt string    `json:"target_prompt"`
	SampleCount  int       `json:"sample_count"`
	ImageCount   int       `json:"image_count"`
	Provider     string    `json:"provider,omitempty"`
	Model        string    `json:"model,omitempty"`
	Letter       string    `json:"letter,omitempty"`
	MapCount     int       `json:"map_count"`
	Mock         bool      `json:"mock"`
	CreatedAt    time.Time `json:"created_at"`
}
