// Package generation implements the server side of the letter contract:
// prompt construction from style samples, PII anonymization before the
// model call, provider dispatch, and the debug metadata in the response.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/ghostwriter/internal/anonymizer"
	"github.com/lehigh-university-libraries/ghostwriter/internal/codec"
	"github.com/lehigh-university-libraries/ghostwriter/internal/gemini"
	"github.com/lehigh-university-libraries/ghostwriter/internal/models"
	"github.com/lehigh-university-libraries/ghostwriter/internal/ollama"
	"github.com/lehigh-university-libraries/ghostwriter/internal/openai"
	"github.com/lehigh-university-libraries/ghostwriter/internal/providers"
)

const systemText = "You are an expert ghostwriter. Your task is to analyze the style, tone, vocabulary, " +
	"and sentence structure of the provided sample letters (text and/or images) and write a NEW letter " +
	"based on the user's request. The new letter MUST sound exactly like the author of the samples."

// Service turns a generation request into a letter.
type Service struct {
	provider string
	model    string
}

// NewService creates a generation service for the given provider and model,
// resolving environment defaults for whichever is empty.
func NewService(provider, model string) *Service {
	if provider == "" {
		provider = providers.DefaultProvider()
	}
	if model == "" {
		model = providers.DefaultModel(provider)
	}
	return &Service{provider: provider, model: model}
}

// Provider returns the configured provider name.
func (s *Service) Provider() string { return s.provider }

// Model returns the configured model name.
func (s *Service) Model() string { return s.model }

// Generate validates the request, anonymizes sample text, calls the
// configured provider (or short-circuits for the mock credential), and
// restores placeholders in the returned letter.
func (s *Service) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if strings.TrimSpace(req.TargetPrompt) == "" {
		return nil, fmt.Errorf("target prompt is required")
	}

	// Fold the older single-blob shape into the canonical one.
	sampleTexts := req.Samples
	if req.TextContent != "" {
		sampleTexts = append([]string{req.TextContent}, sampleTexts...)
	}

	anon := anonymizer.New()
	anonymized := make([]string, len(sampleTexts))
	for i, sample := range sampleTexts {
		anonymized[i] = anon.Anonymize(sample)
	}

	prompt := buildPrompt(anonymized, len(req.SampleImages), req.TargetPrompt)
	mapCount := anon.MapCount()

	if req.APIKey == "" || req.APIKey == models.MockAPIKey {
		slog.Info("Mock generation", "samples", len(sampleTexts), "images", len(req.SampleImages))
		letter := fmt.Sprintf("[MOCK OUTPUT] I have analyzed your %d text samples and %d images. Here is a draft regarding '%s'...",
			len(sampleTexts), len(req.SampleImages), req.TargetPrompt)
		return &models.GenerateResponse{
			Letter:              letter,
			DebugAnonymizedSent: strings.Join(anonymized, "\n\n---\n\n"),
			DebugMapCount:       &mapCount,
		}, nil
	}

	images := make([]providers.Image, 0, len(req.SampleImages))
	for i, payload := range req.SampleImages {
		mimeType, data, err := codec.DecodeDataURI(payload)
		if err != nil {
			slog.Warn("Skipping undecodable image sample", "index", i, "err", err)
			continue
		}
		images = append(images, providers.Image{MIMEType: mimeType, Data: data})
	}

	provider, err := s.providerFor(req.APIKey)
	if err != nil {
		return nil, err
	}

	slog.Info("Generating letter",
		"provider", s.provider,
		"model", s.model,
		"samples", len(sampleTexts),
		"images", len(images),
		"map_count", mapCount)

	letter, err := provider.Generate(ctx, providers.Config{
		Model:       s.model,
		Temperature: 0.7,
		Prompt:      prompt,
		Images:      images,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &models.GenerateResponse{
		Letter:              anon.Restore(letter),
		DebugAnonymizedSent: strings.Join(anonymized, "\n\n---\n\n"),
		DebugMapCount:       &mapCount,
	}, nil
}

// providerFor builds the provider, forwarding a request-supplied key to
// providers that accept one.
func (s *Service) providerFor(apiKey string) (providers.Provider, error) {
	switch s.provider {
	case "gemini":
		return gemini.New(apiKey), nil
	case "openai":
		return openai.New(apiKey), nil
	case "ollama":
		return ollama.New(), nil
	case "mock":
		return providers.NewMock(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", s.provider)
	}
}

// buildPrompt assembles the ghostwriting prompt: system text, numbered
// samples, a note about attached images, and the task with its guidelines.
func buildPrompt(samples []string, imageCount int, targetPrompt string) string {
	var b strings.Builder
	b.WriteString(systemText)
	b.WriteString("\n\n")

	if len(samples) > 0 {
		numbered := make([]string, len(samples))
		for i, s := range samples {
			numbered[i] = fmt.Sprintf("SAMPLE %d:\n%s", i+1, s)
		}
		b.WriteString("Input Text Samples:\n")
		b.WriteString(strings.Join(numbered, "\n\n---\n\n"))
		b.WriteString("\n\n")
	}

	if imageCount > 0 {
		b.WriteString("Input Image Samples (Handwritten/Printed Letters) are attached.\n\n")
	}

	b.WriteString("---\nTask:\nWrite a letter for the following scenario: \"")
	b.WriteString(targetPrompt)
	b.WriteString("\"\n\nGuidelines:\n")
	b.WriteString("1. Match the emotion and sentiment.\n")
	b.WriteString("2. Do NOT sound like an AI.\n")
	b.WriteString("3. If images are provided, transcribe and analyze their style primarily.")

	return b.String()
}
