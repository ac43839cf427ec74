package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/ghostwriter/internal/ollama"
	"github.com/lehigh-university-libraries/ghostwriter/internal/openai"
	"github.com/lehigh-university-libraries/ghostwriter/internal/providers"
)

// VisionEngine extracts text from images using LLM vision capabilities
// instead of a local recognizer. Useful for handwriting, where traditional
// OCR struggles.
type VisionEngine struct {
	name     string
	provider providers.Provider
	model    string
}

// NewVisionEngine builds a vision-LLM OCR engine for the given provider
// name. Defaults come from GHOSTWRITER_OCR_PROVIDER, then ollama.
func NewVisionEngine(provider, model string) (*VisionEngine, error) {
	if provider == "" {
		provider = os.Getenv("GHOSTWRITER_OCR_PROVIDER")
		if provider == "" {
			provider = "ollama"
		}
	}
	if model == "" {
		model = providers.DefaultModel(provider)
	}

	var p providers.Provider
	switch provider {
	case "openai":
		p = openai.New("")
	case "ollama":
		p = ollama.New()
	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", provider)
	}

	return &VisionEngine{name: "vision:" + provider, provider: p, model: model}, nil
}

// Name returns the engine identifier.
func (e *VisionEngine) Name() string { return e.name }

func buildOCRPrompt() string {
	return `You are performing OCR (Optical Character Recognition) on a photographed letter.

Your task is to extract ALL visible text from the image exactly as it appears, preserving:
- Line breaks and paragraph structure
- Capitalization
- Punctuation
- Order of text elements

INSTRUCTIONS:
1. Read the image carefully from top to bottom
2. Transcribe every piece of visible text, including salutations and signatures
3. Preserve the original line breaks
4. Do not add any interpretation, commentary, or explanations
5. If text is partially obscured or unclear, transcribe what you can see and use [?] for illegible portions

OUTPUT FORMAT:
Provide ONLY the extracted text. Do not include phrases like "Here is the text:" or "The image contains:".
Start immediately with the transcribed text.`
}

// Recognize sends the image to the configured vision provider.
func (e *VisionEngine) Recognize(ctx context.Context, input Input, progress ProgressFunc) (Result, error) {
	if len(input.Image) == 0 {
		return Result{}, fmt.Errorf("no image data")
	}

	if progress != nil {
		progress(10)
	}

	text, err := e.provider.Generate(ctx, providers.Config{
		Model:       e.model,
		Temperature: 0.0, // exact transcription
		Prompt:      buildOCRPrompt(),
		Images: []providers.Image{
			{MIMEType: input.MIMEType, Data: input.Image},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("vision OCR failed: %w", err)
	}

	if progress != nil {
		progress(95)
	}

	slog.Info("Extracted OCR text", "engine", e.name, "model", e.model, "length", len(text))
	return Result{Text: text}, nil
}
