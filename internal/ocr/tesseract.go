package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine performs on-device recognition through the gosseract
// client. Each recognition uses a fresh client that is closed on every exit
// path, so no OS-level recognition workers leak across sessions.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed OCR engine.
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{clientFactory: gosseract.NewClient}
}

// Name returns the engine identifier.
func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize performs OCR on a single image. Tesseract exposes no native
// progress callback, so progress is reported at stage boundaries.
func (e *TesseractEngine) Recognize(ctx context.Context, input Input, progress ProgressFunc) (Result, error) {
	if len(input.Image) == 0 {
		return Result{}, fmt.Errorf("no image data")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	c := e.clientFactory()
	defer c.Close()

	if progress != nil {
		progress(10)
	}

	if err := c.SetImageFromBytes(input.Image); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}
	if len(input.Languages) > 0 {
		if err := c.SetLanguage(input.Languages...); err != nil {
			return Result{}, fmt.Errorf("failed to set languages: %w", err)
		}
	}

	if progress != nil {
		progress(30)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	text, err := c.Text()
	if err != nil {
		return Result{}, fmt.Errorf("failed to recognize text: %w", err)
	}

	if progress != nil {
		progress(95)
	}

	return Result{Text: strings.TrimSpace(text)}, nil
}
