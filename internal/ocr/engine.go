// Package ocr manages on-device text extraction from images: recognition
// engines, per-image session lifecycles with progress reporting, and the
// shared extraction buffer their results are appended to.
package ocr

import (
	"context"
	"fmt"
	"os"
)

// Input is a single image submitted for recognition.
type Input struct {
	// ID is an optional caller-provided identifier echoed back in logs.
	ID string
	// Image is the raw encoded image data.
	Image []byte
	// MIMEType declares the image content type (e.g. image/png).
	MIMEType string
	// Languages is a list of language hints (e.g. "eng") for engines that
	// support trained data selection.
	Languages []string
}

// Result is the recognition output for a single input.
type Result struct {
	// Text is the recognized plain text.
	Text string
}

// ProgressFunc receives recognition progress as a percentage in [0,100].
// Engines may call it zero or more times before returning.
type ProgressFunc func(percent int)

// Engine is the recognition capability contract: one image in, one result
// out. Implementations must release any underlying resources on every exit
// path, including cancellation.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input, progress ProgressFunc) (Result, error)
}

// NewEngine returns the engine selected by name. An empty name consults
// GHOSTWRITER_OCR_ENGINE and falls back to the on-device tesseract engine.
func NewEngine(name string) (Engine, error) {
	if name == "" {
		name = os.Getenv("GHOSTWRITER_OCR_ENGINE")
	}
	if name == "" {
		name = "tesseract"
	}

	switch name {
	case "tesseract":
		return NewTesseractEngine(), nil
	case "vision":
		return NewVisionEngine("", "")
	default:
		return nil, fmt.Errorf("unsupported OCR engine: %s", name)
	}
}
