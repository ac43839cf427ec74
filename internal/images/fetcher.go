// Package images retrieves remote sample images so photographed letters
// hosted elsewhere can join a generation request by URL.
package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxImageBytes caps a single downloaded image.
const maxImageBytes = 10 * 1024 * 1024

// minImageBytes rejects tiny bodies that are almost certainly error pages
// or placeholder images rather than photographs of letters.
const minImageBytes = 1000

// Fetcher downloads sample images over HTTP.
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads one image and returns its raw bytes.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) > maxImageBytes {
		return nil, fmt.Errorf("image too large (max %d bytes)", maxImageBytes)
	}
	if len(imageData) < minImageBytes {
		return nil, fmt.Errorf("image too small (likely placeholder), size: %d bytes", len(imageData))
	}

	slog.Debug("Fetched remote image", "url", url, "bytes", len(imageData))
	return imageData, nil
}
