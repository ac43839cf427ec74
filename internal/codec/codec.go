// Package codec converts user-selected image files into the payloads the
// rest of the pipeline consumes: raw bytes for on-device recognition and a
// data-URI string for network transport.
package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Payload is an encoded image sample.
type Payload struct {
	// Source is the path or URL the image came from.
	Source string
	// MIMEType is the sniffed content type (e.g. image/jpeg).
	MIMEType string
	// Bytes is the raw image data, suitable for local OCR input.
	Bytes []byte
	// DataURI is the transport encoding (data:<mime>;base64,<data>).
	DataURI string
	// Width and Height are the decoded pixel dimensions.
	Width  int
	Height int
}

// Error reports a file that could not be encoded. Callers are expected to
// skip the file and continue with the rest of a batch.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Encode reads an image file and produces its Payload.
func Encode(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Source: path, Err: fmt.Errorf("failed to read image: %w", err)}
	}
	return EncodeBytes(path, data)
}

// EncodeBytes encodes in-memory image data. The source string is carried
// through for logging and error reporting only.
func EncodeBytes(source string, data []byte) (*Payload, error) {
	if len(data) == 0 {
		return nil, &Error{Source: source, Err: fmt.Errorf("empty image data")}
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, &Error{Source: source, Err: fmt.Errorf("unsupported content type %s", mimeType)}
	}

	// Verify the data actually decodes as an image before shipping it
	// anywhere. DecodeConfig reads only the header.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Source: source, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	return &Payload{
		Source:   source,
		MIMEType: mimeType,
		Bytes:    data,
		DataURI:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// EncodeAll encodes the given files concurrently, preserving input order in
// the result. Files that fail to encode are logged and skipped; one bad
// image never aborts the batch.
func EncodeAll(paths []string) []*Payload {
	results := make([]*Payload, len(paths))

	var g errgroup.Group
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			payload, err := Encode(path)
			if err != nil {
				slog.Warn("Skipping image that failed to encode", "path", path, "err", err)
				return nil
			}
			results[i] = payload
			return nil
		})
	}
	// Workers never return errors; failures are skip-and-continue.
	_ = g.Wait()

	encoded := make([]*Payload, 0, len(paths))
	for _, p := range results {
		if p != nil {
			encoded = append(encoded, p)
		}
	}
	return encoded
}

// DecodeDataURI recovers the raw bytes and MIME type from a data-URI
// payload, the inverse of the transport encoding. Bare base64 without a
// data: prefix is accepted for compatibility with older clients.
func DecodeDataURI(uri string) (mimeType string, data []byte, err error) {
	b64 := uri
	mimeType = "image/jpeg"
	if strings.HasPrefix(uri, "data:") {
		meta, rest, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
		if !ok {
			return "", nil, fmt.Errorf("malformed data URI")
		}
		b64 = rest
		// Media type comes before the first ";"; the final parameter must
		// declare base64 or the payload is not ours to decode.
		segments := strings.Split(meta, ";")
		if segments[len(segments)-1] != "base64" {
			return "", nil, fmt.Errorf("unsupported data URI encoding %q, only base64 is supported", meta)
		}
		if segments[0] != "" {
			mimeType = segments[0]
		}
	}

	data, err = base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return mimeType, data, nil
}
