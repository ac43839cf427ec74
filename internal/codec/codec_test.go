package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.White)
		img.Set(x, 1, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeBytes(t *testing.T) {
	payload, err := EncodeBytes("test.png", testPNG(t))
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}

	if payload.MIMEType != "image/png" {
		t.Errorf("Expected image/png, got %s", payload.MIMEType)
	}
	if payload.Width != 4 || payload.Height != 2 {
		t.Errorf("Expected 4x2, got %dx%d", payload.Width, payload.Height)
	}
	if !strings.HasPrefix(payload.DataURI, "data:image/png;base64,") {
		t.Errorf("Unexpected data URI prefix: %.40s", payload.DataURI)
	}
}

func TestEncodeBytesRejectsNonImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "plain text", data: []byte("not an image at all")},
		{name: "truncated png", data: []byte("\x89PNG\r\n\x1a\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeBytes("bad.bin", tt.data)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Errorf("Expected *codec.Error, got %T", err)
			}
		})
	}
}

func TestEncodeAllSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.png")
	if err := os.WriteFile(good, testPNG(t), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	good2 := filepath.Join(dir, "good2.png")
	if err := os.WriteFile(good2, testPNG(t), 0644); err != nil {
		t.Fatal(err)
	}

	payloads := EncodeAll([]string{good, bad, filepath.Join(dir, "missing.png"), good2})

	if len(payloads) != 2 {
		t.Fatalf("Expected 2 payloads, got %d", len(payloads))
	}
	if payloads[0].Source != good || payloads[1].Source != good2 {
		t.Errorf("Expected input order preserved, got %s then %s", payloads[0].Source, payloads[1].Source)
	}
}

func TestDecodeDataURI(t *testing.T) {
	data := testPNG(t)
	payload, err := EncodeBytes("x.png", data)
	if err != nil {
		t.Fatal(err)
	}

	mimeType, decoded, err := DecodeDataURI(payload.DataURI)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("Expected image/png, got %s", mimeType)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("Decoded bytes do not match original")
	}
}

func TestDecodeDataURIEncodings(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantMIME string
		wantErr  bool
	}{
		{name: "base64 with media type", uri: "data:image/png;base64,aGVsbG8=", wantMIME: "image/png"},
		{name: "base64 without media type", uri: "data:;base64,aGVsbG8=", wantMIME: "image/jpeg"},
		{name: "percent-encoded rejected", uri: "data:image/png,%68%65%6C%6C%6F", wantErr: true},
		{name: "no encoding declared rejected", uri: "data:image/png,aGVsbG8=", wantErr: true},
		{name: "missing comma", uri: "data:image/png;base64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mimeType, _, err := DecodeDataURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeDataURI failed: %v", err)
			}
			if mimeType != tt.wantMIME {
				t.Errorf("Expected %s, got %s", tt.wantMIME, mimeType)
			}
		})
	}
}

func TestDecodeDataURIBareBase64(t *testing.T) {
	mimeType, decoded, err := DecodeDataURI("aGVsbG8=")
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if mimeType != "image/jpeg" {
		t.Errorf("Expected image/jpeg default, got %s", mimeType)
	}
	if string(decoded) != "hello" {
		t.Errorf("Expected hello, got %s", decoded)
	}
}
