package ocr

import (
	"strings"
	"sync"
)

// Buffer is the shared extraction buffer that completed sessions append
// recognized text into. Appends are serialized so concurrent session
// completions cannot lose text to a stale read, and the user may edit the
// accumulated content between appends.
type Buffer struct {
	mu   sync.Mutex
	text string
}

// NewBuffer returns an empty extraction buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds recognized text to the buffer, joined to any existing content
// with a blank line. Empty text is ignored.
func (b *Buffer) Append(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.text == "" {
		b.text = text
		return
	}
	b.text = b.text + "\n\n" + text
}

// Set replaces the buffer content, supporting manual edits.
func (b *Buffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// String returns a snapshot of the buffer content.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Empty reports whether the buffer holds no text.
func (b *Buffer) Empty() bool {
	return b.String() == ""
}
