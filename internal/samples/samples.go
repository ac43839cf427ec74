// Package samples holds the reference material a user supplies before
// generation: free-text samples and encoded image samples, in order, with
// the submission-time filtering rules.
package samples

import (
	"errors"
	"strings"

	"github.com/lehigh-university-libraries/ghostwriter/internal/models"
)

// ErrEmptyPrompt is returned when a request is built with an instruction
// that is empty or whitespace-only. This is the single hard precondition
// for submission.
var ErrEmptyPrompt = errors.New("target prompt is required")

// ErrLastTextSample is returned when removal would drop the final text
// sample slot.
var ErrLastTextSample = errors.New("cannot remove the last text sample")

// Credential selects the generation mode as a tagged variant rather than a
// magic string, so a real key that happens to equal the wire sentinel is
// never silently reclassified. The zero value is the mock credential.
type Credential struct {
	key  string
	mock bool
}

// MockCredential returns the non-billed testing credential.
func MockCredential() Credential {
	return Credential{mock: true}
}

// APIKey returns a credential carrying a real key. An empty key yields the
// mock credential, matching the reference interface's behavior when the
// key field is left blank.
func APIKey(key string) Credential {
	if key == "" {
		return MockCredential()
	}
	return Credential{key: key}
}

// IsMock reports whether the credential selects the non-billed path.
func (c Credential) IsMock() bool { return c.mock || c.key == "" }

// Wire returns the credential's wire representation.
func (c Credential) Wire() string {
	if c.IsMock() {
		return models.MockAPIKey
	}
	return c.key
}

// Aggregator owns the ordered sample collections. It is mutated only by
// direct user action, so it needs no internal locking.
type Aggregator struct {
	texts  []string
	images []string
}

// New returns an aggregator with one empty text sample slot, matching the
// reference interface's starting state.
func New() *Aggregator {
	return &Aggregator{texts: []string{""}}
}

// AddText appends a new empty text sample and returns its index.
func (a *Aggregator) AddText() int {
	a.texts = append(a.texts, "")
	return len(a.texts) - 1
}

// UpdateText replaces the text sample at the given index. Out-of-range
// indexes are a no-op.
func (a *Aggregator) UpdateText(id int, value string) {
	if id < 0 || id >= len(a.texts) {
		return
	}
	a.texts[id] = value
}

// RemoveText removes the text sample at the given index, refusing to drop
// the sole remaining slot.
func (a *Aggregator) RemoveText(id int) error {
	if id < 0 || id >= len(a.texts) {
		return nil
	}
	if len(a.texts) == 1 {
		return ErrLastTextSample
	}
	a.texts = append(a.texts[:id], a.texts[id+1:]...)
	return nil
}

// Texts returns a copy of the text samples in order.
func (a *Aggregator) Texts() []string {
	out := make([]string, len(a.texts))
	copy(out, a.texts)
	return out
}

// AddImage appends an encoded image payload and returns its index.
func (a *Aggregator) AddImage(payload string) int {
	a.images = append(a.images, payload)
	return len(a.images) - 1
}

// RemoveImage removes the image sample at the given index. Out-of-range
// indexes are a no-op.
func (a *Aggregator) RemoveImage(id int) {
	if id < 0 || id >= len(a.images) {
		return
	}
	a.images = append(a.images[:id], a.images[id+1:]...)
}

// Images returns a copy of the image payloads in order.
func (a *Aggregator) Images() []string {
	out := make([]string, len(a.images))
	copy(out, a.images)
	return out
}

// BuildRequest assembles the generation request: text samples whose trimmed
// value is non-empty, all image samples verbatim, the instruction, and the
// credential. Having no samples at all is allowed; the service can work
// from the instruction alone. An empty instruction refuses to build.
func (a *Aggregator) BuildRequest(prompt string, cred Credential) (*models.GenerateRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	var valid []string
	for _, s := range a.texts {
		if strings.TrimSpace(s) != "" {
			valid = append(valid, s)
		}
	}

	return &models.GenerateRequest{
		Samples:      valid,
		SampleImages: a.Images(),
		TargetPrompt: prompt,
		APIKey:       cred.Wire(),
	}, nil
}
