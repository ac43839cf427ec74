package samples

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeepAtLeastOneTextSample(t *testing.T) {
	a := New()

	if got := len(a.Texts()); got != 1 {
		t.Fatalf("Expected one initial slot, got %d", got)
	}
	if err := a.RemoveText(0); !errors.Is(err, ErrLastTextSample) {
		t.Errorf("Expected ErrLastTextSample, got %v", err)
	}

	a.AddText()
	if err := a.RemoveText(0); err != nil {
		t.Errorf("Removal with two slots should succeed, got %v", err)
	}
	if got := len(a.Texts()); got != 1 {
		t.Errorf("Expected one slot after removal, got %d", got)
	}

	// Arbitrary add/remove churn never reaches zero.
	for i := 0; i < 10; i++ {
		a.AddText()
		_ = a.RemoveText(0)
		_ = a.RemoveText(0)
	}
	if len(a.Texts()) == 0 {
		t.Error("Aggregator reached zero text samples")
	}
}

func TestUpdateTextOutOfRangeIsNoop(t *testing.T) {
	a := New()
	a.UpdateText(0, "hello")
	a.UpdateText(5, "ignored")
	a.UpdateText(-1, "ignored")

	if diff := cmp.Diff([]string{"hello"}, a.Texts()); diff != "" {
		t.Errorf("Texts mismatch (-want +got):\n%s", diff)
	}
}

func TestImageAddRemoveInverse(t *testing.T) {
	a := New()
	a.AddImage("img-a")
	a.AddImage("img-b")
	a.AddImage("img-c")

	before := a.Images()
	id := a.AddImage("img-d")
	a.RemoveImage(id)

	if diff := cmp.Diff(before, a.Images()); diff != "" {
		t.Errorf("Add/remove is not an inverse pair (-want +got):\n%s", diff)
	}

	a.RemoveImage(1)
	if diff := cmp.Diff([]string{"img-a", "img-c"}, a.Images()); diff != "" {
		t.Errorf("Order not preserved after removal (-want +got):\n%s", diff)
	}

	a.RemoveImage(99) // no-op
	if got := len(a.Images()); got != 2 {
		t.Errorf("Out-of-range removal mutated collection, len=%d", got)
	}
}

func TestBuildRequestFiltersEmptyText(t *testing.T) {
	a := New()
	a.UpdateText(0, "  \n\t ")
	a.AddText()
	a.UpdateText(1, "Dear Margaret, thank you for the jam.")
	a.AddText()
	a.UpdateText(2, "")
	a.AddImage("data:image/png;base64,AAAA")

	req, err := a.BuildRequest("Write a thank-you note", MockCredential())
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}

	if diff := cmp.Diff([]string{"Dear Margaret, thank you for the jam."}, req.Samples); diff != "" {
		t.Errorf("Samples mismatch (-want +got):\n%s", diff)
	}
	if len(req.SampleImages) != 1 {
		t.Errorf("Expected image carried verbatim, got %d", len(req.SampleImages))
	}
	if req.APIKey != "mock" {
		t.Errorf("Expected mock sentinel, got %q", req.APIKey)
	}
}

func TestBuildRequestEmptyPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{name: "empty", prompt: ""},
		{name: "whitespace only", prompt: "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New()
			if _, err := a.BuildRequest(tt.prompt, MockCredential()); !errors.Is(err, ErrEmptyPrompt) {
				t.Errorf("Expected ErrEmptyPrompt, got %v", err)
			}
		})
	}
}

func TestBuildRequestNoSamplesAllowed(t *testing.T) {
	a := New()
	req, err := a.BuildRequest("Write a thank-you note", APIKey("real-key"))
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}
	if len(req.Samples) != 0 || len(req.SampleImages) != 0 {
		t.Errorf("Expected empty sample collections, got %d/%d", len(req.Samples), len(req.SampleImages))
	}
	if req.APIKey != "real-key" {
		t.Errorf("Expected real key on the wire, got %q", req.APIKey)
	}
}

func TestCredentialVariants(t *testing.T) {
	if !MockCredential().IsMock() {
		t.Error("MockCredential must be mock")
	}
	if !APIKey("").IsMock() {
		t.Error("Empty key must degrade to mock")
	}
	if APIKey("AIza-something").IsMock() {
		t.Error("Real key must not be mock")
	}
	if got := APIKey("AIza-something").Wire(); got != "AIza-something" {
		t.Errorf("Unexpected wire key %q", got)
	}
}
