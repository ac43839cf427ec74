package storage

import (
	"testing"
	"time"

	"github.com/lehigh-university-libraries/ghostwriter/internal/models"
)

func TestListNewestFirst(t *testing.T) {
	store := New()
	base := time.Now()
	store.Set("a", &models.GenerationSession{ID: "a", CreatedAt: base.Add(-2 * time.Hour)})
	store.Set("b", &models.GenerationSession{ID: "b", CreatedAt: base})
	store.Set("c", &models.GenerationSession{ID: "c", CreatedAt: base.Add(-1 * time.Hour)})

	sessions := store.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"b", "c", "a"} {
		if sessions[i].ID != want {
			t.Errorf("Expected session %s at index %d, got %s", want, i, sessions[i].ID)
		}
	}
}

func TestGetAndDelete(t *testing.T) {
	store := New()
	store.Set("x", &models.GenerationSession{ID: "x"})

	if _, exists := store.Get("x"); !exists {
		t.Error("Expected session x to exist")
	}
	store.Delete("x")
	if _, exists := store.Get("x"); exists {
		t.Error("Expected session x to be deleted")
	}
}
