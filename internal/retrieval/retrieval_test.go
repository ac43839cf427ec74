package retrieval

import (
	"testing"

	"github.com/lehigh-university-libraries/ghostwriter/internal/archive"
)

func testCorpus() []archive.Record {
	return []archive.Record{
		{ID: "garden", Source: "garden.txt", Text: "Dear Maria, the garden is thriving. The roses and tomatoes came in beautifully this summer."},
		{ID: "job", Source: "job.txt", Text: "Dear Hiring Committee, I am writing to apply for the archivist position at your library."},
		{ID: "condolence", Source: "condolence.txt", Text: "Dear Tom, I was deeply saddened to hear of your loss. My thoughts are with your family."},
	}
}

func TestTopKRanksByRelevance(t *testing.T) {
	index := NewIndex(testCorpus())

	results := index.TopK("a thank you note about the roses in the garden", 1)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].ID != "garden" {
		t.Errorf("Expected garden ranked first, got %s", results[0].ID)
	}
}

func TestTopKSelectsAllWhenKOutOfRange(t *testing.T) {
	index := NewIndex(testCorpus())

	for _, k := range []int{0, -1, 10} {
		results := index.TopK("the garden", k)
		if len(results) != 3 {
			t.Errorf("Expected all 3 records for k=%d, got %d", k, len(results))
		}
	}
}

func TestTopKNoSharedVocabulary(t *testing.T) {
	index := NewIndex(testCorpus())

	results := index.TopK("zzz qqq xxx", 2)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	// Falls back to archive order.
	if results[0].ID != "garden" || results[1].ID != "job" {
		t.Errorf("Expected archive order fallback, got %s, %s", results[0].ID, results[1].ID)
	}
}

func TestTopKBestFirst(t *testing.T) {
	index := NewIndex(testCorpus())

	results := index.TopK("applying for the archivist position", 3)
	if results[0].ID != "job" {
		t.Errorf("Expected job ranked first, got %s", results[0].ID)
	}
}
