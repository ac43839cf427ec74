package cmd

import (
	"testing"

	"github.com/lehigh-university-libraries/ghostwriter/internal/archive"
	"github.com/lehigh-university-libraries/ghostwriter/internal/samples"
)

func archiveRecords() []archive.Record {
	return []archive.Record{
		{ID: "garden", Source: "garden.txt", Text: "Dear Maria, the garden roses came in beautifully this summer."},
		{ID: "job", Source: "job.txt", Text: "Dear Hiring Committee, I am applying for the archivist position."},
		{ID: "condolence", Source: "condolence.txt", Text: "Dear Tom, I was saddened to hear of your loss."},
	}
}

func TestAddArchiveSamplesSelectsByPrompt(t *testing.T) {
	agg := samples.New()

	selected := addArchiveSamples(agg, archiveRecords(), "a note thanking her for the garden roses", 1)
	if selected != 1 {
		t.Fatalf("Expected 1 selected sample, got %d", selected)
	}

	request, err := agg.BuildRequest("a note thanking her for the garden roses", samples.MockCredential())
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}
	if len(request.Samples) != 1 {
		t.Fatalf("Expected 1 sample in request, got %d", len(request.Samples))
	}
	if request.Samples[0] != archiveRecords()[0].Text {
		t.Errorf("Expected garden sample in request, got %q", request.Samples[0])
	}
}

func TestAddArchiveSamplesAllWhenKOutOfRange(t *testing.T) {
	for _, k := range []int{0, 3, 10} {
		agg := samples.New()
		if selected := addArchiveSamples(agg, archiveRecords(), "anything", k); selected != 3 {
			t.Errorf("Expected all 3 samples for k=%d, got %d", k, selected)
		}
	}
}
