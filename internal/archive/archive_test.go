package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRecords() []Record {
	return []Record{
		{ID: "r1", Source: "letter1.txt", Text: "Dear Alice,\n\nThe roses bloomed early.", CollectedAt: 1700000000},
		{ID: "r2", Source: "letter2.txt", Text: "Regards,\nEdmund", CollectedAt: 1700000100},
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "jsonl", file: "samples.jsonl"},
		{name: "parquet", file: "samples.parquet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			want := testRecords()

			if err := Save(path, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.jsonl")

	// Creates the archive when missing.
	if err := Append(path, testRecords()[0]); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	// Grows an existing archive.
	if err := Append(path, testRecords()[1]); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(testRecords(), got); diff != "" {
		t.Errorf("Append mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Load("samples.csv"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
	if err := Save("samples.csv", nil); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestCollectDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":     "First sample letter.",
		"b.txt":     "  \n ", // empty after trim, skipped
		"c.txt":     "Third sample letter.",
		"ignore.md": "Not a txt file.",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	records, err := CollectDir(dir)
	if err != nil {
		t.Fatalf("CollectDir failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Source != "a.txt" || records[1].Source != "c.txt" {
		t.Errorf("Unexpected sources: %s, %s", records[0].Source, records[1].Source)
	}
	for _, r := range records {
		if r.ID == "" || r.CollectedAt == 0 {
			t.Errorf("Record missing identity fields: %+v", r)
		}
	}
}

func TestCollectDirEmpty(t *testing.T) {
	if _, err := CollectDir(t.TempDir()); err == nil {
		t.Error("Expected error for directory without samples")
	}
}
