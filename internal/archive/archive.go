// Package archive persists collected style samples as a corpus on disk, in
// Parquet or JSONL, so reference material can be gathered once and reused
// across generation runs.
package archive

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// Record is one archived style sample.
type Record struct {
	ID          string `json:"id" parquet:"id"`
	Source      string `json:"source" parquet:"source"`
	Text        string `json:"text" parquet:"text"`
	CollectedAt int64  `json:"collected_at" parquet:"collected_at"` // unix seconds
}

// NewRecord builds a record for sample text gathered from the named source.
func NewRecord(source, text string) Record {
	return Record{
		ID:          uuid.NewString(),
		Source:      source,
		Text:        text,
		CollectedAt: time.Now().Unix(),
	}
}

// Load reads an archive file, detecting the format from the extension.
func Load(path string) ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return loadParquet(path)
	case ".jsonl", ".json":
		return loadJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// Save writes records to an archive file, detecting the format from the
// extension.
func Save(path string, records []Record) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return saveParquet(path, records)
	case ".jsonl", ".json":
		return saveJSONL(path, records)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// Append adds records to an archive, creating the file when it does not
// exist yet.
func Append(path string, records ...Record) error {
	existing, err := Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return Save(path, append(existing, records...))
}

func loadJSONL(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)

	// Letters can run long; allow generous lines.
	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading archive: %w", err)
	}

	slog.Debug("Loaded JSONL archive", "path", path, "records", len(records))
	return records, nil
}

func saveJSONL(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", record.ID, err)
		}
	}
	return w.Flush()
}

func loadParquet(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var records []Record
	for {
		batch := make([]Record, 256)
		n, err := reader.Read(batch)
		records = append(records, batch[:n]...)
		if err != nil {
			break
		}
	}

	slog.Debug("Loaded parquet archive", "path", path, "records", len(records))
	return records, nil
}

func saveParquet(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet records: %w", err)
	}
	return writer.Close()
}

// CollectDir builds records from every .txt file directly under dir, in
// lexical order. Unreadable files are logged and skipped.
func CollectDir(dir string) ([]Record, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .txt samples found in %s", dir)
	}

	var records []Record
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Skipping unreadable sample", "path", path, "err", err)
			continue
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			slog.Warn("Skipping empty sample", "path", path)
			continue
		}
		records = append(records, NewRecord(filepath.Base(path), text))
	}
	return records, nil
}
