// Package retrieval ranks archived writing samples by similarity to a
// target prompt, so generation can draw on the few most relevant letters
// from a large corpus instead of sending all of it.
package retrieval

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/lehigh-university-libraries/ghostwriter/internal/archive"
)

// Index holds TF-IDF term vectors for a set of archived samples. Build
// once per archive; queries are cheap.
type Index struct {
	records []archive.Record
	vectors []map[string]float64
	idf     map[string]float64
}

// NewIndex builds an in-process index over the given records.
func NewIndex(records []archive.Record) *Index {
	df := make(map[string]int)
	termCounts := make([]map[string]int, len(records))
	for i, record := range records {
		counts := make(map[string]int)
		for _, term := range tokenize(record.Text) {
			counts[term]++
		}
		termCounts[i] = counts
		for term := range counts {
			df[term]++
		}
	}

	idf := make(map[string]float64, len(df))
	for term, n := range df {
		idf[term] = math.Log(float64(1+len(records))/float64(1+n)) + 1
	}

	vectors := make([]map[string]float64, len(records))
	for i, counts := range termCounts {
		vector := make(map[string]float64, len(counts))
		for term, count := range counts {
			vector[term] = float64(count) * idf[term]
		}
		vectors[i] = normalize(vector)
	}

	return &Index{records: records, vectors: vectors, idf: idf}
}

// TopK returns the k records most similar to the query, best first.
// k outside (0, len] selects every record. A query sharing no vocabulary
// with the corpus falls back to archive order.
func (ix *Index) TopK(query string, k int) []archive.Record {
	if k <= 0 || k > len(ix.records) {
		k = len(ix.records)
	}

	queryVector := make(map[string]float64)
	for _, term := range tokenize(query) {
		queryVector[term] += ix.idf[term]
	}
	queryVector = normalize(queryVector)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(ix.records))
	best := 0.0
	for i, vector := range ix.vectors {
		s := dot(queryVector, vector)
		ranked[i] = scored{index: i, score: s}
		if s > best {
			best = s
		}
	}
	if best == 0 {
		return append([]archive.Record(nil), ix.records[:k]...)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	results := make([]archive.Record, 0, k)
	for _, r := range ranked[:k] {
		results = append(results, ix.records[r.index])
	}
	return results
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, weight := range a {
		sum += weight * b[term]
	}
	return sum
}

func normalize(vector map[string]float64) map[string]float64 {
	var sum float64
	for _, weight := range vector {
		sum += weight * weight
	}
	if sum == 0 {
		return vector
	}
	norm := math.Sqrt(sum)
	for term, weight := range vector {
		vector[term] = weight / norm
	}
	return vector
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
