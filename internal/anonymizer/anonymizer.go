// Package anonymizer substitutes personally identifying strings with
// placeholders before sample text leaves for the model, and restores them
// in the generated letter afterwards. The substitution count and the
// anonymized payload feed the debug fields of the generation response.
package anonymizer

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	// Honorific followed by one or two capitalized words.
	personPattern = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`)
)

// Anonymizer performs reversible placeholder substitution. It is not safe
// for concurrent use; build one per request.
type Anonymizer struct {
	// substitutions maps placeholder -> original, in insertion order.
	substitutions map[string]string
	order         []string
	counters      map[string]int
}

// New returns an empty anonymizer.
func New() *Anonymizer {
	return &Anonymizer{
		substitutions: make(map[string]string),
		counters:      make(map[string]int),
	}
}

// Anonymize replaces emails, phone numbers, and honorific-prefixed names
// with placeholders. Repeated occurrences of the same entity share one
// placeholder, so the map count reflects distinct entities.
func (a *Anonymizer) Anonymize(text string) string {
	text = a.replaceAll(text, emailPattern, "EMAIL")
	text = a.replaceAll(text, personPattern, "PERSON")
	text = a.replaceAll(text, phonePattern, "PHONE")
	return text
}

func (a *Anonymizer) replaceAll(text string, pattern *regexp.Regexp, kind string) string {
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		for _, placeholder := range a.order {
			if a.substitutions[placeholder] == match {
				return placeholder
			}
		}
		a.counters[kind]++
		placeholder := fmt.Sprintf("[%s-%d]", kind, a.counters[kind])
		a.substitutions[placeholder] = match
		a.order = append(a.order, placeholder)
		return placeholder
	})
}

// Restore replaces placeholders in generated text with their originals.
// Unknown placeholders are left untouched.
func (a *Anonymizer) Restore(text string) string {
	for _, placeholder := range a.order {
		text = strings.ReplaceAll(text, placeholder, a.substitutions[placeholder])
	}
	return text
}

// MapCount returns the number of distinct substitutions performed.
func (a *Anonymizer) MapCount() int {
	return len(a.substitutions)
}
