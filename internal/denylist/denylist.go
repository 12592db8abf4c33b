// Package denylist holds the product identifiers excluded from every
// processing run and the parsing rules for editing that list.
package denylist

import "strings"

// defaultIDs is the built-in exclusion set used whenever nothing valid has
// been persisted. These are the pharmacist-points product codes.
var defaultIDs = []string{
	"028968", "028976", "029583", "029582", "029569", "029570", "022155", "000464",
	"018039", "024369", "015715", "029585", "030175", "030081", "010654", "029821",
	"032541", "009137", "023258", "029445", "014951", "031759", "032204", "032332",
}

// Default returns a fresh copy of the built-in exclusion set.
func Default() []string {
	ids := make([]string, len(defaultIDs))
	copy(ids, defaultIDs)
	return ids
}

// ParseFreeText splits free-form text on commas and newlines, trims each
// token, and drops empty ones. Order is preserved and no deduplication
// happens here; duplicates are only resolved at save time.
func ParseFreeText(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			ids = append(ids, f)
		}
	}
	return ids
}

// Join renders identifiers back into editable free text. ParseFreeText on
// the result reproduces the input list.
func Join(ids []string) string {
	return strings.Join(ids, ", ")
}

// normalize is the comparison key for duplicate detection: trimmed and
// case-folded.
func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Duplicates returns the distinct identifiers that appear more than once,
// in first-seen order. Comparison ignores case and surrounding whitespace.
func Duplicates(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	reported := make(map[string]bool)
	var dups []string

	for _, id := range ids {
		key := normalize(id)
		if seen[key] && !reported[key] {
			reported[key] = true
			dups = append(dups, strings.TrimSpace(id))
		}
		seen[key] = true
	}
	return dups
}

// Dedupe removes duplicate identifiers, keeping the first occurrence of
// each (trimmed) and preserving order.
func Dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		key := normalize(id)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
