package library

import (
	"strings"

	"github.com/abhisek/wordiz/internal/words"
)

// dedupKey folds the headword's case; the meaning is compared verbatim.
func dedupKey(w words.Word) string {
	return strings.ToLower(w.Headword) + words.KeySeparator + w.Meaning
}

// Dedup trims both sides of every entry, drops entries with a blank side and
// keeps the first of any entries that differ only in headword case.
func Dedup(list []words.Word) []words.Word {
	seen := make(map[string]struct{}, len(list))
	out := make([]words.Word, 0, len(list))
	for _, w := range list {
		w = words.New(strings.TrimSpace(w.Headword), strings.TrimSpace(w.Meaning))
		if w.Headword == "" || w.Meaning == "" {
			continue
		}
		key := dedupKey(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}

// AddWord appends w to list unless an entry with the same exact identity is
// already present, then deduplicates the result.
func AddWord(list []words.Word, w words.Word) []words.Word {
	if (words.Library{Words: list}).Contains(w) {
		return Dedup(list)
	}
	return Dedup(append(append([]words.Word(nil), list...), w))
}
