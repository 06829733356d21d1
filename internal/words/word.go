package words

import (
	"strings"
	"time"
	"unicode/utf8"
)

// KeySeparator joins headword and meaning into an identity key.
const KeySeparator = "::"

// Word is a single vocabulary entry. Two entries with the same headword
// and meaning are the same word.
type Word struct {
	Headword string `json:"en"`
	Meaning  string `json:"zh"`
}

// New builds a Word from raw headword and meaning text.
func New(headword, meaning string) Word {
	return Word{Headword: headword, Meaning: meaning}
}

// Key returns the exact-string identity key of the word.
func (w Word) Key() string {
	return w.Headword + KeySeparator + w.Meaning
}

// CharCount is the rune length of the headword, used as a typing speed proxy.
func (w Word) CharCount() int {
	return utf8.RuneCountInString(w.Headword)
}

// IsZero reports whether the word carries no headword and no meaning.
func (w Word) IsZero() bool {
	return w.Headword == "" && w.Meaning == ""
}

// Valid reports whether both headword and meaning are non-blank.
func (w Word) Valid() bool {
	return strings.TrimSpace(w.Headword) != "" && strings.TrimSpace(w.Meaning) != ""
}

// Matches reports whether input equals the headword, ignoring case.
func (w Word) Matches(input string) bool {
	return strings.EqualFold(input, w.Headword)
}

// ScopeAll selects every library when computing scoped statistics.
const ScopeAll = "__ALL__"

// IsAllScope reports whether scope refers to every library.
func IsAllScope(scope string) bool {
	return scope == "" || scope == ScopeAll
}

// Library is a named, ordered list of words.
type Library struct {
	Name       string    `json:"name"`
	Words      []Word    `json:"words"`
	ImportedAt time.Time `json:"importDate"`
}

// WordCount returns the number of words in the library.
func (l Library) WordCount() int {
	return len(l.Words)
}

// Empty reports whether the library has no words.
func (l Library) Empty() bool {
	return len(l.Words) == 0
}

// KeySet returns the identity keys of all words in the library.
func (l Library) KeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(l.Words))
	for _, w := range l.Words {
		set[w.Key()] = struct{}{}
	}
	return set
}

// Contains reports whether the library holds a word with the same identity.
func (l Library) Contains(w Word) bool {
	key := w.Key()
	for _, lw := range l.Words {
		if lw.Key() == key {
			return true
		}
	}
	return false
}

// Union returns the distinct words of all libraries, first occurrence wins.
func Union(libs []Library) []Word {
	seen := make(map[string]struct{})
	var out []Word
	for _, lib := range libs {
		for _, w := range lib.Words {
			key := w.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
