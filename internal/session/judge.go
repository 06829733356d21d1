package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsCorrect reports whether input matches headword exactly, ignoring case.
func IsCorrect(headword, input string) bool {
	return strings.EqualFold(input, headword)
}

// FollowComplete reports whether follow-mode input has reached the length
// of the headword and should be judged.
func FollowComplete(headword, input string) bool {
	n := utf8.RuneCountInString(input)
	return n > 0 && n == utf8.RuneCountInString(headword)
}

// ParseSelfGrade interprets a typed review verdict. Empty input, "]", "y"
// and "yes" mean mastered; "[", "n" and "no" mean not mastered.
func ParseSelfGrade(input string) (mastered, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "]", "y", "yes":
		return true, true
	case "[", "n", "no":
		return false, true
	}
	return false, false
}

// CharMark is the follow-mode state of one headword character.
type CharMark int

const (
	CharPending CharMark = iota // not typed yet
	CharRight                   // typed and matches
	CharWrong                   // typed and differs
)

// MarkInput compares input to headword rune by rune, ignoring case.
// The result has one mark per headword rune.
func MarkInput(headword, input string) []CharMark {
	target := []rune(headword)
	typed := []rune(input)
	marks := make([]CharMark, len(target))
	for i, r := range target {
		switch {
		case i >= len(typed):
			marks[i] = CharPending
		case unicode.ToLower(typed[i]) == unicode.ToLower(r):
			marks[i] = CharRight
		default:
			marks[i] = CharWrong
		}
	}
	return marks
}
