package counter

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// alphabetic mirrors the Unicode Alphabetic derived property:
// letters, letter numbers and Other_Alphabetic marks.
var alphabetic = []*unicode.RangeTable{unicode.Letter, unicode.Nl, unicode.Other_Alphabetic}

// isDelimiter reports whether r separates words.
func isDelimiter(r rune) bool {
	return !unicode.In(r, alphabetic...)
}

// Tokenizer splits text into words and folds them before they are counted.
type Tokenizer struct {
	ignoreCase bool
	stem       bool
	lower      cases.Caser
}

// NewTokenizer creates a Tokenizer.
// With ignoreCase every word is lower-cased before counting; with stem every
// word is reduced to its English Snowball stem, which also lower-cases it.
func NewTokenizer(ignoreCase, stem bool) *Tokenizer {
	return &Tokenizer{
		ignoreCase: ignoreCase,
		stem:       stem,
		lower:      cases.Lower(language.Und),
	}
}

// CountWords adds every word found in text to dict.
func (t *Tokenizer) CountWords(text string, dict Dictionary) {
	if text == "" {
		return
	}

	// strings.FieldsFunc never yields empty fields
	words := strings.FieldsFunc(text, isDelimiter)
	for _, word := range words {
		dict.Add(t.fold(word))
	}

	slog.Debug("Words counted", "textLength", len(text), "wordCount", len(words), "uniqueWords", len(dict))
}

// fold applies case folding and stemming to a single word.
func (t *Tokenizer) fold(word string) string {
	if t.ignoreCase {
		word = t.lower.String(word)
	}
	if !t.stem {
		return word
	}

	stemmed, err := snowball.Stem(word, "english", false)
	if err != nil || stemmed == "" {
		// if stemming fails, count the word as is
		return word
	}
	return stemmed
}

// CountWords splits text at every non-alphabetic character and increments
// the count of each resulting word in dict. With ignoreCase the words are
// lower-cased first.
func CountWords(text string, dict Dictionary, ignoreCase bool) {
	NewTokenizer(ignoreCase, false).CountWords(text, dict)
}
