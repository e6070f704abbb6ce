// Package counter provides word tallying for the wordcount CLI tool.
//
// This package implements the tokenizer that splits text into words, the
// Dictionary that accumulates per-word occurrence counts, and the sort orders
// applied to the flattened result. A word is a maximal run of alphabetic
// characters; everything else (digits, punctuation, whitespace) delimits.
//
// Usage Example:
//
//	dict := counter.Dictionary{}
//	counter.CountWords("Hello, hello world!", dict, true)
//	// dict == {"hello": 2, "world": 1}
//
//	pairs := dict.Flatten()
//	counter.CountDesc.Sort(pairs)
//
// Counting is not safe for concurrent use; a Dictionary is meant to be owned
// by a single collector run.
package counter

import "fmt"

// Dictionary maps a word to the number of times it was seen.
// Absent words have a count of zero; a present word always has a count >= 1.
type Dictionary map[string]uint32

// Add increments the count for word. Empty words are ignored.
func (d Dictionary) Add(word string) {
	if word == "" {
		return
	}
	d[word]++
}

// Flatten returns the dictionary content as an unsorted WordCountVec.
// Order follows map iteration and must not be relied upon.
func (d Dictionary) Flatten() WordCountVec {
	v := make(WordCountVec, 0, len(d))
	for word, count := range d {
		v = append(v, WordPair{Word: word, Count: count})
	}
	return v
}

// WordPair is a single word and its occurrence count.
type WordPair struct {
	Word  string `json:"word" yaml:"word"`
	Count uint32 `json:"count" yaml:"count"`
}

// String returns the pair as "<word> <count>".
func (p WordPair) String() string {
	return fmt.Sprintf("%s %d", p.Word, p.Count)
}

// WordCountVec is the flattened, optionally sorted, result of a run.
type WordCountVec []WordPair
