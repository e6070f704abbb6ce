package counter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownSortOrder is returned by ParseSortOrder for unrecognized names.
var ErrUnknownSortOrder = errors.New("unknown sort order")

// SortOrder selects how a WordCountVec is ordered.
type SortOrder int

const (
	// Unsorted keeps whatever order flattening produced
	Unsorted SortOrder = iota
	// CountAsc sorts by count, then by word length, then alphabetically
	CountAsc
	// CountDesc sorts by count descending, then reverse alphabetically
	CountDesc
	// AlphaAsc sorts alphabetically, ignoring counts
	AlphaAsc
	// AlphaDesc sorts reverse alphabetically, ignoring counts
	AlphaDesc
)

// String returns the command-line name of the sort order.
func (s SortOrder) String() string {
	switch s {
	case Unsorted:
		return "none"
	case CountAsc:
		return "count"
	case CountDesc:
		return "count-desc"
	case AlphaAsc:
		return "alpha"
	case AlphaDesc:
		return "alpha-desc"
	default:
		return "unknown"
	}
}

// ParseSortOrder maps a command-line name to a SortOrder. Matching is case-insensitive.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "count":
		return CountAsc, nil
	case "count-desc":
		return CountDesc, nil
	case "alpha":
		return AlphaAsc, nil
	case "alpha-desc":
		return AlphaDesc, nil
	default:
		return Unsorted, fmt.Errorf("%w: %q (valid values are 'count', 'count-desc', 'alpha' and 'alpha-desc')", ErrUnknownSortOrder, s)
	}
}

// Compare returns a negative number when a sorts before b, a positive number
// when it sorts after, and zero when they are equal under the order.
// Unsorted considers all pairs equal.
func (s SortOrder) Compare(a, b WordPair) int {
	switch s {
	case CountAsc:
		if c := cmp.Compare(a.Count, b.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(len(a.Word), len(b.Word)); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	case CountDesc:
		// ties fall back to reverse alphabetical order, not word length
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(b.Word, a.Word)
	case AlphaAsc:
		return strings.Compare(a.Word, b.Word)
	case AlphaDesc:
		return strings.Compare(b.Word, a.Word)
	default:
		return 0
	}
}

// Sort orders v in place. Unsorted leaves v untouched.
func (s SortOrder) Sort(v WordCountVec) {
	if s == Unsorted {
		return
	}
	slices.SortFunc(v, s.Compare)
}
