package stringutil

import "unicode/utf8"

// PrefixRightBound computes the exclusive right bound of a prefix range
// query: the smallest string greater than every string starting with p. The
// half-open range [p, bound) then matches exactly the strings with prefix p.
//
// Scanning from the end, the rightmost rune that can be incremented to a
// valid rune is bumped and everything after it is dropped. Returns ok=false
// when no bound exists: the empty prefix, or a prefix of runes that are all
// at the top of the valid range.
func PrefixRightBound(p string) (string, bool) {
	if p == "" {
		return "", false
	}

	runes := []rune(p)

	for i := len(runes) - 1; i >= 0; i-- {
		next, ok := incrementRune(runes[i])
		if !ok {
			continue
		}

		return string(runes[:i]) + string(next), true
	}

	return "", false
}

// PrefixToRange converts a prefix into the half-open range [start, end)
// covering every string with that prefix. bounded is false when the range has
// no right bound; end is then empty and the range extends to the top of the
// keyspace.
func PrefixToRange(prefix string) (start, end string, bounded bool) {
	end, bounded = PrefixRightBound(prefix)

	return prefix, end, bounded
}

// incrementRune returns the next rune after r, skipping nothing: if r+1 is
// not a valid rune (the surrogate range, or past utf8.MaxRune) the rune is
// reported as non-incrementable, mirroring ordering over encoded strings.
func incrementRune(r rune) (rune, bool) {
	next := r + 1
	if next > utf8.MaxRune || !utf8.ValidRune(next) {
		return 0, false
	}

	return next, true
}
