// Package chunk splits long messages into pieces that fit a delivery
// channel's per-message limit.
package chunk

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultThreshold is the length above which a message gets split.
	DefaultThreshold = 4000
	// DefaultLimit is the maximum length of each piece after a split.
	DefaultLimit = 3900
)

// Segments returns text as a single piece when it is at most threshold runes
// long, and Split(text, limit) otherwise.
func Segments(text string, threshold, limit int) []string {
	if utf8.RuneCountInString(text) <= threshold {
		return []string{text}
	}
	return Split(text, limit)
}

// Split cuts text into consecutive pieces of at most limit runes. Cuts fall
// on line boundaries and every piece keeps its line terminators, so joining
// the pieces reproduces text exactly. A single line longer than limit is cut
// at the rune limit.
//
// A limit of zero or less disables splitting. Empty text yields no pieces.
func Split(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		size = 0
	}

	for _, line := range lines(text) {
		n := utf8.RuneCountInString(line)
		if size+n > limit {
			flush()
		}
		for n > limit {
			head, tail := cutRunes(line, limit)
			chunks = append(chunks, head)
			line, n = tail, n-limit
		}
		current.WriteString(line)
		size += n
	}
	flush()

	return chunks
}

// lines splits text after every line terminator, keeping the terminator with
// its line. Terminators are \n, \r\n, a lone \r, \v, \f, the file, group
// and record separators, NEL, and the Unicode line and paragraph separators.
func lines(text string) []string {
	out := make([]string, 0, strings.Count(text, "\n")+1)
	for text != "" {
		i := strings.IndexFunc(text, isLineBreak)
		if i < 0 {
			out = append(out, text)
			break
		}
		_, w := utf8.DecodeRuneInString(text[i:])
		end := i + w
		if text[i] == '\r' && end < len(text) && text[end] == '\n' {
			end++
		}
		out = append(out, text[:end])
		text = text[end:]
	}
	return out
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// cutRunes splits s after its first n runes.
func cutRunes(s string, n int) (string, string) {
	i := 0
	for range n {
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
	}
	return s[:i], s[i:]
}
