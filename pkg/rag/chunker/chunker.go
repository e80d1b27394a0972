package chunker

import (
	"strings"
)

// Chunk splits text into contiguous, non-overlapping segments of at most
// maxSize runes. Break points prefer a paragraph boundary, then a sentence
// end, then a space, before falling back to a hard cut. The concatenation of
// the returned chunks reproduces the input exactly, so no characters are
// lost at boundaries.
//
// Empty or whitespace-only input returns nil. maxSize <= 0 returns the whole
// text as a single chunk. Pure function, never panics.
func Chunk(text string, maxSize int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if maxSize <= 0 || len(runes) <= maxSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		remaining := len(runes) - start
		if remaining <= maxSize {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		window := runes[start : start+maxSize]
		cut := breakPoint(window)
		chunks = append(chunks, string(window[:cut]))
		start += cut
	}
	return chunks
}

// breakPoint picks where to cut a full window. A boundary is only honored in
// the second half of the window so a stray early period cannot produce
// degenerate slivers.
func breakPoint(window []rune) int {
	minCut := len(window) / 2

	if cut := lastParagraphEnd(window); cut > minCut {
		return cut
	}
	if cut := lastSentenceEnd(window); cut > minCut {
		return cut
	}
	if cut := lastSpace(window); cut > minCut {
		return cut
	}
	return len(window)
}

func lastParagraphEnd(window []rune) int {
	for i := len(window) - 1; i > 0; i-- {
		if window[i] == '\n' && window[i-1] == '\n' {
			return i + 1
		}
	}
	return 0
}

func lastSentenceEnd(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?', '\n':
			return i + 1
		}
	}
	return 0
}

func lastSpace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' || window[i] == '\t' {
			return i + 1
		}
	}
	return 0
}
