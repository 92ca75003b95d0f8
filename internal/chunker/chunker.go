// Package chunker splits oversized text into service-sized pieces while
// preserving sentence and paragraph integrity. Most document chunks are a
// line or a text node and fit in one request; long paragraphs and metadata
// values occasionally do not.
package chunker

import (
	"strings"
	"unicode"
)

// Chunk splits text into pieces each no longer than maxChars unicode
// code points. Splits are attempted (in order of preference) at:
//  1. Paragraph boundaries (\n\n or \r\n\r\n)
//  2. Sentence-ending punctuation (. ! ?)
//  3. Whitespace (word boundary)
//  4. Hard cut at maxChars if no suitable boundary is found
//
// If text fits entirely within maxChars, a single-element slice is
// returned. If maxChars ≤ 0 it is treated as unlimited.
func Chunk(text string, maxChars int) []string {
	if maxChars <= 0 || len([]rune(text)) <= maxChars {
		return []string{text}
	}

	var chunks []string
	remaining := text

	for len([]rune(remaining)) > maxChars {
		split := findSplit(remaining, maxChars)
		chunk := strings.TrimSpace(remaining[:split])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		remaining = strings.TrimSpace(remaining[split:])
	}

	if strings.TrimSpace(remaining) != "" {
		chunks = append(chunks, strings.TrimSpace(remaining))
	}

	return chunks
}

// findSplit returns the byte index within text at which to split, aiming
// for at most maxChars runes, searching backwards for the best boundary.
func findSplit(text string, maxChars int) int {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return len(text)
	}

	candidate := string(runes[:maxChars])

	// 1. Paragraph boundary.
	if idx := strings.LastIndex(candidate, "\n\n"); idx > 0 {
		return idx + 2
	}
	if idx := strings.LastIndex(candidate, "\r\n\r\n"); idx > 0 {
		return idx + 4
	}

	candRunes := []rune(candidate)

	// 2. Sentence-ending punctuation followed by a space.
	for i := len(candRunes) - 1; i > 0; i-- {
		r := candRunes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(candRunes) && unicode.IsSpace(candRunes[i+1]) {
			return len(string(candRunes[:i+1]))
		}
	}

	// 3. Whitespace word boundary.
	for i := len(candRunes) - 1; i > 0; i-- {
		if unicode.IsSpace(candRunes[i]) {
			return len(string(candRunes[:i]))
		}
	}

	// 4. Hard cut.
	return len(candidate)
}
