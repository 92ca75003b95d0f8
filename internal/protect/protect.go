// Package protect identifies the substrings of a document that must never
// reach the translation capability — template tags ({% ... %} / {{ ... }}),
// fenced code blocks, inline code spans — and replaces them with numbered
// markers ([PH0], [PH1], …) that survive parsing and translation untouched.
// Restore substitutes the originals back by index.
//
// The recognizers are regular expressions, not a grammar: nested constructs
// (a fence inside a fence, a template tag inside a template tag) are only
// matched one level deep. The input grammars are shallow in practice.
package protect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// template tags: {% ... %} (optionally whitespace-trimmed, {%- ... -%})
	// and {{ ... }}; non-greedy, may span lines
	reTemplate = regexp.MustCompile(`(?s){%-?.*?-?%}|\{\{.*?\}\}`)

	// a template tag together with the whitespace around it, captured
	// separately so Restore can re-attach exact spacing
	reTemplateSpaced = regexp.MustCompile(`(?s)(\s*)({%-?.*?-?%}|\{\{.*?\}\})(\s*)`)

	// every protected grammar in one alternation: fenced code blocks,
	// inline code spans, template tags. One combined pass keeps nested
	// constructs whole — a backtick inside a tag is captured with the
	// tag, never as a separate inline span.
	reProtected = regexp.MustCompile(
		"(?s)```.*?```" +
			"|`[^`]+`" +
			`|{%-?.*?-?%}|\{\{.*?\}\}`)

	// marker token in masked or translated text
	reToken = regexp.MustCompile(`\[PH(\d+)\]`)
)

// HasTemplate reports whether text contains a template tag.
func HasTemplate(text string) bool {
	return reTemplate.MatchString(text)
}

// span is one captured original plus the whitespace that surrounded it.
type span struct {
	leading  string
	body     string
	trailing string
}

// Masker replaces protected spans with [PHn] tokens and restores them by
// exact index lookup. The token grammar is reserved — it does not occur in
// normal document text — and the capture list is append-only, so restoring
// in any order reproduces the original content.
type Masker struct {
	spans []span
}

// NewMasker returns an empty Masker.
func NewMasker() *Masker {
	return &Masker{}
}

// Len returns the number of captured spans.
func (m *Masker) Len() int {
	return len(m.spans)
}

// MaskAll masks fenced code blocks, inline code spans, and template tags in
// one left-to-right pass, leaving the surrounding whitespace in place. Used
// for line-oriented content where the whitespace carries document structure.
// The alternatives are tried in that order at each position, so a span can
// never be captured inside another span and no token ends up nested.
func (m *Masker) MaskAll(text string) string {
	return reProtected.ReplaceAllStringFunc(text, func(match string) string {
		return m.capture("", match, "")
	})
}

// MaskTemplatesSpaced masks every template tag together with the whitespace
// on either side of it. The whitespace is captured separately from the tag
// so Restore re-attaches exact spacing even when translation disturbs the
// text around the token.
func (m *Masker) MaskTemplatesSpaced(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range reTemplateSpaced.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[last:loc[0]])
		b.WriteString(m.capture(text[loc[2]:loc[3]], text[loc[4]:loc[5]], text[loc[6]:loc[7]]))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func (m *Masker) capture(leading, body, trailing string) string {
	id := len(m.spans)
	m.spans = append(m.spans, span{leading: leading, body: body, trailing: trailing})
	return fmt.Sprintf("[PH%d]", id)
}

// Restore substitutes every [PHn] token in text with its captured original
// plus the whitespace captured around it. Tokens with out-of-range indices
// are left as-is; tokens missing from text are silently ignored.
func (m *Masker) Restore(text string) string {
	return reToken.ReplaceAllStringFunc(text, func(match string) string {
		sub := reToken.FindStringSubmatch(match)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(m.spans) {
			return match
		}
		s := m.spans[idx]
		return s.leading + s.body + s.trailing
	})
}

// HasToken reports whether text contains at least one marker token.
func HasToken(text string) bool {
	return reToken.MatchString(text)
}

// IsToken reports whether s is exactly one marker token.
func IsToken(s string) bool {
	loc := reToken.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

// SplitTokens splits text into alternating runs of plain text and marker
// tokens, preserving both. Concatenating the pieces reproduces text.
func SplitTokens(text string) []string {
	var parts []string
	last := 0
	for _, loc := range reToken.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			parts = append(parts, text[last:loc[0]])
		}
		parts = append(parts, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) || len(parts) == 0 {
		parts = append(parts, text[last:])
	}
	return parts
}

// InstructionHint returns a short sentence to append to an LLM prompt so
// the model knows to leave marker tokens intact.
func InstructionHint() string {
	return "Preserve all [PHn] markers exactly as they appear — do not translate, move, or remove them."
}
