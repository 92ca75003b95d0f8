// Package segment submits prose chunks to the translation capability while
// keeping URLs, email addresses, HTML entities, and marker tokens intact,
// and restoring each piece's exact surrounding whitespace afterward.
package segment

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/dfop02/lokyll/internal/protect"
)

// Func is the translation capability: source-language text in,
// target-language text out. A failed call degrades the affected piece to a
// no-op — Translate never propagates capability errors.
type Func func(ctx context.Context, text string) (string, error)

var (
	// scheme-prefixed URLs and email-shaped tokens; chunks containing
	// either are never sent to the capability
	reURLLike = regexp.MustCompile(`https?://|[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+`)

	// HTML entities, named or numeric
	reEntity = regexp.MustCompile(`&[a-zA-Z]+;|&#[0-9]+;`)
)

// specialChars are single characters that are never worth a capability call.
var specialChars = map[string]bool{
	"#": true, "$": true, "@": true, "!": true,
	"%": true, "^": true, "&": true, "*": true,
}

// LooksLikeURL reports whether s contains a scheme-prefixed URL or an
// email-shaped token.
func LooksLikeURL(s string) bool {
	return reURLLike.MatchString(s)
}

// Translate translates the prose content of text with fn.
//
// Empty or whitespace-only input comes back unchanged, as do chunks that
// look like URLs or email addresses. Marker tokens from the protect package
// interrupt a chunk without removing it from consideration: the runs
// between tokens are translated, the tokens stay in position. Within a run,
// HTML entities are preserved positionally and each remaining piece keeps
// its exact leading and trailing whitespace, so line and paragraph spacing
// in the host document is unaffected.
func Translate(ctx context.Context, fn Func, text string) string {
	if text == "" || strings.TrimSpace(text) == "" {
		return text
	}

	if protect.HasToken(text) {
		var b strings.Builder
		for _, part := range protect.SplitTokens(text) {
			if protect.IsToken(part) {
				b.WriteString(part)
			} else {
				b.WriteString(Translate(ctx, fn, part))
			}
		}
		return b.String()
	}

	if reURLLike.MatchString(text) {
		return text
	}

	entities := reEntity.FindAllString(text, -1)
	chunks := reEntity.Split(text, -1)

	var out strings.Builder
	for i, chunk := range chunks {
		out.WriteString(translatePiece(ctx, fn, chunk))
		if i < len(entities) {
			out.WriteString(entities[i])
		}
	}
	return out.String()
}

// translatePiece translates one entity-free piece, reapplying its original
// leading and trailing whitespace. Capability failures substitute the
// original piece untouched.
func translatePiece(ctx context.Context, fn Func, chunk string) string {
	stripped := strings.TrimSpace(chunk)
	if stripped == "" || specialChars[stripped] {
		return chunk
	}

	translated, err := fn(ctx, stripped)
	if err != nil {
		return chunk
	}

	leading := chunk[:len(chunk)-len(strings.TrimLeftFunc(chunk, unicode.IsSpace))]
	trailing := chunk[len(strings.TrimRightFunc(chunk, unicode.IsSpace)):]
	return leading + translated + trailing
}
