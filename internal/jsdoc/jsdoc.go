// Package jsdoc translates JavaScript string literals that are
// heuristically human-facing: assigned to a DOM-text-setting property,
// passed to a DOM-writing call, or assigned anywhere when the content is
// HTML-shaped or long enough to be prose. Everything else in the file is
// left byte-identical.
package jsdoc

import (
	"context"
	"regexp"
	"strings"

	"github.com/dfop02/lokyll/internal/segment"
)

// reLiteral matches a "renders text" context followed by a string or
// template literal. RE2 has no backreferences, so each quote kind gets its
// own alternative instead of a quoted-by-group pattern.
var reLiteral = regexp.MustCompile(
	`(?s)(\b(?:innerHTML|outerHTML|textContent)\s*=\s*` +
		`|document\.write\s*\(` +
		`|insertAdjacentHTML\s*\(\s*['"][^'"]+['"]\s*,\s*` +
		`|=\s*)` +
		`('(?:\\.|[^'\\])*'` +
		`|"(?:\\.|[^"\\])*"` +
		"|`(?:\\\\.|[^`\\\\])*`)")

// template-literal interpolation spans: ${...}
var reInterp = regexp.MustCompile(`(?s)\$\{.*?\}`)

// Translate returns jsText with matching string literals translated by fn.
//
// Literals that look like URLs or whose trimmed content is under 4
// characters are skipped; of the rest, only HTML-shaped content (contains
// both < and >) or content of at least 4 words is translated. Template
// literals keep their ${...} spans verbatim and in position; only the
// translated runs are re-escaped for the original quote character.
func Translate(ctx context.Context, fn segment.Func, jsText string) string {
	return reLiteral.ReplaceAllStringFunc(jsText, func(match string) string {
		sub := reLiteral.FindStringSubmatch(match)
		prefix, lit := sub[1], sub[2]
		quote := lit[0]
		raw := lit[1 : len(lit)-1]

		if segment.LooksLikeURL(raw) || len(strings.TrimSpace(raw)) < 4 {
			return match
		}

		looksHTML := strings.Contains(raw, "<") && strings.Contains(raw, ">")
		longish := len(strings.Fields(raw)) >= 4
		if !looksHTML && !longish {
			return match
		}

		// backslashes first, then the delimiting quote
		escape := func(s string) string {
			s = strings.ReplaceAll(s, `\`, `\\`)
			return strings.ReplaceAll(s, string(quote), `\`+string(quote))
		}

		var escaped string
		if quote == '`' {
			// only the translated runs are re-escaped; the ${...}
			// spans stay byte-verbatim
			var b strings.Builder
			last := 0
			for _, loc := range reInterp.FindAllStringIndex(raw, -1) {
				b.WriteString(escape(segment.Translate(ctx, fn, raw[last:loc[0]])))
				b.WriteString(raw[loc[0]:loc[1]])
				last = loc[1]
			}
			b.WriteString(escape(segment.Translate(ctx, fn, raw[last:])))
			escaped = b.String()
		} else {
			escaped = escape(segment.Translate(ctx, fn, raw))
		}

		return prefix + string(quote) + escaped + string(quote)
	})
}
