// Package mddoc translates the prose of a Markdown document line by line,
// protecting fenced code, inline code, and template tags, preserving
// heading markers and link targets, and round-tripping the metadata block.
package mddoc

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/dfop02/lokyll/internal/frontmatter"
	"github.com/dfop02/lokyll/internal/protect"
	"github.com/dfop02/lokyll/internal/segment"
)

var (
	// markdown links: [label](url); the label is prose, the url is not
	reLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	// a heading whose translated text echoes the marker: "## #Title"
	reHeadingEcho = regexp.MustCompile(`(?m)^(#+)\s+#`)
)

// Translate returns mdText with its prose translated by fn.
//
// Fenced code blocks, inline code spans, and template tags are masked in a
// single combined pass so nested constructs stay whole. Links keep their
// targets byte-identical while the label is translated in place. Body lines
// keep their indentation, heading markers, and trailing whitespace.
func Translate(ctx context.Context, fn segment.Func, mdText string) string {
	raw, body, hasMeta := frontmatter.Split(mdText)

	var metaOut string
	if hasMeta {
		metaOut = "---\n" + frontmatter.TranslateKeys(ctx, fn, raw) + "\n---"
	}

	masker := protect.NewMasker()
	masked := masker.MaskAll(body)

	masked = reLink.ReplaceAllStringFunc(masked, func(match string) string {
		sub := reLink.FindStringSubmatch(match)
		return "[" + segment.Translate(ctx, fn, sub[1]) + "](" + sub[2] + ")"
	})

	var b strings.Builder
	for _, line := range splitLines(masked) {
		b.WriteString(translateLine(ctx, fn, line))
	}

	bodyOut := masker.Restore(b.String())

	// a capability may echo the heading marker back into the text
	bodyOut = reHeadingEcho.ReplaceAllString(bodyOut, "$1 ")

	if hasMeta {
		sep := ""
		if !strings.HasPrefix(bodyOut, "\n") {
			sep = "\n"
		}
		return metaOut + sep + bodyOut
	}
	return bodyOut
}

// translateLine translates one line, preserving its terminator.
// Blank lines pass through; heading lines keep their indentation and "#"
// run; other lines keep exact leading and trailing whitespace.
func translateLine(ctx context.Context, fn segment.Func, line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}

	content, term := cutTerminator(line)

	stripped := strings.TrimLeft(content, " \t")
	if strings.HasPrefix(stripped, "#") {
		indent := content[:len(content)-len(stripped)]
		hashes, rest, _ := strings.Cut(stripped, " ")
		text := strings.TrimSpace(rest)
		if text == "" {
			return line
		}
		return indent + hashes + " " + segment.Translate(ctx, fn, text) + term
	}

	leading := content[:len(content)-len(strings.TrimLeftFunc(content, unicode.IsSpace))]
	trailing := content[len(strings.TrimRightFunc(content, unicode.IsSpace)):]
	trimmed := strings.TrimSpace(content)

	translated := segment.Translate(ctx, fn, trimmed)
	// some capabilities insert a space into link syntax; collapse it
	translated = strings.ReplaceAll(translated, "] (", "](")

	return leading + translated + trailing + term
}

// cutTerminator splits a line into content and its line terminator
// ("\r\n", "\n", or empty at EOF).
func cutTerminator(line string) (content, term string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// splitLines splits text into lines, each keeping its terminator, so that
// concatenating the result reproduces text.
func splitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i == -1 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}
