// Package htmldoc translates the prose of an HTML document — text nodes
// and a fixed set of human-facing attributes — while leaving markup,
// template tags, and any leading metadata block byte-identical.
//
// The document is never re-serialized from the parse tree: translated text
// is substituted into the original body with a forward-moving cursor, so
// everything outside translated prose keeps its exact bytes and duplicate
// text elsewhere in the document cannot be hit by an earlier node's
// replacement.
package htmldoc

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dfop02/lokyll/internal/frontmatter"
	"github.com/dfop02/lokyll/internal/protect"
	"github.com/dfop02/lokyll/internal/segment"
)

// ignoredTags are elements whose text content is never prose.
var ignoredTags = map[string]bool{
	"script": true,
	"style":  true,
	"code":   true,
	"pre":    true,
}

// TranslatableAttrs are attributes that often carry user-facing text
// ("content" covers <meta name="description"> and friends).
var TranslatableAttrs = map[string]bool{
	"title":            true,
	"alt":              true,
	"placeholder":      true,
	"aria-label":       true,
	"aria-placeholder": true,
	"aria-description": true,
	"aria-valuetext":   true,
	"content":          true,
}

// Translate returns htmlText with its prose translated by fn.
//
// A leading "---"-delimited metadata block is carried through untouched.
// Template tags are masked (with their surrounding whitespace captured)
// before parsing, so the markup parser never sees template syntax; they are
// restored exactly at the end. Text nodes under script/style/code/pre are
// skipped. A parse failure is returned to the caller's error boundary — the
// walker reports it and keeps the run alive.
func Translate(ctx context.Context, fn segment.Func, htmlText string) (string, error) {
	block, body := frontmatter.SplitRaw(htmlText)

	masker := protect.NewMasker()
	masked := masker.MaskTemplatesSpaced(body)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(masked))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	sub := newSubstituter(masked)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if !TranslatableAttrs[strings.ToLower(attr.Key)] {
					continue
				}
				if strings.TrimSpace(attr.Val) == "" {
					continue
				}
				translated := segment.Translate(ctx, fn, attr.Val)
				if translated != attr.Val {
					sub.replaceAttr(attr.Key, attr.Val, translated)
				}
			}
		}

		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			parent := n.Parent
			if parent == nil || !ignoredTags[strings.ToLower(parent.Data)] {
				translated := segment.Translate(ctx, fn, n.Data)
				if translated != n.Data {
					sub.replaceText(n.Data, translated)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	return block + masker.Restore(sub.String()), nil
}

// substituter performs ordered first-occurrence replacements over the
// serialized body. The cursor only moves forward; nodes are visited in
// document order, so each replacement lands on its own instance.
type substituter struct {
	text   string
	cursor int
}

func newSubstituter(text string) *substituter {
	return &substituter{text: text}
}

// replaceText swaps the first occurrence of original at or after the
// cursor. The parser hands back entity-decoded node text, so the escaped
// form is tried when the decoded form is absent; when neither occurs the
// node is left untranslated.
func (s *substituter) replaceText(original, translated string) {
	if s.tryReplace(original, translated) {
		return
	}
	escaped := html.EscapeString(original)
	if escaped != original {
		s.tryReplace(escaped, html.EscapeString(translated))
	}
}

// replaceAttr swaps the literal attr="value" serialization, trying both
// quote styles.
func (s *substituter) replaceAttr(key, val, translated string) {
	if s.tryReplace(key+`="`+val+`"`, key+`="`+translated+`"`) {
		return
	}
	s.tryReplace(key+`='`+val+`'`, key+`='`+translated+`'`)
}

func (s *substituter) tryReplace(old, replacement string) bool {
	idx := strings.Index(s.text[s.cursor:], old)
	if idx == -1 {
		return false
	}
	idx += s.cursor
	s.text = s.text[:idx] + replacement + s.text[idx+len(old):]
	s.cursor = idx + len(replacement)
	return true
}

func (s *substituter) String() string {
	return s.text
}
