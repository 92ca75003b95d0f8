// Package frontmatter handles the "---"-delimited metadata block at the
// start of HTML and Markdown content files. The block is structured YAML,
// not prose: only a whitelisted subset of keys is ever translated, and the
// rest of the mapping round-trips untouched in its original key order.
package frontmatter

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dfop02/lokyll/internal/protect"
	"github.com/dfop02/lokyll/internal/segment"
)

// TranslatableKeys are the metadata fields whose values carry human-facing
// prose. Everything else passes through byte-identical.
var TranslatableKeys = map[string]bool{
	"title":       true,
	"description": true,
	"summary":     true,
}

// Split separates the metadata block from the body. The block starts with
// "---\n" at offset 0 and ends at the next line beginning with "---"; raw
// excludes both delimiter lines. ok is false when no block is present, in
// which case body is the full input.
func Split(text string) (raw, body string, ok bool) {
	if !strings.HasPrefix(text, "---\n") {
		return "", text, false
	}
	end := strings.Index(text[4:], "\n---")
	if end == -1 {
		return "", text, false
	}
	end += 4
	return text[4:end], text[end+4:], true
}

// SplitRaw separates the metadata block including both delimiter lines,
// for callers that must keep the block byte-identical. block is empty when
// no metadata block is present.
func SplitRaw(text string) (block, body string) {
	if !strings.HasPrefix(text, "---\n") {
		return "", text
	}
	end := strings.Index(text[4:], "\n---")
	if end == -1 {
		return "", text
	}
	cut := end + 4 + 4
	return text[:cut], text[cut:]
}

// TranslateKeys translates the whitelisted scalar values of the raw
// metadata block and re-serializes it, preserving key order. Values
// containing template markers are left alone. Unparsable YAML is treated
// as an empty mapping: the block comes back unchanged rather than failing
// the file.
func TranslateKeys(ctx context.Context, fn segment.Func, raw string) string {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil || len(node.Content) == 0 {
		return raw
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return raw
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]
		if valNode.Kind != yaml.ScalarNode || !TranslatableKeys[keyNode.Value] {
			continue
		}
		if protect.HasTemplate(valNode.Value) {
			continue
		}
		valNode.Value = segment.Translate(ctx, fn, valNode.Value)
	}

	out, err := yaml.Marshal(&node)
	if err != nil {
		return raw
	}
	// Marshaling a document node may prepend its own "---" delimiter;
	// the caller owns the delimiters.
	s := strings.TrimSpace(string(out))
	s = strings.TrimPrefix(s, "---")
	return strings.TrimSpace(s)
}
