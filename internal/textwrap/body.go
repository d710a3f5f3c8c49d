package textwrap

import (
	"strings"
	"unicode"
)

// listPrefixes mark paragraphs whose line breaks are significant.
var listPrefixes = []string{"* ", "1. ", "#. "}

// Lines joins body lines and wraps them with Body.
func Lines(lines []string, subsequentIndent string) string {
	text := strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
	return Body(text, subsequentIndent)
}

// Body wraps entry text at Width columns.
//
// Trailing whitespace is removed from every line and paragraphs (separated
// by a blank line) are wrapped independently. A paragraph starting a bulleted
// or numbered list, or one following a paragraph that ends in "::", is kept
// as written and only indented. When subsequentIndent is set, every line but
// the very first is indented with it. The result ends with a single newline.
func Body(text string, subsequentIndent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	text = strings.Join(lines, "\n")

	paragraphs := strings.Split(text, "\n\n")
	wrapped := make([]string, 0, len(paragraphs))
	initialIndent := ""
	keepLayout := false

	for _, paragraph := range paragraphs {
		keepLayout = keepLayout || hasListPrefix(paragraph)
		if keepLayout {
			paragraph = indentLines(paragraph, initialIndent, subsequentIndent)
		} else {
			// Wrapping once can leave the text in a state where a second
			// pass joins lines differently, so wrap twice to reach a fixed point.
			paragraph = reflow(paragraph, initialIndent, subsequentIndent)
			paragraph = reflow(paragraph, initialIndent, subsequentIndent)
		}
		wrapped = append(wrapped, paragraph)

		keepLayout = strings.HasSuffix(paragraph, "::")
		if subsequentIndent != "" {
			initialIndent = subsequentIndent
		}
	}

	return strings.TrimRightFunc(strings.Join(wrapped, "\n\n"), unicode.IsSpace) + "\n"
}

func reflow(paragraph, initialIndent, subsequentIndent string) string {
	lines := Wrap(strings.TrimSpace(paragraph), Width, initialIndent, subsequentIndent)
	return strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
}

func indentLines(paragraph, initialIndent, subsequentIndent string) string {
	if initialIndent == "" && subsequentIndent == "" {
		return paragraph
	}
	lines := strings.Split(paragraph, "\n")
	for i, line := range lines {
		indent := subsequentIndent
		if i == 0 {
			indent = initialIndent
		}
		lines[i] = indent + strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

func hasListPrefix(paragraph string) bool {
	for _, prefix := range listPrefixes {
		if strings.HasPrefix(paragraph, prefix) {
			return true
		}
	}
	return false
}
