// Package textwrap reflows news entry prose.
//
// Wrapping is greedy and never splits a word: a word longer than the line
// width is placed on a line of its own, and hyphenated words are treated as
// a single word. Body reflows a whole entry paragraph by paragraph, leaving
// bulleted lists and literal blocks untouched.
package textwrap

import (
	"strings"
	"unicode/utf8"
)

// Width is the column at which entry bodies are wrapped.
const Width = 76

const tabSize = 8

// Wrap wraps text into lines no longer than width where possible.
// initialIndent prefixes the first line and subsequentIndent every other one;
// both count towards the width.
func Wrap(text string, width int, initialIndent, subsequentIndent string) []string {
	chunks := split(text)
	var lines []string

	i := 0
	for i < len(chunks) {
		indent := subsequentIndent
		if len(lines) == 0 {
			indent = initialIndent
		}
		avail := width - utf8.RuneCountInString(indent)
		if avail < 1 {
			avail = 1
		}

		// Whitespace at the start of a continuation line is dropped.
		if len(lines) > 0 && isBlank(chunks[i]) {
			i++
			if i == len(chunks) {
				break
			}
		}

		var cur []string
		curLen := 0
		for i < len(chunks) {
			l := utf8.RuneCountInString(chunks[i])
			if curLen+l > avail {
				break
			}
			cur = append(cur, chunks[i])
			curLen += l
			i++
		}

		// A word that cannot fit on any line is kept whole.
		if i < len(chunks) && len(cur) == 0 {
			cur = append(cur, chunks[i])
			i++
		}

		if len(cur) > 0 && isBlank(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			lines = append(lines, indent+strings.Join(cur, ""))
		}
	}

	return lines
}

// asciiSpace lists the only characters wrapping breaks at. Other Unicode
// spaces, such as U+00A0, are part of the word they join.
const asciiSpace = "\t\n\v\f\r "

func isSpace(r rune) bool {
	return r < utf8.RuneSelf && strings.ContainsRune(asciiSpace, r)
}

// split expands tabs, turns every ASCII whitespace character into a space
// and splits the result into alternating runs of words and spaces.
func split(text string) []string {
	text = expandTabs(text)

	var chunks []string
	var sb strings.Builder
	inSpace := false
	for _, r := range text {
		space := isSpace(r)
		if space {
			r = ' '
		}
		if sb.Len() > 0 && space != inSpace {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		inSpace = space
		sb.WriteRune(r)
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

func expandTabs(text string) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	var sb strings.Builder
	col := 0
	for _, r := range text {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}

func isBlank(s string) bool {
	return strings.Trim(s, asciiSpace) == ""
}
