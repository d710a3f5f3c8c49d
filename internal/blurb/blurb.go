// Package blurb reads and writes news entry files.
//
// A blurb file holds one or more entries separated by a line containing only
// "..". Each entry is an optional metadata block of ".. name: value" lines
// followed by a non-empty reStructuredText body:
//
//	.. gh-issue: 12345
//	.. section: Library
//
//	Fix a crash in the spam module.
//
// Files under "next/<section>/" store the section, issue, date and nonce in
// their file name instead of the metadata block.
package blurb

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/python/blurb/internal/textwrap"
)

// Metadata holds entry metadata keyed by lowercase name.
type Metadata map[string]string

// Keys returns the metadata names in sorted order.
func (m Metadata) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Entry is a single news entry.
type Entry struct {
	Metadata Metadata
	Body     string
}

// Blurbs is an ordered list of entries, usually the contents of one file.
type Blurbs []Entry

// Error is a parse or validation failure at a position in a blurb file.
type Error struct {
	Filename string
	// Line is zero-based.
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error in %s:%d:\n%s", e.Filename, e.Line, e.Message)
}

var naughtyPrefixes = []string{"- ", "Issue #", "bpo-", "gh-", "gh-issue-"}

var issueKeys = map[string]string{
	"gh-issue": "GitHub",
	"bpo":      "bpo",
}

// Parse parses the entries in text. initial, when non-nil, seeds the
// metadata of the first entry; filename is only used in error messages.
func Parse(text string, initial Metadata, filename string) (Blurbs, error) {
	p := &parser{filename: filename}
	p.reset()
	for _, key := range initial.Keys() {
		p.set(key, initial[key])
	}

	for n, raw := range strings.Split(text, "\n") {
		p.line = n
		line := strings.TrimRightFunc(raw, unicode.IsSpace)

		if p.inMetadata {
			if rest, ok := strings.CutPrefix(line, ".."); ok {
				name, value, found := strings.Cut(strings.TrimSpace(rest), ":")
				if !found {
					return nil, p.errorf("Metadata lines must look like '.. name: value', got %q", line)
				}
				name = strings.ToLower(strings.TrimSpace(name))
				if _, dup := p.metadata[name]; dup {
					return nil, p.errorf("Blurb metadata sets '%s' twice!", name)
				}
				p.set(name, strings.TrimSpace(value))
				continue
			}
			if strings.HasPrefix(line, "#") || line == "" {
				continue
			}
			p.inMetadata = false
		}

		if line == ".." {
			if err := p.finishEntry(); err != nil {
				return nil, err
			}
			continue
		}
		p.body = append(p.body, line)
	}

	if err := p.finishEntry(); err != nil {
		return nil, err
	}
	return p.entries, nil
}

type parser struct {
	filename   string
	line       int
	metadata   Metadata
	order      []string
	body       []string
	inMetadata bool
	entries    Blurbs
}

func (p *parser) reset() {
	p.metadata = Metadata{}
	p.order = nil
	p.body = nil
	p.inMetadata = true
}

func (p *parser) set(name, value string) {
	p.metadata[name] = value
	p.order = append(p.order, name)
}

func (p *parser) errorf(format string, args ...any) *Error {
	return &Error{Filename: p.filename, Line: p.line, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) finishEntry() error {
	if len(p.body) == 0 {
		return p.errorf("Blurb 'body' text must not be empty!")
	}
	text := textwrap.Lines(p.body, "")
	for _, prefix := range naughtyPrefixes {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			return p.errorf("Blurb 'body' can't start with '%s'!", prefix)
		}
	}

	_, noChanges := p.metadata["no changes"]
	_, hasBPO := p.metadata["bpo"]

	// Report problems in the order the keys appear in the file.
	for _, key := range p.order {
		value := p.metadata[key]
		switch key {
		case "gh-issue", "bpo":
			n, err := strconv.Atoi(value)
			if err != nil {
				return p.errorf("Invalid %s number: '%s'", issueKeys[key], value)
			}
			if key != "gh-issue" {
				continue
			}
			// Zero means "no GitHub issue" on release and legacy entries.
			if n == 0 && (noChanges || hasBPO) {
				continue
			}
			if n < LowestPossibleGHIssueNumber {
				return p.errorf("Invalid gh-issue number: '%s' (must be >= %d)", value, LowestPossibleGHIssueNumber)
			}
		case "section":
			if noChanges {
				continue
			}
			if !IsSection(value) {
				return p.errorf("Invalid section '%s'!  You must use one of the predefined sections.", value)
			}
		}
	}

	if _, ok := p.metadata["gh-issue"]; !ok && !hasBPO {
		return p.errorf("'gh-issue:' or 'bpo:' must be specified in the metadata!")
	}
	if _, ok := p.metadata["section"]; !ok {
		return p.errorf("No 'section' specified.  You must provide one!")
	}

	p.entries = append(p.entries, Entry{Metadata: p.metadata, Body: text})
	p.reset()
	return nil
}

// Load reads and parses a blurb file.
func Load(path string) (Blurbs, error) {
	return load(path, nil)
}

func load(path string, initial Metadata) (Blurbs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blurb file: %w", err)
	}
	return Parse(string(data), initial, path)
}

// String renders the entries in blurb file format. Metadata is written in
// sorted order and bodies are rewrapped.
func (b Blurbs) String() string {
	var sb strings.Builder
	for i, e := range b {
		if i > 0 {
			sb.WriteString("\n..\n\n")
		}
		if len(e.Metadata) > 0 {
			for _, name := range e.Metadata.Keys() {
				fmt.Fprintf(&sb, ".. %s: %s\n", name, e.Metadata[name])
			}
			sb.WriteString("\n")
		}
		sb.WriteString(textwrap.Body(e.Body, ""))
	}
	return sb.String()
}

// Save writes the entries to path, creating parent directories as needed.
func (b Blurbs) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing blurb file: %w", err)
	}
	return nil
}
