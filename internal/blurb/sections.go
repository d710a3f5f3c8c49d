package blurb

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrEmptySection is returned for a blank --section value.
	ErrEmptySection = errors.New("empty section name")
	// ErrInvalidSection is returned when a section name matches nothing.
	ErrInvalidSection = errors.New("invalid section name")
	// ErrAmbiguousSection is returned when a section name matches several sections.
	ErrAmbiguousSection = errors.New("ambiguous section name")
)

var sanitizedSections = map[string]string{
	"C API":             "C_API",
	"Core and Builtins": "Core_and_Builtins",
	"Tools/Demos":       "Tools-Demos",
}

var unsanitizedSections = map[string]string{
	"C_API":             "C API",
	"Core_and_Builtins": "Core and Builtins",
	"Tools-Demos":       "Tools/Demos",
}

// sectionAliases map shorthand spellings to sections. An alias matches when
// the user's input, with separators removed, starts with it.
var sectionAliases = []struct {
	alias   string
	section string
}{
	{"api", "C API"},
	{"capi", "C API"},
	{"builtin", "Core and Builtins"},
	{"builtins", "Core and Builtins"},
	{"core", "Core and Builtins"},
	{"demo", "Tools/Demos"},
	{"demos", "Tools/Demos"},
	{"tool", "Tools/Demos"},
	{"tools", "Tools/Demos"},
}

var (
	separatorRe = regexp.MustCompile(`[_\- /]`)
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]`)
)

// IsSection reports whether name is one of the canonical sections.
func IsSection(name string) bool {
	return slices.Contains(Sections, name)
}

// SanitizeSection returns the directory name used for a section.
func SanitizeSection(section string) string {
	if s, ok := sanitizedSections[section]; ok {
		return s
	}
	return section
}

// SanitizeSectionLegacy returns the directory name older releases used,
// which keeps spaces.
func SanitizeSectionLegacy(section string) string {
	return strings.ReplaceAll(section, "/", "-")
}

// UnsanitizeSection maps a section directory name back to its section.
func UnsanitizeSection(dir string) string {
	if s, ok := unsanitizedSections[dir]; ok {
		return s
	}
	return dir
}

// NextFilenameUnsanitizeSections rewrites sanitized section directories in
// path to their canonical names so that paths using either directory
// spelling sort together.
func NextFilenameUnsanitizeSections(path string) string {
	for dir, section := range unsanitizedSections {
		for _, sep := range separators() {
			path = strings.ReplaceAll(path, sep+dir+sep, sep+section+sep)
		}
	}
	return path
}

func separators() []string {
	if filepath.Separator == '/' {
		return []string{"/"}
	}
	return []string{"/", string(filepath.Separator)}
}

// ExtractSectionName resolves user input to a canonical section name.
//
// Matching is case-insensitive and tried in stages: substring match, then a
// match ignoring separators between words, then known aliases, then a prefix
// match with all separators removed. The first stage producing a match wins.
func ExtractSectionName(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", ErrEmptySection
	}

	lower := strings.ToLower(raw)
	var matches []string
	for _, name := range Sections {
		if strings.Contains(strings.ToLower(name), lower) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		matches = smartMatches(raw)
	}

	switch len(matches) {
	case 0:
		list := make([]string, len(Sections))
		for i, s := range Sections {
			list[i] = "  - " + s
		}
		return "", fmt.Errorf("%w: %q\n\nValid sections are:\n%s", ErrInvalidSection, raw, strings.Join(list, "\n"))
	case 1:
		return matches[0], nil
	default:
		slices.Sort(matches)
		quoted := make([]string, len(matches))
		for i, m := range matches {
			quoted[i] = strconv.Quote(m)
		}
		return "", fmt.Errorf("%w: %q\nMatches: %s", ErrAmbiguousSection, raw, strings.Join(quoted, ", "))
	}
}

func smartMatches(raw string) []string {
	words := strings.Fields(separatorRe.ReplaceAllString(raw, " "))
	if len(words) == 0 {
		return nil
	}

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	pattern, err := regexp.Compile(`(?i)` + strings.Join(quoted, `[\s/]*`))
	if err != nil {
		return nil
	}

	var matches []string
	for _, name := range Sections {
		if pattern.MatchString(name) {
			matches = append(matches, name)
		}
	}

	normalized := strings.ToLower(strings.Join(words, ""))
	for _, a := range sectionAliases {
		if strings.HasPrefix(normalized, a.alias) && !slices.Contains(matches, a.section) {
			matches = append(matches, a.section)
		}
	}

	if len(matches) == 0 {
		for _, name := range Sections {
			if strings.HasPrefix(nonAlnumRe.ReplaceAllString(strings.ToLower(name), ""), normalized) {
				matches = append(matches, name)
			}
		}
	}

	return matches
}
