package blurb

import (
	"errors"
	"fmt"
	"strings"
)

// Template is the text presented in the editor for a new entry.
// Its commented "section:" lines are the canonical list of sections.
const Template = `#
# Please enter the relevant GitHub issue number here:
#
.. gh-issue:

#
# Uncomment one of these "section:" lines to specify which section
# this entry should go in in Misc/NEWS.d.
#
#.. section: Security
#.. section: Core and Builtins
#.. section: Library
#.. section: Documentation
#.. section: Tests
#.. section: Build
#.. section: Windows
#.. section: macOS
#.. section: IDLE
#.. section: Tools/Demos
#.. section: C API

# Write your Misc/NEWS.d entry below.  It should be a simple ReST paragraph.
# Don't start with "- Issue #<n>: " or "- gh-issue-<n>: " or that sort of stuff.
###########################################################################


`

const (
	issueLine     = "\n.. gh-issue:\n"
	sectionPrefix = "#.. section: "
	bodyMarker    = "#################\n\n"
)

// ErrTemplateIssueLine is returned when a template has no gh-issue line to fill.
var ErrTemplateIssueLine = errors.New("can't find gh-issue line in the template")

// TemplateText renders the entry template. A zero issue leaves the gh-issue
// line for the user to fill in; an empty section leaves every section
// commented out; body, when set, is placed below the instructions.
func TemplateText(issue int, section, body string) (string, error) {
	return renderTemplate(Template, issue, section, body)
}

func renderTemplate(tmpl string, issue int, section, body string) (string, error) {
	if !strings.Contains(tmpl, issueLine) {
		return "", ErrTemplateIssueLine
	}

	filled := "\n.. gh-issue: \n"
	if issue > 0 {
		filled = fmt.Sprintf("\n.. gh-issue: %d\n", issue)
	}
	text := strings.Replace(tmpl, issueLine, filled, 1)

	if section != "" {
		line := sectionPrefix + section + "\n"
		text = strings.Replace(text, line, line[1:], 1)
	}

	if body != "" {
		text = strings.Replace(text, bodyMarker, bodyMarker+body+"\n", 1)
	}

	return text, nil
}

// Sections lists the valid section names in template order.
var Sections = parseSections(Template)

func parseSections(tmpl string) []string {
	var sections []string
	for _, line := range strings.Split(tmpl, "\n") {
		line = strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(line, sectionPrefix); ok {
			sections = append(sections, strings.TrimSpace(name))
		}
	}
	return sections
}
