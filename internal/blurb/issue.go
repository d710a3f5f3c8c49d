package blurb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// LowestPossibleGHIssueNumber is the first issue number GitHub assigned
// after CPython migrated from bugs.python.org.
const LowestPossibleGHIssueNumber = 32426

// ErrInvalidIssue is returned for issue references that cannot be parsed
// or that fall below LowestPossibleGHIssueNumber.
var ErrInvalidIssue = errors.New("invalid GitHub issue")

const issueURLPath = "github.com/python/cpython/issues/"

// ExtractIssueNumber parses an issue reference given on the command line.
// Accepted forms are a bare number, "gh-N", "GH-N", "#N", and the issue URL
// with or without the https scheme. Surrounding whitespace is ignored.
func ExtractIssueNumber(issue string) (int, error) {
	s := strings.TrimSpace(issue)

	var stripped string
	if strings.HasPrefix(s, "gh-") || strings.HasPrefix(s, "GH-") {
		stripped = s[3:]
	} else {
		stripped = strings.TrimPrefix(s, "#")
	}
	if n, ok := parseDecimal(stripped); ok {
		return n, nil
	}

	stripped = strings.TrimPrefix(s, "https://")
	stripped = strings.TrimPrefix(stripped, issueURLPath)
	if n, ok := parseDecimal(stripped); ok {
		return n, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrInvalidIssue, s)
}

// ValidateIssueNumber rejects numbers that predate GitHub issues.
func ValidateIssueNumber(n int) error {
	if n < LowestPossibleGHIssueNumber {
		return fmt.Errorf("%w: %d (must be >= %d)", ErrInvalidIssue, n, LowestPossibleGHIssueNumber)
	}
	return nil
}

func parseDecimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
