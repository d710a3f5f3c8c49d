// Package versions orders and formats CPython release versions such as
// "3.12.0a1", "3.12.0rc2" and the pseudo-version "next".
package versions

import (
	"slices"
	"strings"
)

// Next names the unreleased changes.
const Next = "next"

var stages = []string{"a", "b", "rc"}

// Key returns a string that sorts versions in release order:
// 3.5.0a1 < 3.5.0b1 < 3.5.0rc1 < 3.5.0, and 3.8 < 3.8.1.
func Key(version string) string {
	fields := strings.Split(version, ".")
	if len(fields) == 1 {
		return version
	}

	last := fields[len(fields)-1]
	fields = fields[:len(fields)-1]

	// Final releases sort after every pre-release of the same version.
	stage, stageVersion := "zz", "0"
	for _, s := range stages {
		if before, after, ok := strings.Cut(last, s); ok {
			last, stage, stageVersion = before, s, after
			break
		}
	}

	fields = append(fields, last)
	for len(fields) < 3 {
		fields = append(fields, "0")
	}
	fields = append(fields, stage, stageVersion)

	for i, f := range fields {
		if n := len(f); n < 6 {
			fields[i] = strings.Repeat("0", 6-n) + f
		}
	}
	return strings.Join(fields, ".")
}

// Less reports whether a was released before b.
func Less(a, b string) bool {
	return Key(a) < Key(b)
}

// Sort orders versions newest first, with "next" ahead of every release.
func Sort(versions []string) {
	slices.SortStableFunc(versions, func(a, b string) int {
		return strings.Compare(Key(b), Key(a))
	})
}

// Printable spells out a version for headings, e.g. "3.12.0 alpha 1".
func Printable(version string) string {
	switch {
	case version == Next:
		return version
	case strings.Contains(version, "a"):
		return strings.ReplaceAll(version, "a", " alpha ")
	case strings.Contains(version, "b"):
		return strings.ReplaceAll(version, "b", " beta ")
	case strings.Contains(version, "rc"):
		return strings.ReplaceAll(version, "rc", " release candidate ")
	default:
		return version + " final"
	}
}
