// Package repo locates the CPython checkout and the news files inside it.
//
// The checkout is recognised by its contents rather than by asking git, so
// blurb also works in exported source trees that have no .git directory.
package repo

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/python/blurb/internal/blurb"
	"github.com/python/blurb/internal/versions"
)

// ErrNotCheckout is returned when no CPython checkout encloses the start directory.
var ErrNotCheckout = errors.New("not inside a CPython checkout")

const (
	// DefaultNewsDir is the news directory relative to the checkout root.
	DefaultNewsDir = "Misc/NEWS.d"
	// DefaultNewsFile is the merge output relative to the checkout root.
	DefaultNewsFile = "Misc/NEWS"

	licenseFirstLine = "A. HISTORY OF THE SOFTWARE"
	readmeFile       = "README.rst"
)

var readmeRe = regexp.MustCompile(`^This is \w+ version \d+\.\d+`)

// FindRoot walks up from start until it finds a CPython checkout and returns
// its absolute path.
func FindRoot(start string) (string, error) {
	path, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		if IsCheckout(path) {
			return path, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", ErrNotCheckout
		}
		path = parent
	}
}

// IsCheckout reports whether dir is the root of a CPython checkout.
func IsCheckout(dir string) bool {
	if !firstLineMatches(filepath.Join(dir, "README"), readmeRe.MatchString) &&
		!firstLineMatches(filepath.Join(dir, "README.rst"), readmeRe.MatchString) {
		return false
	}
	if !firstLineMatches(filepath.Join(dir, "LICENSE"), func(s string) bool { return s == licenseFirstLine }) {
		return false
	}
	return exists(filepath.Join(dir, "Include", "Python.h")) && exists(filepath.Join(dir, "Python", "ceval.c"))
}

func firstLineMatches(path string, match func(string) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return match("")
	}
	return match(strings.TrimRight(line, "\r\n"))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Layout resolves the news paths of a checkout.
type Layout struct {
	Root     string
	NewsDir  string
	NewsFile string
}

// NewLayout builds a Layout. Relative newsDir and newsFile are taken
// relative to root; empty values fall back to the CPython defaults.
func NewLayout(root, newsDir, newsFile string) Layout {
	if newsDir == "" {
		newsDir = DefaultNewsDir
	}
	if newsFile == "" {
		newsFile = DefaultNewsFile
	}
	return Layout{
		Root:     root,
		NewsDir:  resolve(root, newsDir),
		NewsFile: resolve(root, newsFile),
	}
}

func resolve(root, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// NextDir is the directory holding unreleased entries.
func (l Layout) NextDir() string {
	return filepath.Join(l.NewsDir, versions.Next)
}

// SectionDir is the next directory of a section.
func (l Layout) SectionDir(section string) string {
	return filepath.Join(l.NextDir(), blurb.SanitizeSection(section))
}

// VersionFile is the file holding the entries of a released version.
func (l Layout) VersionFile(version string) string {
	return filepath.Join(l.NewsDir, version+".rst")
}

// GlobBlurbs lists the files holding the entries of version. For "next"
// that is every entry under the section directories, in either directory
// spelling, skipping README.rst. Files are sorted newest first.
func (l Layout) GlobBlurbs(version string) ([]string, error) {
	var files []string

	if version != versions.Next {
		matches, err := filepath.Glob(l.VersionFile(version))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", version, err)
		}
		files = matches
	} else {
		var dirs []string
		for _, section := range blurb.Sections {
			for _, dir := range []string{blurb.SanitizeSection(section), blurb.SanitizeSectionLegacy(section)} {
				if !slices.Contains(dirs, dir) {
					dirs = append(dirs, dir)
				}
			}
		}
		for _, dir := range dirs {
			matches, err := filepath.Glob(filepath.Join(l.NextDir(), dir, "*.rst"))
			if err != nil {
				return nil, fmt.Errorf("globbing %s: %w", dir, err)
			}
			for _, m := range matches {
				if filepath.Base(m) != readmeFile {
					files = append(files, m)
				}
			}
		}
	}

	slices.SortStableFunc(files, func(a, b string) int {
		return strings.Compare(blurb.NextFilenameUnsanitizeSections(b), blurb.NextFilenameUnsanitizeSections(a))
	})
	return files, nil
}

// GlobVersions lists the released versions found in the news directory,
// plus "next" when it exists, newest first.
func (l Layout) GlobVersions() ([]string, error) {
	var found []string
	for _, pattern := range []string{"2.*.rst", "3.*.rst"} {
		matches, err := filepath.Glob(filepath.Join(l.NewsDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("globbing versions: %w", err)
		}
		for _, m := range matches {
			name, _, _ := strings.Cut(filepath.Base(m), ".rst")
			found = append(found, name)
		}
	}
	if exists(l.NextDir()) {
		found = append(found, versions.Next)
	}
	versions.Sort(found)
	return found, nil
}
