// Package testutil provides test utilities and helpers for blurb tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// Checkout is a minimal CPython source tree in a temporary directory.
// It contains just enough for repo.FindRoot to recognise it.
type Checkout struct {
	t    *testing.T
	Root string
}

// NewCheckout creates a fake CPython checkout with an empty Misc/NEWS.d/next.
func NewCheckout(t *testing.T) *Checkout {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}

	c := &Checkout{t: t, Root: root}
	c.WriteFile("README.rst", "This is Python version 3.14.0 alpha 1\n=====================================\n")
	c.WriteFile("LICENSE", "A. HISTORY OF THE SOFTWARE\n==========================\n")
	c.WriteFile("Include/Python.h", "")
	c.WriteFile("Python/ceval.c", "")
	c.MkdirAll("Misc/NEWS.d/next")
	return c
}

// Path joins slash-separated elements onto the checkout root.
func (c *Checkout) Path(rel string) string {
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// NewsDir is the checkout's Misc/NEWS.d directory.
func (c *Checkout) NewsDir() string {
	return c.Path("Misc/NEWS.d")
}

// MkdirAll creates a directory inside the checkout.
func (c *Checkout) MkdirAll(rel string) string {
	c.t.Helper()

	path := c.Path(rel)
	if err := os.MkdirAll(path, 0o755); err != nil {
		c.t.Fatalf("creating %s: %v", rel, err)
	}
	return path
}

// WriteFile writes a file inside the checkout, creating parent directories.
func (c *Checkout) WriteFile(rel, contents string) string {
	c.t.Helper()

	path := c.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		c.t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		c.t.Fatalf("writing %s: %v", rel, err)
	}
	return path
}

// ReadFile returns the contents of a file inside the checkout.
func (c *Checkout) ReadFile(rel string) string {
	c.t.Helper()

	data, err := os.ReadFile(c.Path(rel))
	if err != nil {
		c.t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// AddNext writes a next entry into a section directory (as named on disk)
// and returns its path.
func (c *Checkout) AddNext(sectionDir, name, body string) string {
	c.t.Helper()
	return c.WriteFile("Misc/NEWS.d/next/"+sectionDir+"/"+name, body)
}

// AddVersion writes a released version file and returns its path.
func (c *Checkout) AddVersion(version, contents string) string {
	c.t.Helper()
	return c.WriteFile("Misc/NEWS.d/"+version+".rst", contents)
}

// RequireGit skips the test when the git binary is unavailable.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// InitGit turns the checkout into a git repository.
func (c *Checkout) InitGit() {
	c.t.Helper()
	RequireGit(c.t)

	c.Git("init", "--quiet")
	c.Git("config", "user.email", "test@test.com")
	c.Git("config", "user.name", "Test")
}

// Git runs a git command in the checkout and returns its output.
func (c *Checkout) Git(args ...string) string {
	c.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = c.Root
	output, err := cmd.CombinedOutput()
	if err != nil {
		c.t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(output)
}
