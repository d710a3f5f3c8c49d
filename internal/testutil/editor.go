package testutil

import (
	"fmt"
	"os"
	"testing"
)

const (
	// EnvFakeEditor signals that the test binary should run as an editor.
	EnvFakeEditor = "BLURB_TEST_FAKE_EDITOR"
	// EnvFakeEditorContent is the text the fake editor writes to its file.
	EnvFakeEditorContent = "BLURB_TEST_FAKE_EDITOR_CONTENT"
)

// RunFakeEditor implements the helper process pattern for editors. Call it
// from TestMain before m.Run: when the test binary was launched by
// FakeEditor it overwrites the file named by its last argument and exits
// without returning. Otherwise it returns immediately.
//
//	func TestMain(m *testing.M) {
//	    testutil.RunFakeEditor()
//	    os.Exit(m.Run())
//	}
func RunFakeEditor() {
	if os.Getenv(EnvFakeEditor) != "1" {
		return
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "fake editor: no file given")
		os.Exit(2)
	}
	path := os.Args[len(os.Args)-1]

	// An unset content variable leaves the file untouched, like quitting
	// the editor without saving.
	if content, ok := os.LookupEnv(EnvFakeEditorContent); ok {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "fake editor: %v\n", err)
			os.Exit(1)
		}
	}
	os.Exit(0)
}

// FakeEditor configures the environment so that the test binary acts as
// an editor writing content, and returns the editor command. The test must
// not run in parallel.
func FakeEditor(t *testing.T, content string) string {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}
	t.Setenv(EnvFakeEditor, "1")
	t.Setenv(EnvFakeEditorContent, content)
	return exe
}

// UnchangedEditor is like FakeEditor but the editor leaves the file as is.
func UnchangedEditor(t *testing.T) string {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}
	t.Setenv(EnvFakeEditor, "1")
	// Setenv first so the variable is restored after the test.
	t.Setenv(EnvFakeEditorContent, "")
	os.Unsetenv(EnvFakeEditorContent)
	return exe
}
