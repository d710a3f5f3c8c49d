// Package news tests the add, merge, release, populate and export operations.
// Related: internal/news/add.go, internal/news/merge.go, internal/news/release.go, internal/news/populate.go
// Tags: news, add, merge, release, populate, export

package news

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/python/blurb/internal/blurb"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/repo"
	"github.com/python/blurb/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

// recordingStager records staged paths and deletes removed files.
type recordingStager struct {
	mu      sync.Mutex
	added   []string
	removed []string
	addErr  error
}

func (s *recordingStager) Add(_ context.Context, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, paths...)
	return nil
}

func (s *recordingStager) Remove(_ context.Context, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, paths...)
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

type editorFunc func(ctx context.Context, path string) error

func (f editorFunc) Edit(ctx context.Context, path string) error {
	return f(ctx, path)
}

// writingEditor writes each content in turn, one per call.
func writingEditor(t *testing.T, contents ...string) (Editor, *int) {
	t.Helper()

	calls := 0
	return editorFunc(func(_ context.Context, path string) error {
		require.Less(t, calls, len(contents), "editor called too often")
		content := contents[calls]
		calls++
		if content == "" {
			return nil
		}
		return os.WriteFile(path, []byte(content), 0o644)
	}), &calls
}

// scriptedPrompter answers prompts from a list and aborts when it runs out.
type scriptedPrompter struct {
	answers []string
	prompts []string
}

func (p *scriptedPrompter) Prompt(_ context.Context, message string) (string, error) {
	p.prompts = append(p.prompts, message)
	if len(p.answers) == 0 {
		return "", ErrAborted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

type fixture struct {
	checkout *testutil.Checkout
	manager  *Manager
	stager   *recordingStager
	out      *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	checkout := testutil.NewCheckout(t)
	stager := &recordingStager{}
	var out bytes.Buffer
	layout := repo.NewLayout(checkout.Root, "", "")
	opts = append([]Option{WithOutput(&out), WithClock(func() time.Time { return fixedNow })}, opts...)
	return &fixture{
		checkout: checkout,
		manager:  NewManager(layout, stager, opts...),
		stager:   stager,
		out:      &out,
	}
}

const validEntry = `.. gh-issue: 117000
.. section: Library

Fixed a crash in :func:` + "`spam`" + `.
`

func TestParseAddArgs(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		issue      string
		section    string
		rstOnStdin bool
		want       AddRequest
		wantErr    string
		wantIs     error
	}{
		"nothing given": {
			want: AddRequest{},
		},
		"plain number": {
			issue: "117000",
			want:  AddRequest{Issue: 117000},
		},
		"gh prefix and section prefix": {
			issue:   "gh-117000",
			section: "lib",
			want:    AddRequest{Issue: 117000, Section: "Library"},
		},
		"issue url": {
			issue: "https://github.com/python/cpython/issues/117000",
			want:  AddRequest{Issue: 117000},
		},
		"stdin with both": {
			issue:      "117000",
			section:    "C API",
			rstOnStdin: true,
			want:       AddRequest{Issue: 117000, Section: "C API", RstOnStdin: true},
		},
		"not a number": {
			issue:   "spam",
			wantErr: "invalid GitHub issue: spam",
			wantIs:  blurb.ErrInvalidIssue,
		},
		"predates github": {
			issue:   "1234",
			wantErr: "(must be >= 32426)",
			wantIs:  blurb.ErrInvalidIssue,
		},
		"unknown section": {
			section: "spam",
			wantErr: "Valid sections are:",
			wantIs:  blurb.ErrInvalidSection,
		},
		"stdin without section": {
			issue:      "117000",
			rstOnStdin: true,
			wantErr:    "--issue and --section required with --rst-on-stdin",
		},
		"stdin without issue": {
			section:    "Library",
			rstOnStdin: true,
			wantErr:    "--issue and --section required with --rst-on-stdin",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAddArgs(tt.issue, tt.section, tt.rstOnStdin)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				cliErr := clierrors.AsCLIError(err)
				require.NotNil(t, cliErr)
				assert.Equal(t, clierrors.Argument, cliErr.Category)
				if tt.wantIs != nil {
					assert.ErrorIs(t, err, tt.wantIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdd_RstOnStdin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req, err := ParseAddArgs("gh-117000", "lib", true)
	require.NoError(t, err)
	req.Stdin = strings.NewReader("\n  Fixed a crash in :func:`spam`.  \n\n")

	path, err := f.manager.Add(context.Background(), req, nil, nil)
	require.NoError(t, err)

	body := "Fixed a crash in :func:`spam`.\n"
	wantName := "2024-05-06-07-08-09.gh-issue-117000." + blurb.Nonce(body) + ".rst"
	assert.Equal(t, f.checkout.Path("Misc/NEWS.d/next/Library/"+wantName), path)
	assert.Equal(t, body, f.checkout.ReadFile("Misc/NEWS.d/next/Library/"+wantName))
	assert.Equal(t, []string{path}, f.stager.added)
	assert.Equal(t, "Ready for commit. 'Misc/NEWS.d/next/Library/"+wantName+"' created and git added.\n", f.out.String())

	loaded, err := blurb.LoadNext(path)
	require.NoError(t, err)
	assert.Equal(t, "117000", loaded[0].Metadata["gh-issue"])
	assert.Equal(t, "Library", loaded[0].Metadata["section"])
}

func TestAdd_RstOnStdinErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stdin   string
		wantErr string
	}{
		"empty":            {stdin: " \n\t\n", wantErr: "No content provided on stdin"},
		"naughty prefix":   {stdin: "- gh-117000: Fixed.", wantErr: "can't start with '- '"},
		"separator inside": {stdin: "One.\n..\nTwo.", wantErr: "'gh-issue:' or 'bpo:' must be specified"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			req := AddRequest{Issue: 117000, Section: "Library", RstOnStdin: true, Stdin: strings.NewReader(tt.stdin)}
			_, err := f.manager.Add(context.Background(), req, nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, f.stager.added)
		})
	}
}

func TestAdd_EditorRetriesUntilValid(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	// The first session leaves the template untouched.
	editor, calls := writingEditor(t, "", validEntry)
	prompter := &scriptedPrompter{answers: []string{""}}

	path, err := f.manager.Add(context.Background(), AddRequest{}, editor, prompter)
	require.NoError(t, err)

	assert.Equal(t, 2, *calls)
	assert.Equal(t, []string{retryPrompt}, prompter.prompts)
	assert.Contains(t, f.out.String(), "\nError: ")
	assert.Contains(t, f.out.String(), "Ready for commit.")
	assert.Equal(t, "Library", filepath.Base(filepath.Dir(path)))
	assert.Equal(t, []string{path}, f.stager.added)
}

func TestAdd_EditorSeesTemplate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var seen string
	editor := editorFunc(func(_ context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		seen = string(data)
		return os.WriteFile(path, []byte(validEntry), 0o644)
	})

	_, err := f.manager.Add(context.Background(), AddRequest{Issue: 117000, Section: "Library"}, editor, &scriptedPrompter{})
	require.NoError(t, err)
	assert.Contains(t, seen, "\n.. gh-issue: 117000\n")
	assert.Contains(t, seen, "\n.. section: Library\n")
	assert.Contains(t, seen, "\n#.. section: Tests\n")
}

func TestAdd_Abort(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		wantOut string
	}{
		"invalid entry": {
			content: ".. gh-issue: 117000\n\nNo section.\n",
			wantOut: "No 'section' specified.  You must provide one!",
		},
		"too many entries": {
			content: validEntry + "\n..\n\n" + validEntry,
			wantOut: "Too many entries! Don't specify '..' on a line by itself.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			editor, _ := writingEditor(t, tt.content)

			_, err := f.manager.Add(context.Background(), AddRequest{}, editor, &scriptedPrompter{})
			assert.ErrorIs(t, err, ErrAborted)
			assert.Contains(t, f.out.String(), tt.wantOut)
			assert.Empty(t, f.stager.added)

			files, err := f.manager.Layout().GlobBlurbs("next")
			require.NoError(t, err)
			assert.Empty(t, files)
		})
	}
}

func TestAdd_EditorFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	boom := errors.New("editor crashed")
	editor := editorFunc(func(context.Context, string) error { return boom })

	_, err := f.manager.Add(context.Background(), AddRequest{}, editor, &scriptedPrompter{})
	assert.ErrorIs(t, err, boom)
}

func TestAdd_GitFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.stager.addErr = errors.New("index.lock exists")
	req := AddRequest{Issue: 117000, Section: "Library", RstOnStdin: true, Stdin: strings.NewReader("Fixed.")}

	_, err := f.manager.Add(context.Background(), req, nil, nil)
	require.Error(t, err)
	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Runtime, cliErr.Category)
	assert.Contains(t, err.Error(), "index.lock exists")
}
