package news

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// LinePrompter reads answers line by line, e.g. from a terminal.
// It is not safe for concurrent use.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
	// pending is the read left blocked on input by a canceled Prompt.
	pending chan readResult
}

// NewLinePrompter prompts on out and reads answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

type readResult struct {
	line string
	err  error
}

// Prompt prints "[message> " and returns the answer without its line ending.
func (p *LinePrompter) Prompt(ctx context.Context, message string) (string, error) {
	fmt.Fprintf(p.out, "[%s> ", message)

	if p.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := p.reader.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ErrAborted
	case r := <-p.pending:
		p.pending = nil
		// A final line without a newline still counts as an answer.
		if r.err != nil && r.line == "" {
			return "", ErrAborted
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// RequireOK prompts until the user types "ok".
func RequireOK(ctx context.Context, p Prompter, message string) error {
	for {
		answer, err := p.Prompt(ctx, message)
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "ok" {
			return nil
		}
	}
}
