package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/xx-template/xx-cli/internal/ui"
)

// ErrCancelled is returned when the user aborts a prompt (Ctrl-C, Esc, end
// of input, or cancellation of the prompter's context).
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks interactive questions. Both methods block until answered.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(title string, items []string) (int, error)
	// Input re-prompts until validate accepts the trimmed answer.
	Input(title string, validate func(string) error) (string, error)
}

// New returns a TUI prompter when in and out are both terminals, and a Line
// prompter otherwise. Pending prompts end with ErrCancelled once ctx is done.
func New(ctx context.Context, in io.Reader, out io.Writer) Prompter {
	if ui.IsTerminal(in) && ui.IsTerminal(out) {
		return NewTUI(ctx, in, out)
	}
	return NewLine(ctx, in, out)
}

// Line prompts with numbered menus over plain reader/writer streams.
type Line struct {
	ctx    context.Context
	reader *bufio.Reader
	w      io.Writer

	start sync.Once
	lines chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewLine returns a Line prompter reading answers from r and writing
// questions to w.
func NewLine(ctx context.Context, r io.Reader, w io.Writer) *Line {
	return &Line{
		ctx:    ctx,
		reader: bufio.NewReader(r),
		w:      w,
		lines:  make(chan lineResult),
	}
}

// Select presents a numbered list and returns the selected index. Invalid
// answers are reported and the question is asked again.
func (l *Line) Select(title string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, errors.New("nothing to select from")
	}

	fmt.Fprintf(l.w, "\n%s\n", title)
	for i, item := range items {
		fmt.Fprintf(l.w, "  %d) %s\n", i+1, item)
	}

	for {
		fmt.Fprintf(l.w, "Enter number [1-%d]: ", len(items))
		line, err := l.readLine()
		if err != nil {
			return 0, err
		}

		num, convErr := strconv.Atoi(line)
		if convErr == nil && num >= 1 && num <= len(items) {
			return num - 1, nil
		}
		fmt.Fprintf(l.w, "invalid selection %q: choose 1-%d\n", line, len(items))
	}
}

// Input asks for a line of text until validate accepts it.
func (l *Line) Input(title string, validate func(string) error) (string, error) {
	for {
		fmt.Fprintf(l.w, "? %s ", title)
		line, err := l.readLine()
		if err != nil {
			return "", err
		}

		if validate == nil {
			return line, nil
		}
		if verr := validate(line); verr != nil {
			fmt.Fprintf(l.w, ">> %v\n", verr)
			continue
		}
		return line, nil
	}
}

// readLine returns the next trimmed line. A final unterminated line is still
// returned; end of input with nothing left, or a done context, maps to
// ErrCancelled.
func (l *Line) readLine() (string, error) {
	// Reads block without regard to the context, so they run in their own
	// goroutine and the wait below can be interrupted.
	l.start.Do(func() { go l.readLoop() })

	if l.ctx.Err() != nil {
		return "", l.cancelled()
	}

	select {
	case <-l.ctx.Done():
		return "", l.cancelled()
	case res, ok := <-l.lines:
		if !ok {
			return "", l.cancelled()
		}
		if res.err == nil || (errors.Is(res.err, io.EOF) && res.line != "") {
			return strings.TrimSpace(res.line), nil
		}
		if errors.Is(res.err, io.EOF) {
			return "", l.cancelled()
		}
		return "", fmt.Errorf("reading input: %w", res.err)
	}
}

func (l *Line) readLoop() {
	defer close(l.lines)
	for {
		line, err := l.reader.ReadString('\n')
		select {
		case l.lines <- lineResult{line: line, err: err}:
		case <-l.ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (l *Line) cancelled() error {
	fmt.Fprintln(l.w)
	return ErrCancelled
}
