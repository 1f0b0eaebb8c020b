package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrInterrupted reports that the user aborted the prompt with a
// keyboard break.
var ErrInterrupted = errors.New("interrupted")

// LineReader supplies raw input lines to the console.
type LineReader interface {
	// ReadLine displays the prompt and returns the next input line
	// without its trailing newline. It returns io.EOF at end of input
	// and ErrInterrupted on a keyboard break.
	ReadLine(prompt string) (string, error)

	// AppendHistory records an entry for interactive history recall.
	AppendHistory(entry string)

	Close() error
}

// IsStdinTTY returns true if stdin is a terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// linerReader reads lines interactively with editing, history recall,
// and tab completion over the console's built-in command names.
type linerReader struct {
	state *liner.State
}

// NewLinerReader creates the interactive reader. seed pre-populates the
// recall history, oldest first; complete lists the words offered by tab
// completion.
func NewLinerReader(seed, complete []string) LineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(func(line string) []string {
		if line == "" {
			return nil
		}
		var matches []string
		for _, word := range complete {
			if strings.HasPrefix(word, line) {
				matches = append(matches, word)
			}
		}
		return matches
	})
	for _, entry := range seed {
		state.AppendHistory(entry)
	}
	return &linerReader{state: state}
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", ErrInterrupted
		}
		return "", err
	}
	return line, nil
}

func (r *linerReader) AppendHistory(entry string) {
	r.state.AppendHistory(entry)
}

func (r *linerReader) Close() error {
	return r.state.Close()
}

// scannerReader reads lines from a plain stream, writing the prompt to
// promptOut before each read. Used when stdin is not a terminal, and in
// tests.
type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader creates a reader over r with prompts written to
// promptOut.
func NewScannerReader(r io.Reader, promptOut io.Writer) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r), out: promptOut}
}

func (r *scannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scannerReader) AppendHistory(entry string) {}

func (r *scannerReader) Close() error {
	return nil
}
