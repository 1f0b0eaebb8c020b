package executor

import (
	"context"
	"fmt"
	"io"
	"sort"
)

// ansiClear erases the screen and homes the cursor.
const ansiClear = "\x1b[2J\x1b[H"

// HistorySource provides the entries shown by the history() built-in.
type HistorySource interface {
	Entries() []string
}

// Builtin handles a fixed set of literal commands that never touch child
// process streams and complete synchronously.
type Builtin struct {
	stdout  io.Writer
	history HistorySource
	actions map[string]func() (Result, error)
}

// NewBuiltin creates the built-in executor. history may be nil, in which
// case history() prints nothing.
func NewBuiltin(stdout io.Writer, history HistorySource) *Builtin {
	b := &Builtin{stdout: stdout, history: history}
	b.actions = map[string]func() (Result, error){
		"clear()":   b.clear,
		"exit()":    b.exit,
		"history()": b.printHistory,
	}
	return b
}

// CanHandle reports exact membership in the built-in command set.
func (b *Builtin) CanHandle(line string) bool {
	_, ok := b.actions[line]
	return ok
}

// Execute runs the built-in action for the line, or signals not-handled
// for anything outside the fixed set.
func (b *Builtin) Execute(ctx context.Context, line string) (Result, error) {
	action, ok := b.actions[line]
	if !ok {
		return Result{Status: StatusNotHandled}, nil
	}
	return action()
}

// Commands returns the literal built-in command names, sorted.
// Used for tab completion.
func (b *Builtin) Commands() []string {
	names := make([]string, 0, len(b.actions))
	for name := range b.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Builtin) clear() (Result, error) {
	fmt.Fprint(b.stdout, ansiClear)
	return Result{Status: StatusHandled}, nil
}

// exit signals loop termination as a result value, not by writing
// anything or touching the process.
func (b *Builtin) exit() (Result, error) {
	return Result{Status: StatusExit}, nil
}

func (b *Builtin) printHistory() (Result, error) {
	if b.history == nil {
		return Result{Status: StatusHandled}, nil
	}
	for i, entry := range b.history.Entries() {
		fmt.Fprintf(b.stdout, "  %d  %s\n", i+1, entry)
	}
	return Result{Status: StatusHandled}, nil
}
