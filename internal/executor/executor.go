// Package executor defines the command execution contract for the console
// and the concrete executors that implement it.
package executor

import (
	"context"
	"fmt"
)

// Status reports how an executor disposed of a command line.
type Status int

const (
	// StatusHandled means the executor ran the command to completion.
	StatusHandled Status = iota

	// StatusNotHandled means the line is not this executor's to run.
	// The chain moves on to the next executor.
	StatusNotHandled

	// StatusExit means the command asked the console to terminate
	// its read-eval loop.
	StatusExit

	// StatusForward means the command produced follow-up command lines
	// that must be replayed through the full chain as if typed.
	StatusForward
)

// Result is the outcome of a single Execute call. Exit, not-handled, and
// forward are all ordinary result values rather than errors, so the
// console's state machine can switch on them exhaustively.
type Result struct {
	Status Status

	// Forward holds the follow-up command lines when Status is
	// StatusForward, in the order they must be replayed.
	Forward []string

	// ExitCode is the child process exit status for executors that
	// spawn one. Zero otherwise.
	ExitCode int
}

// Executor runs console command lines.
// "Not mine" is reported through Result.Status, never through the error
// return, since the chain must distinguish it from "mine, but it failed".
type Executor interface {
	// CanHandle reports whether the executor would accept the line.
	// It is a pure predicate with no side effects, safe to call
	// speculatively and repeatedly.
	CanHandle(line string) bool

	// Execute runs the line. It must be cancellable through ctx if it
	// blocks on external work.
	Execute(ctx context.Context, line string) (Result, error)
}

// NotFoundError reports that no executor in a chain claimed a line.
// It carries the original line for diagnostics and is the one error the
// console recovers from.
type NotFoundError struct {
	Line string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Line)
}
