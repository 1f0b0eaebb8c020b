// Package console implements the interactive read-eval loop: line
// continuation buffering, history recording, dispatch through an
// executor chain, and replay of forwarded commands.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Gold-Bull/icli/internal/executor"
	"github.com/Gold-Bull/icli/internal/history"
)

const (
	// PromptPrimary is shown when the console waits for a new command.
	PromptPrimary = ">> "

	// PromptContinue is shown while collecting a multi-line command.
	PromptContinue = ".. "

	// continuationMarker at the end of a raw line joins it with the
	// next one.
	continuationMarker = " \\"

	// maxForwardDepth bounds nested forward replays. A well-behaved
	// executor forwards a handful of commands; hitting this means a
	// forward loop.
	maxForwardDepth = 100
)

// Options configures a Console.
type Options struct {
	Reader  LineReader
	Chain   executor.Executor
	History *history.Store
	Stdout  io.Writer
	Stderr  io.Writer
	Log     zerolog.Logger
}

// Console drives the read-eval loop over a LineReader and an executor
// chain. It is single-threaded: one logical command is collected or
// dispatched at a time.
type Console struct {
	reader LineReader
	chain  executor.Executor
	store  *history.Store
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger

	buffer     []string
	continuing bool
}

// New creates a Console from opts.
func New(opts Options) *Console {
	return &Console{
		reader: opts.Reader,
		chain:  opts.Chain,
		store:  opts.History,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		log:    opts.Log,
	}
}

// Run reads and dispatches commands until an exit command, end of
// input, an interrupt, or context cancellation. A non-empty exitMsg is
// written to stderr on the way out. Only a command-not-found dispatch
// failure is recovered; it is reported to stderr and the loop
// continues with a fresh buffer.
func (c *Console) Run(ctx context.Context, exitMsg string) error {
	defer func() {
		if exitMsg != "" {
			fmt.Fprintf(c.stderr, "%s\n", exitMsg)
		}
	}()

	for {
		// Cancellation is only observed between reads; the reader
		// itself handles the interactive keyboard break.
		select {
		case <-ctx.Done():
			c.resetBuffer()
			return nil
		default:
		}

		prompt := PromptPrimary
		if c.continuing {
			prompt = PromptContinue
		}

		line, err := c.reader.ReadLine(prompt)
		if err == io.EOF {
			fmt.Fprintln(c.stderr)
			return nil
		}
		if err == ErrInterrupted {
			c.resetBuffer()
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "" {
			c.recordHistory(line)
		}

		stop, err := c.acceptLine(ctx, line)
		if err != nil {
			var notFound *executor.NotFoundError
			if !errors.As(err, &notFound) {
				c.resetBuffer()
				return err
			}
			c.resetBuffer()
			fmt.Fprintln(c.stderr, notFound.Error())
			continue
		}
		if stop {
			return nil
		}
	}
}

// acceptLine feeds one raw input line to the continuation state
// machine, dispatching once a full logical command is assembled. The
// buffer is reset before dispatch so the next input always starts
// fresh, whatever the dispatch outcome.
func (c *Console) acceptLine(ctx context.Context, line string) (stop bool, err error) {
	more := false
	if strings.HasSuffix(line, continuationMarker) {
		line = strings.TrimSuffix(line, continuationMarker)
		more = true
	}
	c.buffer = append(c.buffer, line)
	c.continuing = more
	if more {
		return false, nil
	}

	source := strings.Join(c.buffer, "\n")
	c.resetBuffer()

	if strings.TrimSpace(source) == "" {
		return false, nil
	}
	return c.dispatch(ctx, source, 0)
}

// dispatch runs one logical command through the chain and replays any
// forwarded commands recursively, so a forwarded command can itself
// forward further commands.
func (c *Console) dispatch(ctx context.Context, source string, depth int) (stop bool, err error) {
	res, err := c.chain.Execute(ctx, source)
	if err != nil {
		return false, err
	}

	switch res.Status {
	case executor.StatusExit:
		c.log.Debug().Msg("exit requested")
		return true, nil

	case executor.StatusForward:
		if depth >= maxForwardDepth {
			return false, fmt.Errorf("forward chain exceeded %d levels", maxForwardDepth)
		}
		c.log.Debug().Strs("commands", res.Forward).Int("depth", depth).Msg("replaying forwarded commands")
		for _, command := range res.Forward {
			c.recordHistory(command)
			fmt.Fprintln(c.stdout, PromptPrimary+command)
			stop, err := c.dispatch(ctx, command, depth+1)
			if stop || err != nil {
				return stop, err
			}
		}

	default:
		c.log.Debug().Str("command", source).Int("exit_code", res.ExitCode).Msg("command handled")
	}
	return false, nil
}

// recordHistory appends an entry to both the persistent store and the
// reader's interactive recall.
func (c *Console) recordHistory(entry string) {
	if c.store != nil {
		c.store.Append(entry)
	}
	c.reader.AppendHistory(entry)
}

func (c *Console) resetBuffer() {
	c.buffer = c.buffer[:0]
	c.continuing = false
}
