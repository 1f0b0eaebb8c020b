package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// Shell executes any command line through the platform shell, relaying
// the child's stdout and stderr to the console's streams line by line.
// CanHandle is unconditionally true, so a chain must place it last.
type Shell struct {
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
}

// NewShell creates the shell pass-through executor writing relayed
// output to stdout and stderr.
func NewShell(stdout, stderr io.Writer, log zerolog.Logger) *Shell {
	return &Shell{stdout: stdout, stderr: stderr, log: log}
}

// CanHandle accepts every line. The shell is the chain's catch-all.
func (s *Shell) CanHandle(line string) bool {
	return true
}

// Execute runs the line as a shell command. Both output pipes are
// drained concurrently; a child that fills one pipe while the console
// reads only the other would deadlock if the drains ran sequentially.
// Execute returns once both pipes reach EOF and the child has been
// reaped, with the child's exit code in the result.
func (s *Shell) Execute(ctx context.Context, line string) (Result, error) {
	cmd := shellCommand(ctx, line)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start %q: %w", line, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		relay(stdout, s.stdout)
	}()
	go func() {
		defer wg.Done()
		relay(stderr, s.stderr)
	}()
	wg.Wait()

	res := Result{Status: StatusHandled}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("wait %q: %w", line, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	s.log.Debug().Str("command", line).Int("exit_code", res.ExitCode).Msg("shell command finished")
	return res, nil
}

// relay copies r to w verbatim, one line at a time, until EOF.
// Lines of any length pass through, and the child's own line endings
// are preserved, including a final line with no terminator.
func relay(r io.Reader, w io.Writer) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			io.WriteString(w, line)
		}
		if err != nil {
			return
		}
	}
}

func shellCommand(ctx context.Context, line string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", line)
	}
	return exec.CommandContext(ctx, "/bin/sh", "-c", line)
}
