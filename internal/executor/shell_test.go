package executor

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests require /bin/sh")
	}
}

func TestShell_CanHandleEverything(t *testing.T) {
	s := NewShell(&bytes.Buffer{}, &bytes.Buffer{}, nopLogger())

	for _, line := range []string{"", "ls", "exit()", "anything at all"} {
		if !s.CanHandle(line) {
			t.Errorf("CanHandle(%q) = false, want true", line)
		}
	}
}

func TestShell_ExecuteRelaysStdout(t *testing.T) {
	skipWithoutShell(t)

	var out, errOut bytes.Buffer
	s := NewShell(&out, &errOut, nopLogger())

	res, err := s.Execute(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Status != StatusHandled {
		t.Errorf("Execute() status = %v, want StatusHandled", res.Status)
	}
	if res.ExitCode != 0 {
		t.Errorf("Execute() exit code = %d, want 0", res.ExitCode)
	}
	if out.String() != "hello\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "hello\n")
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr = %q, want empty", errOut.String())
	}
}

func TestShell_ExecuteRelaysStderr(t *testing.T) {
	skipWithoutShell(t)

	var out, errOut bytes.Buffer
	s := NewShell(&out, &errOut, nopLogger())

	_, err := s.Execute(context.Background(), "echo oops 1>&2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if errOut.String() != "oops\n" {
		t.Errorf("stderr = %q, want %q", errOut.String(), "oops\n")
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
}

func TestShell_ExecuteExitCode(t *testing.T) {
	skipWithoutShell(t)

	s := NewShell(&bytes.Buffer{}, &bytes.Buffer{}, nopLogger())

	tests := []struct {
		name string
		line string
		want int
	}{
		{"success", "true", 0},
		{"failure", "false", 1},
		{"explicit code", "exit 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Execute(context.Background(), tt.line)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Status != StatusHandled {
				t.Errorf("Execute() status = %v, want StatusHandled", res.Status)
			}
			if res.ExitCode != tt.want {
				t.Errorf("Execute() exit code = %d, want %d", res.ExitCode, tt.want)
			}
		})
	}
}

// A child interleaving heavy stdout and stderr traffic must not
// deadlock on a full pipe: both streams are drained concurrently and
// Execute returns only when both hit EOF.
func TestShell_ExecuteInterleavedStreams(t *testing.T) {
	skipWithoutShell(t)

	const lines = 2000

	var out, errOut bytes.Buffer
	s := NewShell(&out, &errOut, nopLogger())

	script := fmt.Sprintf("i=0; while [ $i -lt %d ]; do echo out$i; echo err$i 1>&2; i=$((i+1)); done", lines)
	res, err := s.Execute(context.Background(), script)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("Execute() exit code = %d, want 0", res.ExitCode)
	}

	gotOut := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	gotErr := strings.Split(strings.TrimRight(errOut.String(), "\n"), "\n")
	if len(gotOut) != lines {
		t.Errorf("stdout lines = %d, want %d", len(gotOut), lines)
	}
	if len(gotErr) != lines {
		t.Errorf("stderr lines = %d, want %d", len(gotErr), lines)
	}
	if gotOut[0] != "out0" || gotOut[len(gotOut)-1] != fmt.Sprintf("out%d", lines-1) {
		t.Errorf("stdout boundaries = %q..%q", gotOut[0], gotOut[len(gotOut)-1])
	}
	if gotErr[0] != "err0" || gotErr[len(gotErr)-1] != fmt.Sprintf("err%d", lines-1) {
		t.Errorf("stderr boundaries = %q..%q", gotErr[0], gotErr[len(gotErr)-1])
	}
}

// A single output line larger than any fixed line buffer must still be
// drained completely; a relay that stops reading mid-line leaves the
// child blocked on a full pipe and Execute never returns.
func TestShell_ExecuteLongSingleLine(t *testing.T) {
	skipWithoutShell(t)

	const size = 3 * 1024 * 1024

	var out bytes.Buffer
	s := NewShell(&out, &bytes.Buffer{}, nopLogger())

	done := make(chan struct{})
	var res Result
	var execErr error
	go func() {
		defer close(done)
		res, execErr = s.Execute(context.Background(), fmt.Sprintf("head -c %d /dev/zero | tr '\\0' 'a'", size))
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("Execute() did not return for a single oversized line")
	}

	if execErr != nil {
		t.Fatalf("Execute() error = %v", execErr)
	}
	if res.ExitCode != 0 {
		t.Fatalf("Execute() exit code = %d, want 0", res.ExitCode)
	}
	if out.Len() != size {
		t.Errorf("stdout length = %d, want %d", out.Len(), size)
	}
	data := out.Bytes()
	if len(data) > 0 && (data[0] != 'a' || data[len(data)-1] != 'a') {
		t.Errorf("stdout boundaries = %q..%q, want 'a'..'a'", data[0], data[len(data)-1])
	}
}

// Relayed output is verbatim: the child's own line endings are kept and
// none are added.
func TestShell_ExecuteVerbatimRelay(t *testing.T) {
	skipWithoutShell(t)

	tests := []struct {
		name string
		line string
		want string
	}{
		{"no trailing newline", `printf 'one\ntwo'`, "one\ntwo"},
		{"trailing newline kept", `printf 'done\n'`, "done\n"},
		{"crlf preserved", `printf 'a\r\nb'`, "a\r\nb"},
		{"blank lines kept", `printf '\n\nx\n'`, "\n\nx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := NewShell(&out, &bytes.Buffer{}, nopLogger())

			res, err := s.Execute(context.Background(), tt.line)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.ExitCode != 0 {
				t.Fatalf("Execute() exit code = %d, want 0", res.ExitCode)
			}
			if out.String() != tt.want {
				t.Errorf("stdout = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestShell_ExecuteContextCancel(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	s := NewShell(&bytes.Buffer{}, &bytes.Buffer{}, nopLogger())
	res, err := s.Execute(ctx, "sleep 60")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.ExitCode == 0 {
		t.Error("Execute() exit code = 0, want non-zero for a killed child")
	}
}
