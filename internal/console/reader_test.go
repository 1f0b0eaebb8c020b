package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestScannerReader_ReadsLines(t *testing.T) {
	var prompts bytes.Buffer
	r := NewScannerReader(strings.NewReader("one\ntwo\n"), &prompts)

	line, err := r.ReadLine(PromptPrimary)
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if line != "one" {
		t.Errorf("ReadLine() = %q, want %q", line, "one")
	}

	line, err = r.ReadLine(PromptContinue)
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if line != "two" {
		t.Errorf("ReadLine() = %q, want %q", line, "two")
	}

	if prompts.String() != PromptPrimary+PromptContinue {
		t.Errorf("prompts = %q, want %q", prompts.String(), PromptPrimary+PromptContinue)
	}
}

func TestScannerReader_EOF(t *testing.T) {
	r := NewScannerReader(strings.NewReader(""), io.Discard)

	_, err := r.ReadLine(PromptPrimary)
	if err != io.EOF {
		t.Errorf("ReadLine() error = %v, want io.EOF", err)
	}
}

func TestScannerReader_NoTrailingNewline(t *testing.T) {
	r := NewScannerReader(strings.NewReader("last"), io.Discard)

	line, err := r.ReadLine(PromptPrimary)
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if line != "last" {
		t.Errorf("ReadLine() = %q, want %q", line, "last")
	}

	if _, err := r.ReadLine(PromptPrimary); err != io.EOF {
		t.Errorf("ReadLine() error = %v, want io.EOF", err)
	}
}
