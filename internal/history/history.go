// Package history persists the console's command history to a file.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultLimit is the maximum number of retained entries.
const DefaultLimit = 2000

// Store is an append-only command history backed by a plain text file,
// one entry per line. It retains at most limit entries, dropping the
// oldest first. It is explicitly owned by the console: loaded once at
// startup, saved once at shutdown.
type Store struct {
	path    string
	limit   int
	entries []string
}

// NewStore creates a store backed by path. A non-positive limit falls
// back to DefaultLimit.
func NewStore(path string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{path: path, limit: limit}
}

// Load reads the history file, replacing any in-memory entries.
// A missing file is not an error. Files longer than the limit keep
// their newest entries.
func (s *Store) Load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	s.entries = s.entries[:0]
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		s.Append(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	return nil
}

// Append records an entry, evicting the oldest once the limit is
// reached.
func (s *Store) Append(entry string) {
	s.entries = append(s.entries, entry)
	if excess := len(s.entries) - s.limit; excess > 0 {
		s.entries = s.entries[excess:]
	}
}

// Save writes the retained entries back to the history file.
// Best-effort: a partial write from a killed process is tolerated by
// the next Load.
func (s *Store) Save() error {
	var b strings.Builder
	for _, entry := range s.entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Entries returns a copy of the retained entries, oldest first.
func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
