package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ---- History (own file) ----

type History struct {
	path  string
	lines []string
}

func NewHistory(path string) *History {
	return &History{path: path}
}

func (h *History) Lines() []string { return h.lines }

// Load reads the history file, keeping the last max lines (all when max is
// not positive). Lines are compacted the same way Append writes them.
func (h *History) Load(max int) error {
	if h.path == "" {
		return nil
	}
	f, err := os.Open(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := compactOneLine(sc.Text()); line != "" {
			h.lines = append(h.lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if max > 0 && len(h.lines) > max {
		h.lines = slices.Clone(h.lines[len(h.lines)-max:])
	}
	return nil
}

// Append records one command line. Lines are kept in memory even when no
// history file is configured.
func (h *History) Append(line string) error {
	line = compactOneLine(line)
	if line == "" {
		return nil
	}
	h.lines = append(h.lines, line)
	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = fmt.Fprintln(f, line)
	return err
}

func (h *History) Print(w io.Writer, last int) {
	if last <= 0 || last > len(h.lines) {
		last = len(h.lines)
	}
	start := len(h.lines) - last
	for i := start; i < len(h.lines); i++ {
		fmt.Fprintf(w, "%5d  %s\n", i+1, h.lines[i])
	}
}

// compactOneLine folds whitespace runs into single spaces.
func compactOneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".reflected_history"
	}
	return filepath.Join(home, ".reflected_history")
}
