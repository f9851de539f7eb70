// Package taxonomy provides the expense category labels offered to
// clients. Categories are advisory only; the ledger accepts any label.
package taxonomy

import (
	"bufio"
	"os"
	"strings"
)

// DefaultCategories is the built-in expense category list.
var DefaultCategories = []string{
	"Food", "Transport", "Shopping", "Entertainment", "Utilities", "Other",
}

type Store struct {
	categories []string
}

func New(categories []string) *Store {
	out := dedupe(categories)
	if len(out) == 0 {
		out = append([]string(nil), DefaultCategories...)
	}
	return &Store{categories: out}
}

// NewFromFile loads categories from a seed file, one label per line,
// with '#' comments. Falls back to the defaults when the file is
// missing or empty.
func NewFromFile(path string) *Store {
	if path == "" {
		return New(nil)
	}
	return New(readLines(path))
}

// List returns a copy of the category labels in seed order.
func (s *Store) List() []string {
	return append([]string(nil), s.categories...)
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
