package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFallsBackToDefaults(t *testing.T) {
	for _, in := range [][]string{nil, {}, {"", "  "}} {
		s := New(in)
		got := s.List()
		if len(got) != len(DefaultCategories) {
			t.Fatalf("expected defaults for %v, got %v", in, got)
		}
	}
}

func TestNewDedupes(t *testing.T) {
	s := New([]string{"Food", " Food ", "Rent", "Food", "Rent"})
	got := s.List()
	if len(got) != 2 || got[0] != "Food" || got[1] != "Rent" {
		t.Fatalf("expected [Food Rent], got %v", got)
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.txt")
	content := "# seed categories\nGroceries\n\nRent\n  Travel  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	got := NewFromFile(path).List()
	want := []string{"Groceries", "Rent", "Travel"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNewFromFileMissingFallsBack(t *testing.T) {
	got := NewFromFile("/nonexistent/categories.txt").List()
	if len(got) != len(DefaultCategories) {
		t.Fatalf("expected defaults, got %v", got)
	}
	if got := NewFromFile("").List(); len(got) != len(DefaultCategories) {
		t.Fatalf("expected defaults for empty path, got %v", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New([]string{"A", "B"})
	got := s.List()
	got[0] = "tampered"
	if s.List()[0] != "A" {
		t.Fatalf("List must return an isolated copy")
	}
}
