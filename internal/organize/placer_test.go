package organize_test

import (
	"os"
	"path/filepath"
	"testing"

	"alchemist/internal/logging"
	"alchemist/internal/organize"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPlaceCreatesCategoryFolder(t *testing.T) {
	library := t.TempDir()
	watch := t.TempDir()
	source := filepath.Join(watch, "paper.txt")
	writeFile(t, source, "content")

	placer := organize.New(library, logging.NewNop())
	target, err := placer.Place(source, "Systems CS", "2024_paper.txt")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	want := filepath.Join(library, "Systems CS", "2024_paper.txt")
	if target != want {
		t.Fatalf("target = %q, want %q", target, want)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read placed file: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected content %q", data)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatal("source still present after move")
	}
}

func TestPlaceCollisionSuffixes(t *testing.T) {
	library := t.TempDir()
	watch := t.TempDir()
	placer := organize.New(library, logging.NewNop())

	var targets []string
	for i, content := range []string{"one", "two", "three"} {
		source := filepath.Join(watch, "doc.txt")
		writeFile(t, source, content)
		target, err := placer.Place(source, "Finance", "report.txt")
		if err != nil {
			t.Fatalf("Place #%d: %v", i+1, err)
		}
		targets = append(targets, filepath.Base(target))
	}

	want := []string{"report.txt", "report_1.txt", "report_2.txt"}
	for i := range want {
		if targets[i] != want[i] {
			t.Fatalf("targets = %v, want %v", targets, want)
		}
	}
	// Originals must survive untouched.
	first, err := os.ReadFile(filepath.Join(library, "Finance", "report.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != "one" {
		t.Fatalf("first placement overwritten: %q", first)
	}
}

func TestPlaceCollisionWithoutExtension(t *testing.T) {
	library := t.TempDir()
	watch := t.TempDir()
	placer := organize.New(library, logging.NewNop())

	for _, want := range []string{"notes", "notes_1"} {
		source := filepath.Join(watch, "n")
		writeFile(t, source, "x")
		target, err := placer.Place(source, "Personal", "notes")
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if filepath.Base(target) != want {
			t.Fatalf("target = %q, want %q", filepath.Base(target), want)
		}
	}
}

func TestPlaceMissingSource(t *testing.T) {
	library := t.TempDir()
	placer := organize.New(library, logging.NewNop())
	if _, err := placer.Place(filepath.Join(t.TempDir(), "ghost.txt"), "Finance", "ghost.txt"); err == nil {
		t.Fatal("expected error for missing source")
	}
}
