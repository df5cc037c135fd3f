package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.xml")

	if err := WriteAtomic(path, []byte("first")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := WriteAtomic(path, []byte("second")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("Expected 'second', got '%s'", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("Expected mode 0644, got %v", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestWriteAtomic_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	parent := filepath.Join(dir, "file")
	if err := os.WriteFile(parent, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteAtomic(filepath.Join(parent, "out"), []byte("x")); err == nil {
		t.Error("Expected an error when the parent is a regular file")
	}
}

func TestWriteIfMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".nojekyll")

	if err := WriteIfMissing(path, []byte("")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteIfMissing(path, []byte("")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Errorf("Expected existing file untouched, got '%s'", data)
	}
}
