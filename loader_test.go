package dfield

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func writeTestField(t *testing.T, dir, name string) string {
	t.Helper()
	f, err := NewField(2, 2, []int8{-10, 10, 20, -20})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := WriteFile(path, f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderCaches(t *testing.T) {
	path := writeTestField(t, t.TempDir(), "a.dfield")
	l := NewLoader(4)

	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second {
		t.Error("second Load returned a different field instance")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLoaderEvict(t *testing.T) {
	path := writeTestField(t, t.TempDir(), "a.dfield")
	l := NewLoader(4)

	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !l.Evict(path) {
		t.Error("Evict() = false for a cached path")
	}
	second, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first == second {
		t.Error("Load after Evict returned the evicted instance")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(4)
	_, err := l.Load(filepath.Join(t.TempDir(), "nope.dfield"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d after failed load, want 0", l.Len())
	}
}

func TestLoaderCapacity(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(2)

	paths := []string{
		writeTestField(t, dir, "a.dfield"),
		writeTestField(t, dir, "b.dfield"),
		writeTestField(t, dir, "c.dfield"),
	}
	for _, p := range paths {
		if _, err := l.Load(p); err != nil {
			t.Fatalf("Load(%s) error = %v", p, err)
		}
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want capacity-bounded 2", l.Len())
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", l.Len())
	}
}
