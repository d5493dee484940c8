package store_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"inkform/internal/store"
)

func TestFileStore_SetGetRemove(t *testing.T) {
	var s store.Store = store.NewFileStore(t.TempDir())

	if _, ok, err := s.Get("form"); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}

	want := []byte(`{"bio":"hello"}`)
	if err := s.Set("form", want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.Get("form")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("roundtrip mismatch: got=%q want=%q", got, want)
	}

	if err := s.Remove("form"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get("form"); ok {
		t.Fatal("key still present after remove")
	}
	// Removing again is a no-op.
	if err := s.Remove("form"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestFileStore_CreatesDirectoryOnFirstSet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := store.NewFileStore(dir)
	if err := s.Set("form", []byte("{}")); err != nil {
		t.Fatalf("set into missing dir: %v", err)
	}
	if _, ok, err := s.Get("form"); err != nil || !ok {
		t.Fatalf("get back: ok=%v err=%v", ok, err)
	}
}

func TestMemStore_CopiesValues(t *testing.T) {
	s := store.NewMemStore()
	v := []byte("abc")
	if err := s.Set("k", v); err != nil {
		t.Fatalf("set: %v", err)
	}
	v[0] = 'x'
	got, _, _ := s.Get("k")
	if string(got) != "abc" {
		t.Fatalf("store aliased caller slice: %q", got)
	}
}
