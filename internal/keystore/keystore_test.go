package keystore

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.key")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Exists() {
		t.Fatal("Exists() is true before any Save")
	}

	key := []byte("sk_seed-sk_prf--pub_seed--root--")
	if err := s.Save(key); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists() {
		t.Fatal("Exists() is false after Save")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Fatalf("Load() = %q, want %q", got, key)
	}
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.key")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Save([]byte("first-key-value-1234")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save([]byte("second-key-value-56")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "second-key-value-56" {
		t.Fatalf("Load() = %q after overwrite, want %q", got, "second-key-value-56")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "missing.key"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("Load() succeeded on a file that was never saved")
	}
}

func TestStoreStringDoesNotLeakPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret-name.key")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := s.String(); got == path {
		t.Fatalf("String() returned the raw path: %q", got)
	}
}
