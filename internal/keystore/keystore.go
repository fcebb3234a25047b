// Package keystore stores a SPHINCS+ private key at rest, guarded by an
// advisory lock file so two processes never open the same key for
// writing concurrently.
//
// Unlike a stateful scheme's key container, there is no subtree cache
// and no signature sequence number to persist: a SPHINCS+ PrivateKey is
// exactly sk_seed || sk_prf || pub_seed || root, and that is the entire
// durable state.
package keystore

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/bwesterb/byteswriter"
	"github.com/nightlyone/lockfile"
)

// Store is a filesystem-backed secret-key container at a single path.
// A Store is not safe for concurrent use from multiple goroutines; it
// is the cross-process lock file, not an in-process mutex, that
// prevents two Stores pointed at the same path from writing at once.
type Store struct {
	path string
	lock lockfile.Lockfile
}

// Open returns a Store rooted at path. The key itself is not read or
// created until Save or Load is called.
func Open(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	lf, err := lockfile.New(abs + ".lock")
	if err != nil {
		return nil, err
	}
	return &Store{path: abs, lock: lf}, nil
}

// Save locks the store and writes key, overwriting whatever was there.
// Callers typically pass a PrivateKey's MarshalBinary output.
func (s *Store) Save(key []byte) error {
	if err := s.lock.TryLock(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := byteswriter.New(f)
	w.WriteBytes(key)
	return w.Err()
}

// Load locks the store and returns the stored key bytes.
func (s *Store) Load() ([]byte, error) {
	if err := s.lock.TryLock(); err != nil {
		return nil, err
	}
	defer s.lock.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, info.Size())
	if _, err := f.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Exists reports whether a key has already been saved at this path.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// String identifies the store by the hex encoding of its file's base
// name, so log lines carry no directory path.
func (s *Store) String() string {
	return "keystore(" + hex.EncodeToString([]byte(filepath.Base(s.path))) + ")"
}
