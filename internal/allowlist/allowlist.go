// Package allowlist provides a memory-mapped lookup table of allowed
// SPHINCS+ public keys, for verifiers that only ever need to accept
// signatures from a known, slowly-changing set of keys (firmware
// signing, package repositories). The table is a file of fixed-width
// records written in one go by Build; lookups hash the encoded public key and scan
// its bucket rather than loading the whole file into the Go heap.
package allowlist

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cespare/xxhash"
	"github.com/edsrzf/mmap-go"
)

const bucketCount = 1024

// List is a read-only, memory-mapped allowlist opened from disk.
type List struct {
	f    *os.File
	data mmap.MMap
	// keyLen is the length of each stored public key (pub_seed||root);
	// it differs per SPHINCS+ parameter set.
	keyLen  int
	buckets [bucketCount][]uint32 // offsets into data, by bucket
}

// Build writes a new allowlist file at path containing keys, each of
// length keyLen.
func Build(path string, keyLen int, keys [][]byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header[0:4], uint32(keyLen))
	binary.BigEndian.PutUint32(header[4:8], uint32(len(keys)))
	if _, err := f.Write(header); err != nil {
		return err
	}
	for _, k := range keys {
		if len(k) != keyLen {
			return fmt.Errorf("allowlist: key has wrong length: got %d, want %d", len(k), keyLen)
		}
		if _, err := f.Write(k); err != nil {
			return err
		}
	}
	return nil
}

// Open memory-maps an allowlist file built by Build and indexes it by
// xxhash bucket for fast membership checks.
func Open(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	keyLen := int(binary.BigEndian.Uint32(data[0:4]))
	count := int(binary.BigEndian.Uint32(data[4:8]))

	l := &List{f: f, data: data, keyLen: keyLen}
	for i := 0; i < count; i++ {
		off := uint32(8 + i*keyLen)
		key := data[off : off+uint32(keyLen)]
		b := bucketOf(key)
		l.buckets[b] = append(l.buckets[b], off)
	}
	return l, nil
}

func bucketOf(key []byte) uint32 {
	return uint32(xxhash.Sum64(key) % bucketCount)
}

// Contains reports whether key (pub_seed||root, as produced by
// PublicKey.MarshalBinary) is present in the allowlist.
func (l *List) Contains(key []byte) bool {
	if len(key) != l.keyLen {
		return false
	}
	for _, off := range l.buckets[bucketOf(key)] {
		if string(l.data[off:off+uint32(l.keyLen)]) == string(key) {
			return true
		}
	}
	return false
}

// Close unmaps the allowlist and closes its file handle.
func (l *List) Close() error {
	if err := l.data.Unmap(); err != nil {
		return err
	}
	return l.f.Close()
}
