// Package sphincsplus implements SPHINCS+, the stateless hash-based
// post-quantum signature scheme: keypair generation, detached signing
// and verification across the SHA-2, SHAKE and Haraka hash families,
// each in "simple" and "robust" tweakable-hash flavors.
//
// Unlike a stateful scheme, a SPHINCS+ PrivateKey never changes once
// generated: Sign derives every random choice a signature needs from
// the message and a per-signature nonce, so the same key can sign an
// unbounded number of messages with no sequence number to track or
// subtree cache to maintain.
package sphincsplus

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// PublicKey is a SPHINCS+ public key: a seed and a hypertree root.
type PublicKey struct {
	ctx     *Ctx
	pubSeed []byte
	root    []byte
}

// PrivateKey is a SPHINCS+ private key. It is immutable: Sign never
// mutates it and may be called concurrently from multiple goroutines.
type PrivateKey struct {
	ctx     *Ctx
	skSeed  []byte
	skPrf   []byte
	pubSeed []byte
	root    []byte
}

// GenerateKeyPair creates a new SPHINCS+ keypair for the given
// parameter set, drawing randomness from rnd (typically crypto/rand.Reader).
func GenerateKeyPair(ctx *Ctx, rnd io.Reader) (*PrivateKey, *PublicKey, error) {
	n := int(ctx.p.N)
	seeds := make([]byte, 3*n)
	if _, err := io.ReadFull(rnd, seeds); err != nil {
		return nil, nil, wrapErrorf(err, "reading randomness")
	}
	skSeed := seeds[:n]
	skPrf := seeds[n : 2*n]
	pubSeed := seeds[2*n : 3*n]

	pad := ctx.newScratchPadForSeed(pubSeed)
	root := ctx.keypairInternal(&pad, skSeed, pubSeed)

	sk := &PrivateKey{ctx: ctx, skSeed: skSeed, skPrf: skPrf, pubSeed: pubSeed, root: root}
	pk := &PublicKey{ctx: ctx, pubSeed: pubSeed, root: root}
	return sk, pk, nil
}

// PublicKey returns the public key belonging to sk.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{ctx: sk.ctx, pubSeed: sk.pubSeed, root: sk.root}
}

// Sign produces a detached signature of msg. A fresh nonce is drawn
// from crypto/rand for every call; use SignDeterministic to reuse sk's
// own seed material as the nonce instead, trading the extra
// side-channel hardening R provides for reproducible signatures.
func (sk *PrivateKey) Sign(msg []byte) ([]byte, error) {
	n := int(sk.ctx.p.N)
	optRand := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, optRand); err != nil {
		return nil, wrapErrorf(err, "reading randomness")
	}
	return sk.signWith(optRand, msg), nil
}

// SignDeterministic signs msg using sk_seed itself as the randomizer
// input, so the same (key, message) pair always yields the same
// signature bytes. Useful for reproducible tests and KAT generation;
// prefer Sign for everyday use.
func (sk *PrivateKey) SignDeterministic(msg []byte) []byte {
	return sk.signWith(sk.skSeed, msg)
}

func (sk *PrivateKey) signWith(optRand, msg []byte) []byte {
	pad := sk.ctx.newScratchPadForSeed(sk.pubSeed)
	return sk.ctx.signInternal(&pad, sk.skSeed, sk.skPrf, sk.pubSeed, sk.root, optRand, msg)
}

// Verify checks a detached signature of msg against pk, returning a
// non-nil Error classified by Kind if the signature does not verify or
// is malformed.
func (pk *PublicKey) Verify(msg, sig []byte) error {
	pad := pk.ctx.newScratchPadForSeed(pk.pubSeed)
	return pk.ctx.verifyInternal(&pad, pk.pubSeed, pk.root, sig, msg)
}

// BatchVerify checks several (message, signature) pairs against the
// same public key, returning a multierror.Error aggregating every
// failure rather than stopping at the first one: useful for bulk
// package- or firmware-signature validation where a caller wants a
// full report of what failed, not just the first failure.
func (pk *PublicKey) BatchVerify(msgs, sigs [][]byte) error {
	if len(msgs) != len(sigs) {
		return kindErrorf(KindMalformedInput, "msgs and sigs have different lengths")
	}
	var result *multierror.Error
	for i := range msgs {
		if err := pk.Verify(msgs[i], sigs[i]); err != nil {
			result = multierror.Append(result, fmt.Errorf("item %d: %w", i, err))
		}
	}
	return result.ErrorOrNil()
}

// MarshalBinary encodes the public key as pub_seed || root.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, pk.ctx.p.PublicKeySize())
	out = append(out, pk.pubSeed...)
	out = append(out, pk.root...)
	return out, nil
}

// UnmarshalPublicKey decodes a public key previously produced by
// MarshalBinary for the given parameter set.
func UnmarshalPublicKey(ctx *Ctx, buf []byte) (*PublicKey, error) {
	n := int(ctx.p.N)
	if len(buf) != int(ctx.p.PublicKeySize()) {
		return nil, kindErrorf(KindMalformedInput,
			"public key has wrong length: got %d, want %d", len(buf), ctx.p.PublicKeySize())
	}
	return &PublicKey{
		ctx:     ctx,
		pubSeed: append([]byte{}, buf[:n]...),
		root:    append([]byte{}, buf[n:2*n]...),
	}, nil
}

// MarshalBinary encodes the private key as sk_seed || sk_prf || pub_seed || root.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, sk.ctx.p.SecretKeySize())
	out = append(out, sk.skSeed...)
	out = append(out, sk.skPrf...)
	out = append(out, sk.pubSeed...)
	out = append(out, sk.root...)
	return out, nil
}

// UnmarshalPrivateKey decodes a private key previously produced by
// MarshalBinary for the given parameter set.
func UnmarshalPrivateKey(ctx *Ctx, buf []byte) (*PrivateKey, error) {
	n := int(ctx.p.N)
	if len(buf) != int(ctx.p.SecretKeySize()) {
		return nil, kindErrorf(KindMalformedInput,
			"private key has wrong length: got %d, want %d", len(buf), ctx.p.SecretKeySize())
	}
	return &PrivateKey{
		ctx:     ctx,
		skSeed:  append([]byte{}, buf[:n]...),
		skPrf:   append([]byte{}, buf[n:2*n]...),
		pubSeed: append([]byte{}, buf[2*n:3*n]...),
		root:    append([]byte{}, buf[3*n:4*n]...),
	}, nil
}

func init() {
	// Sanity anchor for encodeUint64/decodeUint64's big-endian
	// convention, exercised indirectly by every address and digest
	// field; keeping it here documents the expectation in one place.
	var probe [4]byte
	binary.BigEndian.PutUint32(probe[:], 1)
	if probe[3] != 1 {
		panic("sphincsplus: platform endian assumption violated")
	}
}
