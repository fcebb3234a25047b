package sphincsplus

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/sphincsplus-go/sphincsplus/internal/haraka"
	"golang.org/x/crypto/sha3"
)

// Ctx binds a Params to its derived sizes, precomputed once so the hot
// signing/verification path never recomputes them. It carries no secret
// material itself: that lives in PrivateKey and is threaded through
// explicitly, as befits a stateless signature scheme.
type Ctx struct {
	p Params

	wotsLen, wotsLen1, wotsLen2 uint32
	wotsLogW                    uint8
}

// NewCtx validates p and derives a Ctx from it.
func NewCtx(p Params) (*Ctx, error) {
	if err := p.Validate(); err != nil {
		return nil, wrapErrorf(err, "invalid parameters")
	}
	ctx := &Ctx{p: p}
	ctx.wotsLogW = p.WotsLogW()
	ctx.wotsLen1 = p.WotsLen1()
	ctx.wotsLen2 = p.WotsLen2()
	ctx.wotsLen = ctx.wotsLen1 + ctx.wotsLen2
	return ctx, nil
}

// NewCtxFromName looks up a named instantiation and builds a Ctx from it.
func NewCtxFromName(name string) (*Ctx, error) {
	p := ParamsFromName(name)
	if p == nil {
		return nil, kindErrorf(KindMalformedInput, "unknown parameter set %q", name)
	}
	return NewCtx(*p)
}

func (ctx *Ctx) Params() Params { return ctx.p }

// hashScratchPad holds hash state reused across calls within one
// signing or verification operation, mirroring the scratch-pad pattern
// used to avoid allocating a fresh hash.Hash per WOTS+ chain step.
type hashScratchPad struct {
	shake  sha3.ShakeHash
	haraka *haraka.Constants
}

type scratchPad struct {
	n        uint32
	hashFunc HashFunc
	buf      []byte
	hash     hashScratchPad
}

// slice carves out size bytes from the shared scratch buffer, growing
// it if necessary. Every call returns the start of the same buffer, so
// the contents of a slice handed out earlier are overwritten by the
// next call, whatever size it asks for.
func (pad *scratchPad) slice(size int) []byte {
	if cap(pad.buf) < size {
		pad.buf = make([]byte, size)
	}
	return pad.buf[:size]
}

func (pad *scratchPad) prfBuf() []byte {
	return pad.slice(int(2*pad.n) + addrBytes(pad.hashFunc))
}
func (pad *scratchPad) thashBuf(blocks int) []byte {
	return pad.slice(int(pad.n) + addrBytes(pad.hashFunc) + blocks*int(pad.n))
}

// newScratchPad allocates a fresh scratchPad bound to this Ctx's hash
// family, so the underlying hash.Hash/ShakeHash/haraka state doesn't
// need to be constructed per call. hc is nil unless ctx.p.Func==Haraka.
func (ctx *Ctx) newScratchPad(hc *haraka.Constants) scratchPad {
	pad := scratchPad{n: ctx.p.N, hashFunc: ctx.p.Func}
	switch ctx.p.Func {
	case SHAKE:
		pad.hash.shake = sha3.NewShake256()
	case Haraka:
		pad.hash.haraka = hc
	}
	return pad
}

// newScratchPadForSeed builds a scratchPad ready to hash under the
// given pub_seed, tweaking Haraka's round constants once up front if
// this instantiation needs them.
func (ctx *Ctx) newScratchPadForSeed(pubSeed []byte) scratchPad {
	var hc *haraka.Constants
	if ctx.p.Func == Haraka {
		hc = haraka.Tweak(pubSeed)
	}
	return ctx.newScratchPad(hc)
}

// hashInto computes the family hash of in, truncated to n bytes.
func (ctx *Ctx) hashInto(pad *scratchPad, in, out []byte) {
	switch ctx.p.Func {
	case SHA2:
		if ctx.p.N >= 24 {
			sum := sha512.Sum512(in)
			copy(out, sum[:ctx.p.N])
		} else {
			sum := sha256.Sum256(in)
			copy(out, sum[:ctx.p.N])
		}
	case SHAKE:
		h := pad.hash.shake
		h.Reset()
		h.Write(in)
		h.Read(out[:ctx.p.N])
	case Haraka:
		// Every call site here passes a variable-length input (thash
		// blocks, PRF material), so route all of them through the
		// Haraka-S sponge rather than picking between the fixed-width
		// Haraka256/512 permutations the reference implementation
		// reserves for exactly one or two n-byte blocks.
		pad.hash.haraka.Sponge(out[:ctx.p.N], in)
	}
}

// prfAddrInto computes Hash(HASH_PADDING_PRF || key || addr), used both
// to expand a WOTS+/FORS secret seed and to derive the robust thash
// bitmasks.
func (ctx *Ctx) prfAddrInto(pad *scratchPad, addr address, key, out []byte) {
	n := int(ctx.p.N)
	addrLen := addrBytes(ctx.p.Func)
	buf := pad.prfBuf()
	encodeUint64Into(HASH_PADDING_PRF, buf[:n])
	copy(buf[n:2*n], key)
	if ctx.p.Func == SHA2 {
		addr.writeIntoSHA2(buf[2*n : 2*n+addrLen])
	} else {
		addr.writeInto(buf[2*n : 2*n+addrLen])
	}
	ctx.hashInto(pad, buf[:2*n+addrLen], out)
}

func (ctx *Ctx) prfAddr(pad *scratchPad, addr address, key []byte) []byte {
	ret := make([]byte, ctx.p.N)
	ctx.prfAddrInto(pad, addr, key, ret)
	return ret
}

const (
	HASH_PADDING_F          = 0
	HASH_PADDING_H          = 1
	HASH_PADDING_HASH       = 2
	HASH_PADDING_PRF        = 3
	HASH_PADDING_PRF_KEYGEN = 4
)
