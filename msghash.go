package sphincsplus

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"
)

// genMessageRandom computes R = PRF_msg(sk_prf, opt_rand, msg), the
// randomizer mixed into every signature so that signing the same
// message twice produces unlinkable signatures (§4.8). pad must have
// been created for this Ctx (its haraka constants, if any, already
// tweaked by the signer's pub_seed).
func (ctx *Ctx) genMessageRandom(pad *scratchPad, skPrf, optRand, msg []byte) []byte {
	out := make([]byte, ctx.p.N)
	switch ctx.p.Func {
	case SHA2:
		mac := ctx.newHMAC(skPrf)
		mac.Write(optRand)
		mac.Write(msg)
		copy(out, mac.Sum(nil)[:ctx.p.N])
	case SHAKE:
		h := sha3.NewShake256()
		h.Write(skPrf)
		h.Write(optRand)
		h.Write(msg)
		h.Read(out)
	case Haraka:
		buf := concatBytes(skPrf, optRand, msg)
		pad.hash.haraka.Sponge(out, buf)
	}
	return out
}

// hashMessage expands R || pub_seed || pk_root || msg to DigestBytes()
// bytes and splits the result into the FORS message digest, hypertree
// index and leaf index, per §4.8.
func (ctx *Ctx) hashMessage(pad *scratchPad, r, pubSeed, root, msg []byte) (
	md []byte, treeIdx uint64, leafIdx uint32) {
	digestLen := int(ctx.p.DigestBytes())
	digest := make([]byte, digestLen)

	switch ctx.p.Func {
	case SHA2:
		mac := ctx.newHMAC(r)
		mac.Write(pubSeed)
		mac.Write(root)
		mac.Write(msg)
		seed := mac.Sum(nil)
		ctx.mgf1(digest, seed)
	case SHAKE:
		h := sha3.NewShake256()
		h.Write(r)
		h.Write(pubSeed)
		h.Write(root)
		h.Write(msg)
		h.Read(digest)
	case Haraka:
		buf := concatBytes(r, pubSeed, root, msg)
		pad.hash.haraka.Sponge(digest, buf)
	}

	forsMsgBytes := int(ctx.p.ForsMsgBytes())
	treeBytes := int(ctx.p.TreeBytes())
	leafBytes := int(ctx.p.LeafBytes())

	md = digest[:forsMsgBytes]
	treeIdx = decodeUint64(digest[forsMsgBytes:forsMsgBytes+treeBytes]) &
		((uint64(1) << ctx.p.TreeBits()) - 1)
	leafIdx = uint32(decodeUint64(digest[forsMsgBytes+treeBytes:forsMsgBytes+treeBytes+leafBytes])) &
		uint32((uint64(1)<<ctx.p.LeafBits())-1)
	return
}

func (ctx *Ctx) newHMAC(key []byte) hash.Hash {
	if ctx.p.N >= 24 {
		return hmac.New(sha512.New, key)
	}
	return hmac.New(sha256.New, key)
}

func (ctx *Ctx) newHash() hash.Hash {
	if ctx.p.N >= 24 {
		return sha512.New()
	}
	return sha256.New()
}

// mgf1 expands seed into out using MGF1 as defined in PKCS#1, the
// standard way to stretch an HMAC digest to an arbitrary length; it is
// how the SHA-2 instantiations grow hash_message's output past one
// block.
func (ctx *Ctx) mgf1(out, seed []byte) {
	var counter uint32
	pos := 0
	for pos < len(out) {
		h := ctx.newHash()
		h.Write(seed)
		h.Write([]byte{byte(counter >> 24), byte(counter >> 16), byte(counter >> 8), byte(counter)})
		block := h.Sum(nil)
		n := copy(out[pos:], block)
		pos += n
		counter++
	}
}

func concatBytes(parts ...[]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
