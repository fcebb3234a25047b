package sphincsplus

import "github.com/templexxx/xor"

// thash is the tweakable hash of §4.1: it compresses one or more n-byte
// blocks into a single n-byte output, tweaked by pub_seed and addr so
// that the same block hashes differently under every address. It backs
// the WOTS+ chain step (one block), the Merkle/FORS tree node (two
// blocks) and the WOTS+/FORS public-key compression (len or k blocks).
//
// Simple mode hashes pub_seed || addr || blocks directly. Robust mode
// additionally XORs each block with an address-derived bitmask first,
// following the same construction XMSS uses for F and RAND_HASH, just
// generalized from exactly one or two blocks to any number.
func (ctx *Ctx) thashInto(pad *scratchPad, pubSeed []byte, addr address,
	out []byte, blocks ...[]byte) {
	n := int(ctx.p.N)
	addrLen := addrBytes(ctx.p.Func)
	if ctx.p.Thash == Robust {
		// The masks are computed before buf is carved out, since
		// prfAddrInto writes into the same scratch memory.
		masked := make([][]byte, len(blocks))
		maskAddr := addr
		for i, b := range blocks {
			maskAddr.setKeyAndMask(uint32(i + 1))
			mask := make([]byte, n)
			ctx.prfAddrInto(pad, maskAddr, pubSeed, mask)
			xor.BytesSameLen(mask, mask, b)
			masked[i] = mask
		}
		blocks = masked
	}

	buf := pad.thashBuf(len(blocks))
	copy(buf[:n], pubSeed)
	if ctx.p.Func == SHA2 {
		addr.writeIntoSHA2(buf[n : n+addrLen])
	} else {
		addr.writeInto(buf[n : n+addrLen])
	}

	base := n + addrLen
	for i, b := range blocks {
		copy(buf[base+i*n:base+(i+1)*n], b)
	}
	ctx.hashInto(pad, buf[:base+len(blocks)*n], out)
}

func (ctx *Ctx) thash(pad *scratchPad, pubSeed []byte, addr address,
	blocks ...[]byte) []byte {
	out := make([]byte, ctx.p.N)
	ctx.thashInto(pad, pubSeed, addr, out, blocks...)
	return out
}
