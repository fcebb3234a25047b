package sphincsplus

// wotsExpandSeed derives the wotsLen secret-key values of one WOTS+
// keypair from sk_seed, one PRF call per chain, under the WOTS_PRF
// address type.
func (ctx *Ctx) wotsExpandSeed(pad *scratchPad, skSeed []byte, addr address) []byte {
	addr.setType(AddrTypeWotsPRF)
	ret := make([]byte, ctx.p.N*ctx.wotsLen)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		addr.setHash(0)
		ctx.prfAddrInto(pad, addr, skSeed, ret[ctx.p.N*i:ctx.p.N*(i+1)])
	}
	return ret
}

// wotsChainLengths converts an n-byte message into the wotsLen chain
// lengths (message digits plus checksum digits) that wotsSign walks to.
func (ctx *Ctx) wotsChainLengths(msg []byte) []uint8 {
	ret := make([]uint8, ctx.wotsLen)

	ctx.toBaseW(msg, ret[:ctx.wotsLen1])

	var csum uint32
	for i := 0; i < int(ctx.wotsLen1); i++ {
		csum += uint32(ctx.p.WotsW) - 1 - uint32(ret[i])
	}
	csum <<= 8 - ((ctx.wotsLen2 * uint32(ctx.wotsLogW)) % 8)

	ctx.toBaseW(
		encodeUint64(uint64(csum), int((ctx.wotsLen2*uint32(ctx.wotsLogW)+7)/8)),
		ret[ctx.wotsLen1:])
	return ret
}

// toBaseW unpacks input into base-w digits. Only works if logW divides 8.
func (ctx *Ctx) toBaseW(input []byte, output []uint8) {
	var in, out uint32
	var total uint8
	var bits uint8

	for consumed := 0; consumed < len(output); consumed++ {
		if bits == 0 {
			total = input[in]
			in++
			bits = 8
		}
		bits -= ctx.wotsLogW
		output[out] = uint8(uint16(total>>bits) & (uint16(ctx.p.WotsW) - 1))
		out++
	}
}

// wotsGenChain computes the (start+steps)'th value of a WOTS+ chain
// from its start'th value.
func (ctx *Ctx) wotsGenChain(pad *scratchPad, in []byte, start, steps uint16,
	pubSeed []byte, addr address) []byte {
	buf := in
	for i := start; i < start+steps && i < uint16(ctx.p.WotsW); i++ {
		addr.setHash(uint32(i))
		buf = ctx.thash(pad, pubSeed, addr, buf)
	}
	return buf
}

// wotsSign produces a WOTS+ signature of msg and, in one traversal,
// also returns the corresponding WOTS+ public key (the chain-end
// values), since both are needed to build each hypertree layer's leaf
// and nothing in SPHINCS+ signing needs the signature without the
// public key or vice versa. This folds what the underlying WOTS+
// chain-walk teaches as two passes (sign, then pkgen) into the single
// pass wots_gen_leafx1 requires.
func (ctx *Ctx) wotsSign(pad *scratchPad, msg, skSeed, pubSeed []byte, addr address) (
	sig, pk []byte) {
	lengths := ctx.wotsChainLengths(msg)
	secret := ctx.wotsExpandSeed(pad, skSeed, addr)

	sig = make([]byte, ctx.p.N*ctx.wotsLen)
	pk = make([]byte, ctx.p.N*ctx.wotsLen)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		sk := secret[ctx.p.N*i : ctx.p.N*(i+1)]
		sigVal := ctx.wotsGenChain(pad, sk, 0, uint16(lengths[i]), pubSeed, addr)
		copy(sig[ctx.p.N*i:ctx.p.N*(i+1)], sigVal)
		pkVal := ctx.wotsGenChain(pad, sigVal, uint16(lengths[i]),
			uint16(ctx.p.WotsW)-1-uint16(lengths[i]), pubSeed, addr)
		copy(pk[ctx.p.N*i:ctx.p.N*(i+1)], pkVal)
	}
	return sig, pk
}

// wotsPkGen computes the wotsLen chain-end values of a WOTS+ public
// key from its secret seed, with no message to sign.
func (ctx *Ctx) wotsPkGen(pad *scratchPad, skSeed, pubSeed []byte, addr address) []byte {
	secret := ctx.wotsExpandSeed(pad, skSeed, addr)
	pk := make([]byte, ctx.p.N*ctx.wotsLen)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		copy(pk[ctx.p.N*i:ctx.p.N*(i+1)],
			ctx.wotsGenChain(pad, secret[ctx.p.N*i:ctx.p.N*(i+1)], 0, uint16(ctx.p.WotsW)-1, pubSeed, addr))
	}
	return pk
}

// wotsPkFromSig recovers the WOTS+ public key chain-ends implied by a
// signature of msg, for verification.
func (ctx *Ctx) wotsPkFromSig(pad *scratchPad, sig, msg, pubSeed []byte, addr address) []byte {
	lengths := ctx.wotsChainLengths(msg)
	buf := make([]byte, ctx.p.N*ctx.wotsLen)
	var i uint32
	for i = 0; i < ctx.wotsLen; i++ {
		addr.setChain(i)
		copy(buf[ctx.p.N*i:ctx.p.N*(i+1)],
			ctx.wotsGenChain(pad, sig[ctx.p.N*i:ctx.p.N*(i+1)],
				uint16(lengths[i]), uint16(ctx.p.WotsW)-1-uint16(lengths[i]),
				pubSeed, addr))
	}
	return buf
}

// wotsPkFromLeaves compresses a WOTS+ public key's wotsLen chain-end
// values into the single n-byte leaf value stored in the hypertree,
// via one thash call over all len blocks (§4.4).
func (ctx *Ctx) wotsPkFromLeaves(pad *scratchPad, pk, pubSeed []byte, addr address) []byte {
	blocks := make([][]byte, ctx.wotsLen)
	for i := range blocks {
		blocks[i] = pk[ctx.p.N*uint32(i) : ctx.p.N*uint32(i+1)]
	}
	pkAddr := addr
	pkAddr.setType(AddrTypeWotsPK)
	pkAddr.setKeyPairAddress(addr.keyPairAddress())
	return ctx.thash(pad, pubSeed, pkAddr, blocks...)
}
