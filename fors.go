package sphincsplus

// forsIndices splits the FORS message digest into k indices of a bits
// each, one per FORS tree, per §4.6.
func (ctx *Ctx) forsIndices(md []byte) []uint32 {
	k, a := ctx.p.FORSTrees, ctx.p.FORSHeight
	indices := make([]uint32, k)
	var bitOffset uint32
	for i := uint32(0); i < k; i++ {
		var idx uint32
		for b := uint32(0); b < a; b++ {
			bit := bitOffset + b
			byteIdx := bit / 8
			bitInByte := 7 - (bit % 8)
			idx <<= 1
			idx |= uint32(md[byteIdx]>>bitInByte) & 1
		}
		indices[i] = idx
		bitOffset += a
	}
	return indices
}

// forsSecret derives the one leaf secret value at local position idx
// (within its own tree, before idxOffset) of a FORS tree. treeAddr
// already carries the hypertree leaf's keypair address, constant across
// all k FORS trees; idxOffset (= treeNum*2^a) is what distinguishes them.
func (ctx *Ctx) forsSecret(pad *scratchPad, skSeed []byte, treeAddr address,
	idx, idxOffset uint32) []byte {
	skAddr := treeAddr
	skAddr.setType(AddrTypeForsPRF)
	skAddr.setTreeIndex(idx + idxOffset)
	return ctx.prfAddr(pad, skAddr, skSeed)
}

func (ctx *Ctx) forsLeaf(pad *scratchPad, skSeed, pubSeed []byte, treeAddr address,
	idxOffset uint32) genLeafFunc {
	return func(pad *scratchPad, idx uint32, addr address) []byte {
		secret := ctx.forsSecret(pad, skSeed, treeAddr, idx, idxOffset)
		leafAddr := treeAddr
		leafAddr.setType(AddrTypeForsTree)
		leafAddr.setTreeHeight(0)
		leafAddr.setTreeIndex(idx + idxOffset)
		return ctx.thash(pad, pubSeed, leafAddr, secret)
	}
}

// forsSign produces a FORS signature of md: for each of the k trees,
// the revealed secret value at the message-selected leaf plus its
// height-a authentication path, and returns the combined FORS public
// key (the k tree roots compressed via one thash call), per §4.6.
// hyperAddr must already carry the hypertree leaf's keypair address
// (§4.7 step 5); it is copied into every k tree's address unchanged, and
// idxOffset = treeNum*2^a is what tells the k trees apart (§4.6).
func (ctx *Ctx) forsSign(pad *scratchPad, md, skSeed, pubSeed []byte, hyperAddr address) (
	sig []byte, pk []byte) {
	indices := ctx.forsIndices(md)
	k, a := ctx.p.FORSTrees, ctx.p.FORSHeight
	n := ctx.p.N

	sig = make([]byte, k*(a+1)*n)
	roots := make([]byte, k*n)

	for i := uint32(0); i < k; i++ {
		treeAddr := hyperAddr
		treeAddr.setType(AddrTypeForsTree)
		idxOffset := i << a

		secret := ctx.forsSecret(pad, skSeed, treeAddr, indices[i], idxOffset)
		copy(sig[i*(a+1)*n:i*(a+1)*n+n], secret)

		root, authPath := ctx.treehash(pad, pubSeed, treeAddr, a, indices[i], idxOffset,
			ctx.forsLeaf(pad, skSeed, pubSeed, treeAddr, idxOffset))
		for h := uint32(0); h < a; h++ {
			copy(sig[i*(a+1)*n+n+h*n:i*(a+1)*n+n+(h+1)*n], authPath[h])
		}
		copy(roots[i*n:(i+1)*n], root)
	}

	pkAddr := hyperAddr
	pkAddr.setType(AddrTypeForsPK)
	rootBlocks := make([][]byte, k)
	for i := uint32(0); i < k; i++ {
		rootBlocks[i] = roots[i*n : (i+1)*n]
	}
	pk = ctx.thash(pad, pubSeed, pkAddr, rootBlocks...)
	return
}

// forsPkFromSig recomputes the FORS public key implied by a signature
// of md, the verification counterpart of forsSign. As in forsSign,
// hyperAddr's keypair address is shared by every tree unchanged.
func (ctx *Ctx) forsPkFromSig(pad *scratchPad, sig, md, pubSeed []byte, hyperAddr address) []byte {
	indices := ctx.forsIndices(md)
	k, a := ctx.p.FORSTrees, ctx.p.FORSHeight
	n := ctx.p.N

	roots := make([]byte, k*n)
	for i := uint32(0); i < k; i++ {
		treeAddr := hyperAddr
		treeAddr.setType(AddrTypeForsTree)
		idxOffset := i << a

		secret := sig[i*(a+1)*n : i*(a+1)*n+n]
		leafAddr := treeAddr
		leafAddr.setTreeHeight(0)
		leafAddr.setTreeIndex(indices[i] + idxOffset)
		leaf := ctx.thash(pad, pubSeed, leafAddr, secret)

		authPath := make([][]byte, a)
		for h := uint32(0); h < a; h++ {
			authPath[h] = sig[i*(a+1)*n+n+h*n : i*(a+1)*n+n+(h+1)*n]
		}
		root := ctx.rootFromAuthPath(pad, pubSeed, treeAddr, leaf, authPath, indices[i], idxOffset)
		copy(roots[i*n:(i+1)*n], root)
	}

	pkAddr := hyperAddr
	pkAddr.setType(AddrTypeForsPK)
	rootBlocks := make([][]byte, k)
	for i := uint32(0); i < k; i++ {
		rootBlocks[i] = roots[i*n : (i+1)*n]
	}
	return ctx.thash(pad, pubSeed, pkAddr, rootBlocks...)
}
