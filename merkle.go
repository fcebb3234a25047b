package sphincsplus

// wotsLeaf computes the compressed leaf value (a WOTS+ public key
// reduced to one n-byte node) for keypair index idx within a hypertree
// layer, using treehash's genLeafFunc signature.
func (ctx *Ctx) wotsLeaf(pad *scratchPad, skSeed, pubSeed []byte, layerAddr address) genLeafFunc {
	return func(pad *scratchPad, idx uint32, addr address) []byte {
		wotsAddr := layerAddr
		wotsAddr.setType(AddrTypeWots)
		wotsAddr.setKeyPairAddress(idx)
		pk := ctx.wotsPkGen(pad, skSeed, pubSeed, wotsAddr)

		pkAddr := layerAddr
		pkAddr.setType(AddrTypeWotsPK)
		pkAddr.setKeyPairAddress(idx)
		return ctx.wotsPkFromLeaves(pad, pk, pubSeed, pkAddr)
	}
}

// merkleSign signs root with the WOTS+ keypair at keyPairIdx in the
// hypertree layer addressed by layerAddr (layer index and tree index
// already set), and returns that layer's own root alongside the
// signature and authentication path, so the caller can chain to the
// next layer up.
func (ctx *Ctx) merkleSign(pad *scratchPad, skSeed, pubSeed, root []byte,
	layerAddr address, subtreeHeight uint32, keyPairIdx uint32) (
	wotsSig []byte, authPath [][]byte, layerRoot []byte) {

	treeAddr := layerAddr
	treeAddr.setType(AddrTypeTree)
	_, authPath = ctx.treehash(pad, pubSeed, treeAddr, subtreeHeight, keyPairIdx, 0,
		ctx.wotsLeaf(pad, skSeed, pubSeed, layerAddr))

	wotsAddr := layerAddr
	wotsAddr.setType(AddrTypeWots)
	wotsAddr.setKeyPairAddress(keyPairIdx)
	wotsSig, pk := ctx.wotsSign(pad, root, skSeed, pubSeed, wotsAddr)

	pkAddr := layerAddr
	pkAddr.setType(AddrTypeWotsPK)
	pkAddr.setKeyPairAddress(keyPairIdx)
	leaf := ctx.wotsPkFromLeaves(pad, pk, pubSeed, pkAddr)

	layerRoot = ctx.rootFromAuthPath(pad, pubSeed, treeAddr, leaf, authPath, keyPairIdx, 0)
	return
}

// merkleVerify recomputes a hypertree layer's root from a WOTS+
// signature of root, the authentication path, and the keypair index,
// the verification counterpart of merkleSign.
func (ctx *Ctx) merkleVerify(pad *scratchPad, pubSeed, root, wotsSig []byte,
	authPath [][]byte, layerAddr address, keyPairIdx uint32) []byte {

	wotsAddr := layerAddr
	wotsAddr.setType(AddrTypeWots)
	wotsAddr.setKeyPairAddress(keyPairIdx)
	pk := ctx.wotsPkFromSig(pad, wotsSig, root, pubSeed, wotsAddr)

	pkAddr := layerAddr
	pkAddr.setType(AddrTypeWotsPK)
	pkAddr.setKeyPairAddress(keyPairIdx)
	leaf := ctx.wotsPkFromLeaves(pad, pk, pubSeed, pkAddr)

	treeAddr := layerAddr
	treeAddr.setType(AddrTypeTree)
	return ctx.rootFromAuthPath(pad, pubSeed, treeAddr, leaf, authPath, keyPairIdx, 0)
}

// merkleGenRoot computes a hypertree layer's root with no signing: used
// while deriving the public key during key generation.
func (ctx *Ctx) merkleGenRoot(pad *scratchPad, skSeed, pubSeed []byte,
	layerAddr address, subtreeHeight uint32) []byte {
	treeAddr := layerAddr
	treeAddr.setType(AddrTypeTree)
	root, _ := ctx.treehash(pad, pubSeed, treeAddr, subtreeHeight, sentinelLeaf, 0,
		ctx.wotsLeaf(pad, skSeed, pubSeed, layerAddr))
	return root
}
