package sphincsplus

// keypairInternal derives the hypertree root from sk_seed and pub_seed,
// by generating the top layer's Merkle tree.
func (ctx *Ctx) keypairInternal(pad *scratchPad, skSeed, pubSeed []byte) []byte {
	var topAddr address
	topAddr.setLayer(ctx.p.D - 1)
	topAddr.setTree(0)
	return ctx.merkleGenRoot(pad, skSeed, pubSeed, topAddr, ctx.p.SubtreeHeight())
}

// signInternal produces a detached SPHINCS+ signature of msg under
// (skSeed, skPrf, pubSeed, root), using optRand as the per-signature
// randomizer input (§4.7, §4.8).
func (ctx *Ctx) signInternal(pad *scratchPad, skSeed, skPrf, pubSeed, root,
	optRand, msg []byte) []byte {
	r := ctx.genMessageRandom(pad, skPrf, optRand, msg)
	md, treeIdx, leafIdx := ctx.hashMessage(pad, r, pubSeed, root, msg)

	var hyperAddr address
	hyperAddr.setLayer(0)
	hyperAddr.setTree(treeIdx)
	hyperAddr.setKeyPairAddress(leafIdx)

	forsSig, forsPk := ctx.forsSign(pad, md, skSeed, pubSeed, hyperAddr)

	sig := make([]byte, 0, ctx.p.SignatureSize())
	sig = append(sig, r...)
	sig = append(sig, forsSig...)

	layerRoot := forsPk
	idxTree := treeIdx
	idxLeaf := leafIdx
	subtreeMask := uint32(1)<<ctx.p.SubtreeHeight() - 1

	for layer := uint32(0); layer < ctx.p.D; layer++ {
		var layerAddr address
		layerAddr.setLayer(layer)
		layerAddr.setTree(idxTree)

		wotsSig, authPath, nextRoot := ctx.merkleSign(pad, skSeed, pubSeed, layerRoot,
			layerAddr, ctx.p.SubtreeHeight(), idxLeaf)

		sig = append(sig, wotsSig...)
		for _, node := range authPath {
			sig = append(sig, node...)
		}

		layerRoot = nextRoot
		idxLeaf = idxTree & subtreeMask
		idxTree >>= ctx.p.SubtreeHeight()
	}
	return sig
}

// verifyInternal checks a detached SPHINCS+ signature of msg against
// (pubSeed, root), returning nil if it is valid.
func (ctx *Ctx) verifyInternal(pad *scratchPad, pubSeed, root, sig, msg []byte) error {
	n := int(ctx.p.N)
	wantLen := int(ctx.p.SignatureSize())
	if len(sig) != wantLen {
		return kindErrorf(KindMalformedInput,
			"signature has wrong length: got %d, want %d", len(sig), wantLen)
	}

	r := sig[:n]
	sig = sig[n:]
	forsSigSize := int(ctx.p.ForsSignatureSize())
	forsSig := sig[:forsSigSize]
	sig = sig[forsSigSize:]

	md, treeIdx, leafIdx := ctx.hashMessage(pad, r, pubSeed, root, msg)

	var hyperAddr address
	hyperAddr.setLayer(0)
	hyperAddr.setTree(treeIdx)
	hyperAddr.setKeyPairAddress(leafIdx)

	layerRoot := ctx.forsPkFromSig(pad, forsSig, md, pubSeed, hyperAddr)

	idxTree := treeIdx
	idxLeaf := leafIdx
	subtreeMask := uint32(1)<<ctx.p.SubtreeHeight() - 1
	wotsSigSize := int(ctx.p.WotsSignatureSize())
	subtreeHeight := ctx.p.SubtreeHeight()

	for layer := uint32(0); layer < ctx.p.D; layer++ {
		var layerAddr address
		layerAddr.setLayer(layer)
		layerAddr.setTree(idxTree)

		wotsSig := sig[:wotsSigSize]
		sig = sig[wotsSigSize:]
		authPath := make([][]byte, subtreeHeight)
		for h := uint32(0); h < subtreeHeight; h++ {
			authPath[h] = sig[:n]
			sig = sig[n:]
		}

		layerRoot = ctx.merkleVerify(pad, pubSeed, layerRoot, wotsSig, authPath, layerAddr, idxLeaf)

		idxLeaf = idxTree & subtreeMask
		idxTree >>= subtreeHeight
	}

	if !constantTimeEqual(layerRoot, root) {
		return kindErrorf(KindInvalidSignature, "signature verification failed")
	}
	return nil
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
