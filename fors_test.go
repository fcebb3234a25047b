package sphincsplus

import (
	"bytes"
	"testing"
)

func TestForsIndicesWithinRange(t *testing.T) {
	ctx := testCtx(t)
	md := fillSeed(ctx.p.ForsMsgBytes(), 11)
	indices := ctx.forsIndices(md)
	if uint32(len(indices)) != ctx.p.FORSTrees {
		t.Fatalf("forsIndices returned %d indices, want %d", len(indices), ctx.p.FORSTrees)
	}
	limit := uint32(1) << ctx.p.FORSHeight
	for i, idx := range indices {
		if idx >= limit {
			t.Fatalf("index %d = %d exceeds 2^a = %d", i, idx, limit)
		}
	}
}

func TestForsSignMatchesPkFromSig(t *testing.T) {
	ctx := testCtx(t)
	pubSeed := fillSeed(ctx.p.N, 3)
	skSeed := fillSeed(ctx.p.N, 8)
	md := fillSeed(ctx.p.ForsMsgBytes(), 21)
	pad := ctx.newScratchPadForSeed(pubSeed)

	var hyperAddr address
	hyperAddr.setLayer(0)
	hyperAddr.setTree(5)

	sig, pk := ctx.forsSign(&pad, md, skSeed, pubSeed, hyperAddr)
	recovered := ctx.forsPkFromSig(&pad, sig, md, pubSeed, hyperAddr)
	if !bytes.Equal(pk, recovered) {
		t.Fatal("forsPkFromSig did not recover the public key produced by forsSign")
	}
}

func TestForsSignDetectsTamperedDigest(t *testing.T) {
	ctx := testCtx(t)
	pubSeed := fillSeed(ctx.p.N, 3)
	skSeed := fillSeed(ctx.p.N, 8)
	md := fillSeed(ctx.p.ForsMsgBytes(), 21)
	pad := ctx.newScratchPadForSeed(pubSeed)

	var hyperAddr address
	hyperAddr.setLayer(0)
	hyperAddr.setTree(5)

	sig, pk := ctx.forsSign(&pad, md, skSeed, pubSeed, hyperAddr)

	tampered := append([]byte{}, md...)
	tampered[0] ^= 0xff
	recovered := ctx.forsPkFromSig(&pad, sig, tampered, pubSeed, hyperAddr)
	if bytes.Equal(pk, recovered) {
		t.Fatal("forsPkFromSig recovered the same public key for a tampered digest")
	}
}

// Two different hypertree leaves must derive independent FORS secrets
// even when the message digest selects the same local index within
// every k-th tree: the keypair address (bound to the leaf, not the
// tree number) is what provides that independence.
func TestForsSecretDependsOnHypertreeLeaf(t *testing.T) {
	ctx := testCtx(t)
	skSeed := fillSeed(ctx.p.N, 9)

	var treeAddrLeaf0, treeAddrLeaf1 address
	treeAddrLeaf0.setLayer(0)
	treeAddrLeaf0.setTree(5)
	treeAddrLeaf0.setKeyPairAddress(0)
	treeAddrLeaf0.setType(AddrTypeForsTree)

	treeAddrLeaf1 = treeAddrLeaf0
	treeAddrLeaf1.setKeyPairAddress(1)

	pad := ctx.newScratchPadForSeed(fillSeed(ctx.p.N, 3))
	s0 := ctx.forsSecret(&pad, skSeed, treeAddrLeaf0, 7, 0)
	s1 := ctx.forsSecret(&pad, skSeed, treeAddrLeaf1, 7, 0)
	if bytes.Equal(s0, s1) {
		t.Fatal("forsSecret produced identical secrets for two different hypertree leaves")
	}
}

// Within one signature, different FORS trees (distinguished by
// idxOffset) must derive different secrets even for the same local
// index, since idx_offset is folded into tree_index.
func TestForsSecretDependsOnTreeOffset(t *testing.T) {
	ctx := testCtx(t)
	skSeed := fillSeed(ctx.p.N, 9)

	var treeAddr address
	treeAddr.setLayer(0)
	treeAddr.setTree(5)
	treeAddr.setKeyPairAddress(0)
	treeAddr.setType(AddrTypeForsTree)

	pad := ctx.newScratchPadForSeed(fillSeed(ctx.p.N, 3))
	a := ctx.p.FORSHeight
	s0 := ctx.forsSecret(&pad, skSeed, treeAddr, 7, 0)
	s1 := ctx.forsSecret(&pad, skSeed, treeAddr, 7, 1<<a)
	if bytes.Equal(s0, s1) {
		t.Fatal("forsSecret ignored idxOffset: two FORS trees derived the same secret")
	}
}
