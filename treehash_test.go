package sphincsplus

import (
	"bytes"
	"testing"
)

func TestTreehashAuthPathVerifies(t *testing.T) {
	ctx := testCtx(t)
	pubSeed := fillSeed(ctx.p.N, 6)
	pad := ctx.newScratchPadForSeed(pubSeed)

	var treeAddr address
	treeAddr.setType(AddrTypeTree)

	const height = 4
	genLeaf := func(pad *scratchPad, idx uint32, addr address) []byte {
		return ctx.thash(pad, pubSeed, addr, fillSeed(ctx.p.N, byte(idx)))
	}

	for leafIdx := uint32(0); leafIdx < (1 << height); leafIdx++ {
		root, authPath := ctx.treehash(&pad, pubSeed, treeAddr, height, leafIdx, 0, genLeaf)
		if len(authPath) != height {
			t.Fatalf("leaf %d: authPath has %d entries, want %d", leafIdx, len(authPath), height)
		}

		leafAddr := treeAddr
		leafAddr.setTreeHeight(0)
		leafAddr.setTreeIndex(leafIdx)
		leaf := genLeaf(&pad, leafIdx, leafAddr)

		got := ctx.rootFromAuthPath(&pad, pubSeed, treeAddr, leaf, authPath, leafIdx, 0)
		if !bytes.Equal(got, root) {
			t.Fatalf("leaf %d: rootFromAuthPath = %x, want %x", leafIdx, got, root)
		}
	}
}

func TestTreehashSentinelSkipsAuthPath(t *testing.T) {
	ctx := testCtx(t)
	pubSeed := fillSeed(ctx.p.N, 6)
	pad := ctx.newScratchPadForSeed(pubSeed)

	var treeAddr address
	treeAddr.setType(AddrTypeTree)
	genLeaf := func(pad *scratchPad, idx uint32, addr address) []byte {
		return ctx.thash(pad, pubSeed, addr, fillSeed(ctx.p.N, byte(idx)))
	}

	root, authPath := ctx.treehash(&pad, pubSeed, treeAddr, 3, sentinelLeaf, 0, genLeaf)
	for i, node := range authPath {
		if node != nil {
			t.Fatalf("authPath[%d] = %x, want nil when leafIdx is sentinelLeaf", i, node)
		}
	}
	root2, _ := ctx.treehash(&pad, pubSeed, treeAddr, 3, 0, 0, genLeaf)
	if !bytes.Equal(root, root2) {
		t.Fatal("sentinelLeaf produced a different root than a real leaf index")
	}
}
