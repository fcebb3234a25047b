package sphincsplus

import (
	"bytes"
	"testing"
)

func testCtx(t *testing.T) *Ctx {
	ctx, err := NewCtxFromName("sha2-128f-simple")
	if err != nil {
		t.Fatalf("NewCtxFromName: %v", err)
	}
	return ctx
}

func fillSeed(n uint32, base byte) []byte {
	seed := make([]byte, n)
	for i := range seed {
		seed[i] = base + byte(i)
	}
	return seed
}

func TestWotsChainLengthsAreValidDigits(t *testing.T) {
	ctx := testCtx(t)
	msg := fillSeed(ctx.p.N, 3)
	lengths := ctx.wotsChainLengths(msg)
	if uint32(len(lengths)) != ctx.wotsLen {
		t.Fatalf("wotsChainLengths returned %d digits, want %d", len(lengths), ctx.wotsLen)
	}
	for i, l := range lengths {
		if uint16(l) >= ctx.p.WotsW {
			t.Fatalf("digit %d = %d is not a valid base-w digit (w=%d)", i, l, ctx.p.WotsW)
		}
	}
}

func TestWotsGenChainIsDeterministic(t *testing.T) {
	ctx := testCtx(t)
	pad := ctx.newScratchPadForSeed(fillSeed(ctx.p.N, 2))
	pubSeed := fillSeed(ctx.p.N, 2)
	in := fillSeed(ctx.p.N, 1)
	var addr address
	addr.setType(AddrTypeWots)

	a := ctx.wotsGenChain(&pad, append([]byte{}, in...), 0, 5, pubSeed, addr)
	b := ctx.wotsGenChain(&pad, append([]byte{}, in...), 0, 5, pubSeed, addr)
	if !bytes.Equal(a, b) {
		t.Fatal("wotsGenChain is not deterministic given identical inputs")
	}

	// Walking in two steps should reach the same value as one continuous walk.
	mid := ctx.wotsGenChain(&pad, append([]byte{}, in...), 0, 2, pubSeed, addr)
	twoStep := ctx.wotsGenChain(&pad, mid, 2, 3, pubSeed, addr)
	if !bytes.Equal(a, twoStep) {
		t.Fatal("splitting a chain walk into two calls produced a different result")
	}
}

func TestWotsSignMatchesPkFromSig(t *testing.T) {
	ctx := testCtx(t)
	pubSeed := fillSeed(ctx.p.N, 5)
	skSeed := fillSeed(ctx.p.N, 9)
	msg := fillSeed(ctx.p.N, 13)
	pad := ctx.newScratchPadForSeed(pubSeed)

	var addr address
	addr.setType(AddrTypeWots)
	addr.setKeyPairAddress(3)

	sig, pk := ctx.wotsSign(&pad, msg, skSeed, pubSeed, addr)
	recovered := ctx.wotsPkFromSig(&pad, sig, msg, pubSeed, addr)
	if !bytes.Equal(pk, recovered) {
		t.Fatal("wotsPkFromSig did not recover the public key produced by wotsSign")
	}
}

func TestWotsSignDetectsTamperedMessage(t *testing.T) {
	ctx := testCtx(t)
	pubSeed := fillSeed(ctx.p.N, 5)
	skSeed := fillSeed(ctx.p.N, 9)
	msg := fillSeed(ctx.p.N, 13)
	pad := ctx.newScratchPadForSeed(pubSeed)

	var addr address
	addr.setType(AddrTypeWots)

	sig, pk := ctx.wotsSign(&pad, msg, skSeed, pubSeed, addr)

	tampered := append([]byte{}, msg...)
	tampered[0] ^= 1
	recovered := ctx.wotsPkFromSig(&pad, sig, tampered, pubSeed, addr)
	if bytes.Equal(pk, recovered) {
		t.Fatal("wotsPkFromSig recovered the same public key for a tampered message")
	}
}

func TestWotsPkFromLeavesIsOrderSensitive(t *testing.T) {
	ctx := testCtx(t)
	pubSeed := fillSeed(ctx.p.N, 1)
	pad := ctx.newScratchPadForSeed(pubSeed)
	var addr address
	addr.setType(AddrTypeWotsPK)

	pk := fillSeed(ctx.p.N*ctx.wotsLen, 0)
	leaf := ctx.wotsPkFromLeaves(&pad, pk, pubSeed, addr)
	if uint32(len(leaf)) != ctx.p.N {
		t.Fatalf("wotsPkFromLeaves returned %d bytes, want %d", len(leaf), ctx.p.N)
	}

	swapped := append([]byte{}, pk...)
	n := int(ctx.p.N)
	for i := 0; i < n; i++ {
		swapped[i], swapped[n+i] = swapped[n+i], swapped[i]
	}
	leaf2 := ctx.wotsPkFromLeaves(&pad, swapped, pubSeed, addr)
	if bytes.Equal(leaf, leaf2) {
		t.Fatal("wotsPkFromLeaves produced the same leaf for two different block orderings")
	}
}
