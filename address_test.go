package sphincsplus

import "testing"

func TestAddressSetters(t *testing.T) {
	var addr address
	addr.setLayer(3)
	addr.setTree(0x0102030405060708)
	addr.setType(AddrTypeForsTree)
	addr.setKeyPairAddress(11)
	addr.setTreeHeight(4)
	addr.setTreeIndex(12)

	if addr[0] != 3 {
		t.Errorf("setLayer: word 0 = %d, want 3", addr[0])
	}
	if addr[1] != 0x01020304 || addr[2] != 0x05060708 {
		t.Errorf("setTree: words 1,2 = %x,%x, want 01020304,05060708", addr[1], addr[2])
	}
	if addr[3] != AddrTypeForsTree {
		t.Errorf("setType: word 3 = %d, want %d", addr[3], AddrTypeForsTree)
	}
	if addr.keyPairAddress() != 11 {
		t.Errorf("keyPairAddress() = %d, want 11", addr.keyPairAddress())
	}
	if addr[5] != 4 || addr[6] != 12 {
		t.Errorf("setTreeHeight/setTreeIndex: words 5,6 = %d,%d, want 4,12", addr[5], addr[6])
	}
}

func TestAddressSubTreeFrom(t *testing.T) {
	var src address
	src.setLayer(2)
	src.setTree(99)
	src.setType(AddrTypeWots)

	var dst address
	dst.setType(AddrTypeForsPK)
	dst.setSubTreeFrom(src)

	if dst[0] != src[0] || dst[1] != src[1] || dst[2] != src[2] {
		t.Fatal("setSubTreeFrom did not copy layer/tree fields")
	}
	if dst[3] != AddrTypeForsPK {
		t.Fatal("setSubTreeFrom overwrote the type field it should leave alone")
	}
}

func TestAddressWriteIntoMatchesToBytes(t *testing.T) {
	var addr address
	addr.setLayer(1)
	addr.setTree(42)
	addr.setType(AddrTypeTree)
	addr.setTreeHeight(5)
	addr.setTreeIndex(7)

	buf := make([]byte, 32)
	addr.writeInto(buf)
	if string(buf) != string(addr.toBytes()) {
		t.Fatal("writeInto and toBytes disagree")
	}
}

func TestAddressSHA2EncodingIsCompressedAndDistinct(t *testing.T) {
	var addr address
	addr.setLayer(1)
	addr.setTree(0x0102030405060708)
	addr.setType(AddrTypeForsTree)
	addr.setKeyPairAddress(0x1234)
	addr.setTreeHeight(4)
	addr.setTreeIndex(0xAABBCCDD)

	buf := addr.toBytesSHA2()
	if len(buf) != sha2AddrBytes {
		t.Fatalf("toBytesSHA2 returned %d bytes, want %d", len(buf), sha2AddrBytes)
	}
	if buf[0] != 1 {
		t.Errorf("layer byte = %d, want 1", buf[0])
	}
	if string(buf[1:9]) != string([]byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("tree bytes = %x, want 0102030405060708", buf[1:9])
	}
	if buf[9] != AddrTypeForsTree {
		t.Errorf("type byte = %d, want %d", buf[9], AddrTypeForsTree)
	}
	if buf[12] != 0x12 || buf[13] != 0x34 {
		t.Errorf("keypair bytes = %x,%x, want 12,34", buf[12], buf[13])
	}
	if buf[17] != 4 {
		t.Errorf("chain_addr/tree_hgt byte = %d, want 4", buf[17])
	}
	if string(buf[18:22]) != string([]byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Errorf("tree_index bytes = %x, want aabbccdd", buf[18:22])
	}

	full := addr.toBytes()
	if len(full) == len(buf) {
		t.Fatal("SHA-2 and full ADRS encodings have the same length")
	}
}

func TestAddrBytesDispatchesOnFamily(t *testing.T) {
	if got := addrBytes(SHA2); got != sha2AddrBytes {
		t.Errorf("addrBytes(SHA2) = %d, want %d", got, sha2AddrBytes)
	}
	if got := addrBytes(SHAKE); got != fullAddrBytes {
		t.Errorf("addrBytes(SHAKE) = %d, want %d", got, fullAddrBytes)
	}
	if got := addrBytes(Haraka); got != fullAddrBytes {
		t.Errorf("addrBytes(Haraka) = %d, want %d", got, fullAddrBytes)
	}
}
