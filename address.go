package sphincsplus

// Address types, per the layer each hash call belongs to. Unlike XMSS's
// three-way OTS/LTREE/HASHTREE split, SPHINCS+ needs two more: FORS has
// its own tree and root-compression address types, and the seed-derivation
// calls (WOTS_PRF/FORS_PRF) need to be distinguished from the chain/tree
// calls that share the same layer and tree-index fields.
const (
	AddrTypeWots     = 0
	AddrTypeWotsPK   = 1
	AddrTypeTree     = 2
	AddrTypeForsTree = 3
	AddrTypeForsPK   = 4
	AddrTypeWotsPRF  = 5
	AddrTypeForsPRF  = 6
)

// address is the 32-byte ADRS structure threaded through every thash and
// prf_addr call. As in the teacher, fields are accessed exclusively through
// setters so the word-packing of the wider fields (tree index) can't be
// gotten wrong at a call site.
type address [8]uint32

func (addr *address) setLayer(layer uint32) {
	addr[0] = layer
}

func (addr *address) setTree(tree uint64) {
	addr[1] = uint32(tree >> 32)
	addr[2] = uint32(tree)
}

func (addr *address) setType(typ uint32) {
	addr[3] = typ
}

func (addr *address) setKeyAndMask(keyAndMask uint32) {
	addr[7] = keyAndMask
}

// setSubTreeFrom copies the layer and tree-index fields from another
// address, leaving the type-specific fields untouched.
func (addr *address) setSubTreeFrom(other address) {
	addr[0] = other[0]
	addr[1] = other[1]
	addr[2] = other[2]
}

// setKeyPairAddress sets the index of the WOTS+/FORS keypair within its
// hypertree layer (word 4, shared by both WOTS and FORS address types).
func (addr *address) setKeyPairAddress(keyPair uint32) {
	addr[4] = keyPair
}

func (addr *address) keyPairAddress() uint32 {
	return addr[4]
}

// setChain and setHash address a single step within a WOTS+ chain.
func (addr *address) setChain(chain uint32) {
	addr[5] = chain
}

func (addr *address) setHash(hash uint32) {
	addr[6] = hash
}

// setTreeHeight and setTreeIndex address a node in the treehash stack
// machine; used for the FORS trees and the hypertree Merkle layers.
func (addr *address) setTreeHeight(treeHeight uint32) {
	addr[5] = treeHeight
}

func (addr *address) setTreeIndex(treeIndex uint32) {
	addr[6] = treeIndex
}

func (addr *address) toBytes() []byte {
	buf := make([]byte, fullAddrBytes)
	addr.writeInto(buf)
	return buf
}

func (addr *address) writeInto(buf []byte) {
	for i := 0; i < 8; i++ {
		encodeUint64Into(uint64(addr[i]), buf[i*4:(i+1)*4])
	}
}

// fullAddrBytes is the word-packed ADRS size SHAKE and Haraka hash under:
// 8 big-endian uint32 words, one per address word. sha2AddrBytes is the
// compressed layout SHA-2 uses instead, packing fields byte by byte so
// the address plus one n-byte input block still fits within a single
// SHA-256 compression call (NIST SP 800-208, §4).
const (
	fullAddrBytes = 32
	sha2AddrBytes = 22
)

// addrBytes returns the ADRS encoding size this hash family expects.
func addrBytes(f HashFunc) int {
	if f == SHA2 {
		return sha2AddrBytes
	}
	return fullAddrBytes
}

// writeIntoSHA2 encodes addr into the 22-byte compressed layout: layer
// (1 byte), tree (8 bytes), type (1 byte), a 2-byte keypair address,
// chain_addr/tree_hgt (1 byte, shared by type) and a 4-byte
// tree_index/hash_addr field (again shared by type, with hash_addr
// being its low byte). The gaps between fields are left zero.
func (addr *address) writeIntoSHA2(buf []byte) {
	for i := range buf[:sha2AddrBytes] {
		buf[i] = 0
	}
	buf[0] = byte(addr[0])
	encodeUint64Into(uint64(addr[1])<<32|uint64(addr[2]), buf[1:9])
	buf[9] = byte(addr[3])
	buf[12] = byte(addr[4] >> 8)
	buf[13] = byte(addr[4])
	buf[17] = byte(addr[5])
	encodeUint64Into(uint64(addr[6]), buf[18:22])
}

func (addr *address) toBytesSHA2() []byte {
	buf := make([]byte, sha2AddrBytes)
	addr.writeIntoSHA2(buf)
	return buf
}
