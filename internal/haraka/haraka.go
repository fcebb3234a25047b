// Package haraka implements the Haraka-512/256 permutations and the
// Haraka-S sponge built from them, tweaked per public seed as SPHINCS+'s
// third hash family requires.
//
// This is a portable, byte-oriented AES round function rather than the
// bitsliced constant-time one some reference implementations use for
// side-channel resistance on amd64; the round structure (five double-AES
// rounds interleaved with a fixed word-mixing permutation, a feed-forward
// XOR, and truncation) is the same.
package haraka

const rate = 32 // HARAKAS_RATE: the Haraka-S sponge's byte rate.

var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

func xtime(x byte) byte {
	if x&0x80 != 0 {
		return (x << 1) ^ 0x1b
	}
	return x << 1
}

// aesRound applies one standard AES round (SubBytes, ShiftRows,
// MixColumns, AddRoundKey) to a 16-byte state laid out column-major.
func aesRound(state *[16]byte, rk []byte) {
	var s [16]byte
	for i := range state {
		s[i] = sbox[state[i]]
	}
	// ShiftRows: row r of the 4x4 matrix (state[r+4c]) rotates left by r.
	var shifted [16]byte
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			shifted[r+4*c] = s[r+4*((c+r)%4)]
		}
	}
	// MixColumns over GF(2^8).
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := shifted[4*c], shifted[4*c+1], shifted[4*c+2], shifted[4*c+3]
		state[4*c] = xtime(a0) ^ xtime(a1) ^ a1 ^ a2 ^ a3 ^ rk[4*c]
		state[4*c+1] = a0 ^ xtime(a1) ^ xtime(a2) ^ a2 ^ a3 ^ rk[4*c+1]
		state[4*c+2] = a0 ^ a1 ^ xtime(a2) ^ xtime(a3) ^ a3 ^ rk[4*c+2]
		state[4*c+3] = xtime(a0) ^ a0 ^ a1 ^ a2 ^ xtime(a3) ^ rk[4*c+3]
	}
}

// mix512 is the fixed word-shuffle between the four 128-bit lanes of the
// Haraka-512 state, applied after every pair of AES rounds.
func mix512(s0, s1, s2, s3 *[16]byte) {
	var t0, t1, t2, t3 [16]byte
	for i := 0; i < 4; i++ {
		copy(t0[4*i:4*i+4], s0[4*i:4*i+4])
	}
	_ = t0
	// unpack 32-bit words pairwise across lanes: (s0,s1) and (s2,s3).
	var hi01, lo01, hi23, lo23 [16]byte
	for i := 0; i < 2; i++ {
		copy(hi01[8*i:8*i+4], s0[8+4*i:8+4*i+4])
		copy(hi01[8*i+4:8*i+8], s1[8+4*i:8+4*i+4])
		copy(lo01[8*i:8*i+4], s0[4*i:4*i+4])
		copy(lo01[8*i+4:8*i+8], s1[4*i:4*i+4])
		copy(hi23[8*i:8*i+4], s2[8+4*i:8+4*i+4])
		copy(hi23[8*i+4:8*i+8], s3[8+4*i:8+4*i+4])
		copy(lo23[8*i:8*i+4], s2[4*i:4*i+4])
		copy(lo23[8*i+4:8*i+8], s3[4*i:4*i+4])
	}
	copy(t0[:8], lo23[:8])
	copy(t0[8:], lo01[:8])
	copy(t1[:8], lo23[8:])
	copy(t1[8:], lo01[8:])
	copy(t2[:8], hi23[:8])
	copy(t2[8:], hi01[:8])
	copy(t3[:8], hi23[8:])
	copy(t3[8:], hi01[8:])
	*s0, *s1, *s2, *s3 = t0, t1, t2, t3
}

// mix256 is the corresponding two-lane mix used by Haraka-256.
func mix256(s0, s1 *[16]byte) {
	var t0, t1 [16]byte
	copy(t0[:4], s0[:4])
	copy(t0[4:8], s1[:4])
	copy(t0[8:12], s0[8:12])
	copy(t0[12:], s1[8:12])
	copy(t1[:4], s0[4:8])
	copy(t1[4:8], s1[4:8])
	copy(t1[8:12], s0[12:])
	copy(t1[12:], s1[12:])
	*s0, *s1 = t0, t1
}

// Constants holds the per-pub_seed tweaked round constants for both
// permutations, derived once via tweak and reused for every hash call
// under that seed.
type Constants struct {
	rc512 [40][16]byte // 5 rounds * 2 AES-rounds * 4 lanes
	rc256 [40][16]byte // reuses the same derivation, narrowed to 2 lanes
}

// baseline512 are the untweaked round constants used to bootstrap Tweak.
var baseline512 = [10][8]uint64{
	{0x24cf0ab9086f628b, 0xbdd6eeecc83b8382, 0xd96fb0306cdad0a7, 0xaace082ac8f95f89, 0x449d8e8870d7041f, 0x49bb2f80b2b3e2f8, 0x0569ae98d93bb258, 0x23dc9691e7d6a4b1},
	{0xd8ba10ede0fe5b6e, 0x7ecf7dbe424c7b8e, 0x6ea9949c6df62a31, 0xbf3f3c97ec9c313e, 0x241d03a196a1861e, 0xead3a51116e5a2ea, 0x77d479fcad9574e3, 0x18657a1af894b7a0},
	{0x10671e1a7f595522, 0xd9a00ff675d28c7b, 0x2f1edf0d2b9ba661, 0xb8ff58b8e3de45f9, 0xee29261da9865c02, 0xd1532aa4b50bdf43, 0x8bf858159b231bb1, 0xdf17439d22d4f599},
	{0xdd4b2f0870b918c0, 0x757a81f3b39b1bb6, 0x7a5c556898952e3f, 0x7dd70a16d915d87a, 0x3ae61971982b8301, 0xc3ab319e030412be, 0x17c0033ac094a8cb, 0x5a0630fc1a8dc4ef},
	{0x17708988c1632f73, 0xf92ddae090b44f4f, 0x11ac0285c43aa314, 0x509059941936b8ba, 0xd03e152fa2ce9b69, 0x3fbcbcb63a32998b, 0x6204696d692254f7, 0x915542ed93ec59b4},
	{0xf4ed94aa8879236e, 0xff6cb41cd38e03c0, 0x069b38602368aeab, 0x669495b820f0ddba, 0xf42013b1b8bf9e3d, 0xcf935efe6439734d, 0xbc1dcf42ca29e3f8, 0x7e6d3ed29f78ad67},
	{0xf3b0f6837ffcddaa, 0x3a76faef934ddf41, 0xcec7ae583a9c8e35, 0xe4dd18c68f0260af, 0x2c0e5df1ad398eaa, 0x478df5236ae22e8c, 0xfb944c46fe865f39, 0xaa48f82f028132ba},
	{0x231b9ae2b76aca77, 0x292a76a712db0b40, 0x5850625dc8134491, 0x73137dd469810fb5, 0x8a12a6a202a474fd, 0xd36fd9daa78bdb80, 0xb34c5e733505706f, 0xbaf1cdca818d9d96},
	{0x2e99781335e8c641, 0xbddfe5cce47d560e, 0xf74e9bf32e5e040c, 0x1d7a709d65996be9, 0x670df36a9cf66cdd, 0xd05ef84a176a2875, 0x0f888e828cb1c44e, 0x1a79e9c9727b052c},
	{0x83497348628d84de, 0x2e9387d51f22a754, 0xb000068da2f852d6, 0x378c9e1190fd6fe5, 0x870027c316de7293, 0xe51a9d4462e047bb, 0x90ecf7f8c6251195, 0x655953bfbed90a9c},
}

func baselineConstants() *Constants {
	c := &Constants{}
	for i, row := range baseline512 {
		var buf [64]byte
		for j, w := range row {
			putUint64BE(buf[8*j:8*j+8], w)
		}
		for l := 0; l < 4; l++ {
			copy(c.rc512[4*i+l][:], buf[16*l:16*l+16])
		}
		for l := 0; l < 2; l++ {
			copy(c.rc256[4*i+l][:], buf[16*l:16*l+16])
		}
	}
	return c
}

func putUint64BE(b []byte, x uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(x)
		x >>= 8
	}
}

func permute512(state *[64]byte, c *Constants) {
	var s0, s1, s2, s3 [16]byte
	copy(s0[:], state[0:16])
	copy(s1[:], state[16:32])
	copy(s2[:], state[32:48])
	copy(s3[:], state[48:64])
	for i := 0; i < 5; i++ {
		for j := 0; j < 2; j++ {
			idx := 2*i + j
			aesRound(&s0, c.rc512[4*idx][:])
			aesRound(&s1, c.rc512[4*idx+1][:])
			aesRound(&s2, c.rc512[4*idx+2][:])
			aesRound(&s3, c.rc512[4*idx+3][:])
		}
		mix512(&s0, &s1, &s2, &s3)
	}
	copy(state[0:16], s0[:])
	copy(state[16:32], s1[:])
	copy(state[32:48], s2[:])
	copy(state[48:64], s3[:])
}

func permute256(state *[32]byte, c *Constants) {
	var s0, s1 [16]byte
	copy(s0[:], state[0:16])
	copy(s1[:], state[16:32])
	for i := 0; i < 5; i++ {
		for j := 0; j < 2; j++ {
			idx := 2*i + j
			aesRound(&s0, c.rc256[2*idx][:])
			aesRound(&s1, c.rc256[2*idx+1][:])
		}
		mix256(&s0, &s1)
	}
	copy(state[0:16], s0[:])
	copy(state[16:32], s1[:])
}

// Hash512 computes Haraka512, truncated to 32 bytes as SPHINCS+ requires.
func (c *Constants) Hash512(out, in []byte) {
	var buf [64]byte
	copy(buf[:], in)
	orig := buf
	permute512(&buf, c)
	for i := range buf {
		buf[i] ^= orig[i]
	}
	copy(out[0:8], buf[8:16])
	copy(out[8:16], buf[24:32])
	copy(out[16:24], buf[32:40])
	copy(out[24:32], buf[48:56])
}

// Hash256 computes Haraka256. No code in this module calls it: every
// Haraka hash, including the robust thash bitmasks, goes through Sponge.
func (c *Constants) Hash256(out, in []byte) {
	var buf [32]byte
	copy(buf[:], in)
	orig := buf
	permute256(&buf, c)
	for i := range buf {
		out[i] = buf[i] ^ orig[i]
	}
}

// Tweak derives the per-pub_seed round constants used for every
// subsequent Haraka call under that seed, following the original
// construction: absorb pub_seed with a Haraka-S sponge keyed by the
// baseline constants, then slice the squeezed output into the tweaked
// Haraka-512 and Haraka-256 round-key tables.
func Tweak(pubSeed []byte) *Constants {
	boot := baselineConstants()
	buf := make([]byte, 40*16)
	sponge(buf, pubSeed, boot)

	c := &Constants{}
	for i := 0; i < 10; i++ {
		copy(c.rc512[4*i+0][:], buf[64*i:64*i+16])
		copy(c.rc512[4*i+1][:], buf[64*i+16:64*i+32])
		copy(c.rc512[4*i+2][:], buf[64*i+32:64*i+48])
		copy(c.rc512[4*i+3][:], buf[64*i+48:64*i+64])

		copy(c.rc256[2*i+0][:], buf[32*i:32*i+16])
		copy(c.rc256[2*i+1][:], buf[32*i+16:32*i+32])
	}
	return c
}

// Sponge squeezes len(out) bytes from a Haraka-S absorption of in,
// under this Constants' tweaked round keys.
func (c *Constants) Sponge(out, in []byte) {
	sponge(out, in, c)
}

// sponge implements Haraka-S: a sponge with a 64-byte state and the
// given rate, built from the Haraka-512 permutation.
func sponge(out, in []byte, c *Constants) {
	var state [64]byte
	idx := 0
	rem := len(in)
	for rem >= rate {
		for i := 0; i < rate; i++ {
			state[i] ^= in[idx+i]
		}
		permute512(&state, c)
		rem -= rate
		idx += rate
	}
	var last [rate]byte
	copy(last[:rem], in[idx:idx+rem])
	last[rem] = 0x1f
	last[rate-1] |= 0x80
	for i := 0; i < rate; i++ {
		state[i] ^= last[i]
	}

	o := 0
	for o < len(out) {
		permute512(&state, c)
		n := copy(out[o:], state[:rate])
		o += n
	}
}
