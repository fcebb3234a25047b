//go:generate enumer -type HashFunc,ThashVariant

package sphincsplus

import (
	"fmt"
)

// HashFunc selects the underlying hash/sponge family used to build every
// pluggable operation: thash, prf_addr, gen_message_random and hash_message.
type HashFunc uint8

const (
	// SHA2 uses SHA-256 for n < 24 and SHA-512 for n >= 24 (n in bytes;
	// the boundary follows NIST SP 800-208's convention of escalating to
	// the wider compression function once the security parameter grows).
	SHA2 HashFunc = iota
	// SHAKE uses SHAKE256 throughout, as NIST's reference parameter sets do.
	SHAKE
	// Haraka uses Haraka-256/512/S with round constants tweaked by pub_seed.
	Haraka
)

func (h HashFunc) String() string {
	switch h {
	case SHA2:
		return "sha2"
	case SHAKE:
		return "shake"
	case Haraka:
		return "haraka"
	default:
		return fmt.Sprintf("HashFunc(%d)", uint8(h))
	}
}

// ThashVariant selects between the two tweakable-hash flavors of §4.1.
type ThashVariant uint8

const (
	// Simple computes H(pub_seed || addr || input) with no masking.
	Simple ThashVariant = iota
	// Robust additionally XORs input with a bitmask derived from
	// H(pub_seed || addr) before hashing, roughly 3x slower than Simple.
	Robust
)

func (t ThashVariant) String() string {
	switch t {
	case Simple:
		return "simple"
	case Robust:
		return "robust"
	default:
		return fmt.Sprintf("ThashVariant(%d)", uint8(t))
	}
}

// Params holds the compile-time constants of one SPHINCS+ instantiation.
// Unlike XMSS, SPHINCS+ is stateless: there is no sequence number and no
// subtree cache, so every byte here is either fixed per instantiation or
// derived from it.
type Params struct {
	Func  HashFunc     // hash/sponge family
	Thash ThashVariant // tweakable hash flavor
	N     uint32       // security parameter in bytes: hash output length

	FullHeight uint32 // h: total hypertree height
	D          uint32 // d: number of hypertree layers; h must be divisible by d

	FORSHeight uint32 // a: height of each FORS tree
	FORSTrees  uint32 // k: number of FORS trees

	WotsW uint16 // Winternitz parameter; only 16 is supported
}

func (p Params) String() string {
	return fmt.Sprintf("sphincs-%s-%d%s-%s", p.Func, p.N*8, p.suffix(), p.Thash)
}

func (p Params) suffix() string {
	// Matches the informal "f" (fast, shallow FORS trees) / "s" (small
	// signature, deep FORS trees) naming used by the NIST submission.
	if p.FORSHeight >= 12 {
		return "s"
	}
	return "f"
}

// SubtreeHeight returns h' = h/d, the height of each hypertree layer.
func (p *Params) SubtreeHeight() uint32 {
	return p.FullHeight / p.D
}

// WotsLogW returns log2(w).
func (p *Params) WotsLogW() uint8 {
	switch p.WotsW {
	case 16:
		return 4
	default:
		panic("sphincsplus: only WotsW=16 is supported")
	}
}

// WotsLen1 returns len1, the number of WOTS+ chains carrying message digits.
func (p *Params) WotsLen1() uint32 {
	return 8 * p.N / uint32(p.WotsLogW())
}

// WotsLen2 returns len2, the number of WOTS+ checksum chains.
func (p *Params) WotsLen2() uint32 {
	// floor(log_w(len1*(w-1))) + 1, precomputed for w=16.
	switch {
	case p.N <= 8:
		return 2
	case p.N <= 136:
		return 3
	default:
		return 4
	}
}

// WotsLen returns len = len1 + len2, the total number of WOTS+ chains.
func (p *Params) WotsLen() uint32 {
	return p.WotsLen1() + p.WotsLen2()
}

// WotsSignatureSize returns the size in bytes of a WOTS+ signature.
func (p *Params) WotsSignatureSize() uint32 {
	return p.WotsLen() * p.N
}

// ForsSignatureSize returns the size in bytes of a FORS signature:
// k trees, each contributing one secret value plus an `a`-node auth path.
func (p *Params) ForsSignatureSize() uint32 {
	return p.FORSTrees * (p.FORSHeight + 1) * p.N
}

// ForsMsgBytes returns the number of bytes needed to hold k*a bits.
func (p *Params) ForsMsgBytes() uint32 {
	return (p.FORSHeight*p.FORSTrees + 7) / 8
}

// TreeBits and LeafBits give the bit-widths of the hypertree-index and
// leaf-index fields extracted from the message digest by hash_message.
func (p *Params) TreeBits() uint32 {
	return p.SubtreeHeight() * (p.D - 1)
}

func (p *Params) LeafBits() uint32 {
	return p.SubtreeHeight()
}

func (p *Params) TreeBytes() uint32 {
	return (p.TreeBits() + 7) / 8
}

func (p *Params) LeafBytes() uint32 {
	return (p.LeafBits() + 7) / 8
}

// DigestBytes returns the total length hash_message must expand to:
// FORS_MSG_BYTES || TREE_BYTES || LEAF_BYTES.
func (p *Params) DigestBytes() uint32 {
	return p.ForsMsgBytes() + p.TreeBytes() + p.LeafBytes()
}

// PublicKeySize returns 2n: pub_seed || root.
func (p *Params) PublicKeySize() uint32 { return 2 * p.N }

// SecretKeySize returns 4n: sk_seed || sk_prf || pub_seed || root.
func (p *Params) SecretKeySize() uint32 { return 4 * p.N }

// SignatureSize returns n + k(a+1)n + d(len*n + h'*n).
func (p *Params) SignatureSize() uint32 {
	return p.N + p.ForsSignatureSize() +
		p.D*(p.WotsSignatureSize()+p.SubtreeHeight()*p.N)
}

// Validate checks the internal consistency required of every instantiation.
func (p *Params) Validate() error {
	if p.N != 16 && p.N != 24 && p.N != 32 {
		return errorf("N must be 16, 24 or 32, got %d", p.N)
	}
	if p.D == 0 || p.FullHeight%p.D != 0 {
		return errorf("D must divide FullHeight")
	}
	if p.WotsW != 16 {
		return errorf("only WotsW=16 is supported")
	}
	if p.FORSHeight == 0 || p.FORSTrees == 0 {
		return errorf("FORSHeight and FORSTrees must be nonzero")
	}
	return nil
}

// regEntry is an entry in the registry of named instantiations.
type regEntry struct {
	name   string
	params Params
}

// registry lists the NIST round-3 parameter sets, each in both thash
// flavors, for all three hash families: 3 families x 6 presets x 2
// flavors = 36 named instantiations.
var registry []regEntry

func init() {
	type preset struct {
		name                   string
		n, h, d, a, k          uint32
	}
	presets := []preset{
		{"128f", 16, 66, 22, 6, 33},
		{"128s", 16, 63, 7, 12, 14},
		{"192f", 24, 66, 22, 8, 33},
		{"192s", 24, 63, 7, 14, 17},
		{"256f", 32, 68, 17, 9, 35},
		{"256s", 32, 64, 8, 14, 22},
	}
	families := []struct {
		name string
		f    HashFunc
	}{
		{"sha2", SHA2}, {"shake", SHAKE}, {"haraka", Haraka},
	}
	thashes := []struct {
		name string
		t    ThashVariant
	}{
		{"simple", Simple}, {"robust", Robust},
	}

	registryNameLut = make(map[string]regEntry)
	for _, fam := range families {
		for _, ps := range presets {
			for _, th := range thashes {
				name := fmt.Sprintf("%s-%s-%s", fam.name, ps.name, th.name)
				p := Params{
					Func: fam.f, Thash: th.t, N: ps.n,
					FullHeight: ps.h, D: ps.d,
					FORSHeight: ps.a, FORSTrees: ps.k,
					WotsW: 16,
				}
				entry := regEntry{name: name, params: p}
				registry = append(registry, entry)
				registryNameLut[name] = entry
			}
		}
	}
}

var registryNameLut map[string]regEntry

// ParamsFromName returns the named instantiation, e.g. "sha2-128f-simple",
// or nil if unknown. The name grammar is "<family>-<bits><f|s>-<thash>".
func ParamsFromName(name string) *Params {
	entry, ok := registryNameLut[name]
	if !ok {
		return nil
	}
	p := entry.params
	return &p
}

// ListNames lists every named instantiation known to this package.
func ListNames() []string {
	names := make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return names
}
