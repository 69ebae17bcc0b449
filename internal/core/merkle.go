// merkle.go - Windowed incremental Merkle tree (dependency of spec
// component C8). Rather than proving membership against the root of the
// entire commitment pool — which would reveal, via the pool's growth over
// time, roughly when a spent note was created — a prover picks a random
// contiguous window of WindowSize = 2^IncrementalMerkleTreeDepth pool
// slots containing their commitment, builds a small tree over just that
// window, and proves membership against the window's root. The window
// root (not the index within it) is the public input, so any note whose
// commitment falls inside some valid window is indistinguishable from any
// other.
//
// Hashing reuses the same fixed, unpadded SHA-256 compression primitive as
// the rest of the package (sha256.go): a parent is Compress(left‖right).
package core

import "github.com/consensys/gnark/frontend"

// IncrementalMerkleTreeDepth is the depth of every window tree.
const IncrementalMerkleTreeDepth = 4

// WindowSize is the number of pool slots covered by one window.
const WindowSize = 1 << IncrementalMerkleTreeDepth

// hexToBytes32 and bytes32ToHex round-trip pool entries (hex strings)
// through the fixed-size byte form the compression primitive expects.
func hexToBytes32(s string) Bytes32 {
	b, err := ParseHex256(s)
	if err != nil {
		panic(err)
	}
	return b
}

func bytes32ToHex(b Bytes32) string {
	return FormatHex256(b)
}

// parentHash computes Compress(left‖right).
func parentHash(left, right Bytes32) Bytes32 {
	var block [64]byte
	copy(block[:32], left[:])
	copy(block[32:], right[:])
	return Compress(block)
}

// WindowLeaves reads the pool slots in [from, to] into the low end of a
// WindowSize-leaf array, zero-padding the rest (both the unfilled tail up
// to WindowSize and anything past the end of the pool) with ZeroCM. to
// bounds what the window reveals: entries at or before to are real pool
// contents, everything else looks like an unfilled incremental-tree slot,
// whether or not the pool actually holds more data past to.
func WindowLeaves(pool *Pool, from, to int) [WindowSize]Bytes32 {
	zero := hexToBytes32(ZeroCM)
	var leaves [WindowSize]Bytes32
	for i := 0; i < WindowSize; i++ {
		idx := from + i
		if idx >= 0 && idx <= to && idx < pool.Size() {
			v, err := pool.Get(idx)
			if err != nil {
				leaves[i] = zero
				continue
			}
			leaves[i] = hexToBytes32(v)
		} else {
			leaves[i] = zero
		}
	}
	return leaves
}

// SampleWindow picks a random window [from, to] covering idx, such that
// from <= idx <= to, to-from+1 <= WindowSize and to < poolSize. The
// window's offset of idx within it is randomized so that repeated calls
// for the same idx do not always yield the same window (spec's
// windowed-Merkle privacy property).
func SampleWindow(poolSize, idx int) (from, to int) {
	offset := windowRNG.Intn(WindowSize)
	from = idx - offset
	if from < 0 {
		from = 0
	}
	to = from + WindowSize - 1
	if to >= poolSize {
		to = poolSize - 1
	}
	if from > idx {
		from = idx
	}
	return from, to
}

// BuildWindowTree computes every layer of the tree over leaves, layer 0
// being the leaves themselves and the last layer holding the single root.
func BuildWindowTree(leaves [WindowSize]Bytes32) [][]Bytes32 {
	layers := make([][]Bytes32, IncrementalMerkleTreeDepth+1)
	layers[0] = leaves[:]
	for d := 0; d < IncrementalMerkleTreeDepth; d++ {
		cur := layers[d]
		next := make([]Bytes32, len(cur)/2)
		for i := range next {
			next[i] = parentHash(cur[2*i], cur[2*i+1])
		}
		layers[d+1] = next
	}
	return layers
}

// WindowRoot is a convenience wrapper returning just the tree's root.
func WindowRoot(leaves [WindowSize]Bytes32) Bytes32 {
	layers := BuildWindowTree(leaves)
	return layers[IncrementalMerkleTreeDepth][0]
}

// AuthPath returns the sibling hash at each layer and the corresponding
// direction bit (true = the known node is the right child, sibling is on
// the left) for the leaf at index within layers.
func AuthPath(layers [][]Bytes32, index int) (siblings [IncrementalMerkleTreeDepth]Bytes32, dirs [IncrementalMerkleTreeDepth]bool) {
	idx := index
	for d := 0; d < IncrementalMerkleTreeDepth; d++ {
		isRight := idx%2 == 1
		var sibIdx int
		if isRight {
			sibIdx = idx - 1
		} else {
			sibIdx = idx + 1
		}
		siblings[d] = layers[d][sibIdx]
		dirs[d] = isRight
		idx /= 2
	}
	return
}

// MerkleRoot recomputes the root from a leaf and its authentication path.
func MerkleRoot(leaf Bytes32, siblings [IncrementalMerkleTreeDepth]Bytes32, dirs [IncrementalMerkleTreeDepth]bool) Bytes32 {
	cur := leaf
	for d := 0; d < IncrementalMerkleTreeDepth; d++ {
		if dirs[d] {
			cur = parentHash(siblings[d], cur)
		} else {
			cur = parentHash(cur, siblings[d])
		}
	}
	return cur
}

// MerkleMembershipCircuit recomputes the window root from leafBits and the
// authentication path (pathBits[d] is the depth-d sibling, dirBits[d] is 1
// when the accumulated node is the right child), then asserts it equals
// rootBits whenever enforce is 1. enforce is the zero-value escape (spec
// §4.8): a dummy input note sets enforce to 0 to skip the membership check
// entirely rather than satisfy it trivially. All bit slices are 256-wide
// and MSB-first except dirBits, one boolean per tree layer.
func MerkleMembershipCircuit(api frontend.API, leafBits []frontend.Variable, pathBits [IncrementalMerkleTreeDepth][]frontend.Variable, dirBits [IncrementalMerkleTreeDepth]frontend.Variable, rootBits []frontend.Variable, enforce frontend.Variable) {
	cur := leafBits
	for d := 0; d < IncrementalMerkleTreeDepth; d++ {
		api.AssertIsBoolean(dirBits[d])
		sib := pathBits[d]
		for _, b := range sib {
			api.AssertIsBoolean(b)
		}

		block := make([]frontend.Variable, 512)
		for i := 0; i < 256; i++ {
			// block = dir ? (sib‖cur) : (cur‖sib), selected wire-by-wire.
			block[i] = api.Select(dirBits[d], sib[i], cur[i])
			block[256+i] = api.Select(dirBits[d], cur[i], sib[i])
		}
		cur = CompressCircuit(api, block)
	}

	curPacked := packMSB(api, cur)
	rootPacked := packMSB(api, rootBits)
	diff := api.Sub(curPacked, rootPacked)
	api.AssertIsEqual(api.Mul(enforce, diff), 0)
}
