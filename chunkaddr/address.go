// Package chunkaddr implements the quadtree path encoding used to address
// chunks: a root-to-node path packed 2 bits per level with a leading
// sentinel bit marking the depth.
package chunkaddr

import (
	"math/bits"

	"github.com/kestrelworks/planetlod/facegrid"
)

// Quadrant is a child index within a QuadNode, 0..3.
type Quadrant uint8

const (
	QuadrantBottomLeft  Quadrant = 0
	QuadrantBottomRight Quadrant = 1
	QuadrantTopLeft     Quadrant = 2
	QuadrantTopRight    Quadrant = 3
)

// RootPath is the path of the root node: just the sentinel bit, depth 0.
const RootPath uint64 = 1

// Address identifies a chunk: the face it lives on, its quadtree path, and
// its LOD. LOD is redundant with path depth and max_depth but
// kept explicit since a quadtree's max_depth can change across a Planet's
// lifetime configuration (LOD = max_depth - path_depth at the time the
// address was produced).
type Address struct {
	Face Face
	Path uint64
	Lod  uint8
}

// Face re-exports facegrid.Face so callers need only import chunkaddr for
// address-shaped code.
type Face = facegrid.Face

// Depth returns the number of quadrant descents encoded in path, derived
// from the position of the sentinel bit.
func Depth(path uint64) int {
	if path == 0 {
		return 0
	}
	bitlen := bits.Len64(path)
	return (bitlen - 1) / 2
}

// Descend appends a child quadrant to a path.
func Descend(path uint64, q Quadrant) uint64 {
	return (path << 2) | uint64(q)
}

// Ascend removes the deepest quadrant from a path, returning the parent
// path and the quadrant that was removed. Ascend(RootPath) is a no-op.
func Ascend(path uint64) (parent uint64, q Quadrant) {
	if path == RootPath {
		return RootPath, 0
	}
	return path >> 2, Quadrant(path & 0b11)
}

// Quadrants returns the sequence of quadrant indices from root to this
// path, root-first.
func Quadrants(path uint64) []Quadrant {
	depth := Depth(path)
	out := make([]Quadrant, depth)
	for i := depth - 1; i >= 0; i-- {
		parent, q := Ascend(path)
		out[i] = q
		path = parent
	}
	return out
}

// UV returns the center UV coordinate in [0,1]^2 of the node this path
// addresses, computed by accumulating each quadrant's half-size offset.
func UV(path uint64) (u, v float64) {
	quads := Quadrants(path)
	u, v = 0.5, 0.5
	half := 0.5
	for _, q := range quads {
		half /= 2
		switch q {
		case QuadrantBottomLeft:
			u -= half
			v -= half
		case QuadrantBottomRight:
			u += half
			v -= half
		case QuadrantTopLeft:
			u -= half
			v += half
		case QuadrantTopRight:
			u += half
			v += half
		}
	}
	return u, v
}

// HalfExtent returns half the UV-space size of a node at the given depth.
func HalfExtent(depth int) float64 {
	size := 1.0
	for i := 0; i < depth; i++ {
		size /= 2
	}
	return size / 2
}
