package quadtree

import (
	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/facegrid"
)

// Forest owns all six faces' quadtrees and enforces the cross-face balance
// invariant between them.
type Forest struct {
	Faces map[facegrid.Face]*FaceQuadtree
}

// NewForest creates a balanced single-leaf forest, one quadtree per face.
func NewForest(maxDepth uint8) *Forest {
	f := &Forest{Faces: make(map[facegrid.Face]*FaceQuadtree, 6)}
	for _, face := range facegrid.AllFaces() {
		f.Faces[face] = NewFaceQuadtree(face, maxDepth)
	}
	return f
}

// edgeParam returns the free (non-fixed) UV coordinate value of a node's
// center along the face boundary it touches at edge e.
func edgeParam(e facegrid.Edge, u, v float64) float64 {
	if e == facegrid.EdgeU0 || e == facegrid.EdgeU1 {
		return v
	}
	return u
}

// pointOnEdge returns a UV point epsilon inside the face from edge e, at
// free-parameter p along that edge.
func pointOnEdge(e facegrid.Edge, p, epsilon float64) (u, v float64) {
	switch e {
	case facegrid.EdgeU0:
		return epsilon, p
	case facegrid.EdgeU1:
		return 1 - epsilon, p
	case facegrid.EdgeV0:
		return p, epsilon
	default: // EdgeV1
		return p, 1 - epsilon
	}
}

// touchingEdges returns the face-boundary edges (if any) that a node
// centered at (u,v) with half-extent half actually touches.
func touchingEdges(u, v, half float64) []facegrid.Edge {
	var edges []facegrid.Edge
	if u-half <= 0 {
		edges = append(edges, facegrid.EdgeU0)
	}
	if u+half >= 1 {
		edges = append(edges, facegrid.EdgeU1)
	}
	if v-half <= 0 {
		edges = append(edges, facegrid.EdgeV0)
	}
	if v+half >= 1 {
		edges = append(edges, facegrid.EdgeV1)
	}
	return edges
}

// neighborAcrossEdge locates the leaf adjacent to n across edge e, crossing
// to the neighboring cube face via facegrid's adjacency table when n's cell
// actually touches the face boundary on that side.
func (f *Forest) neighborAcrossEdge(n *QuadNode, e facegrid.Edge) *QuadNode {
	depth := chunkaddr.Depth(n.Addr.Path)
	u, v := chunkaddr.UV(n.Addr.Path)
	half := chunkaddr.HalfExtent(depth)
	epsilon := half * 0.01
	if epsilon <= 0 {
		epsilon = 1e-9
	}

	touches := false
	for _, te := range touchingEdges(u, v, half) {
		if te == e {
			touches = true
		}
	}

	if !touches {
		nu, nv := u, v
		switch e {
		case facegrid.EdgeU0:
			nu = u - half - epsilon
		case facegrid.EdgeU1:
			nu = u + half + epsilon
		case facegrid.EdgeV0:
			nv = v - half - epsilon
		default:
			nv = v + half + epsilon
		}
		return f.Faces[n.Addr.Face].LeafAt(nu, nv)
	}

	p := edgeParam(e, u, v)
	nb := facegrid.NeighborAcross(n.Addr.Face, e)
	if nb.Reversed {
		p = 1 - p
	}
	nu, nv := pointOnEdge(nb.Edge, p, epsilon)
	return f.Faces[nb.Face].LeafAt(nu, nv)
}

// NeighborAcross returns the address of the leaf adjacent to addr across
// edge e, crossing cube faces via facegrid's adjacency table where addr's
// cell actually touches that face boundary. Reports false if addr isn't a
// currently-indexed node.
func (f *Forest) NeighborAcross(addr chunkaddr.Address, e facegrid.Edge) (chunkaddr.Address, bool) {
	ft, ok := f.Faces[addr.Face]
	if !ok {
		return chunkaddr.Address{}, false
	}
	n, ok := ft.nodeAt(addr.Path)
	if !ok {
		return chunkaddr.Address{}, false
	}
	nb := f.neighborAcrossEdge(n, e)
	if nb == nil {
		return chunkaddr.Address{}, false
	}
	return nb.Addr, true
}

// IsCurrentLeaf reports whether addr still addresses a leaf node: false if
// it has since split into children or its parent merged it away.
func (f *Forest) IsCurrentLeaf(addr chunkaddr.Address) bool {
	ft, ok := f.Faces[addr.Face]
	if !ok {
		return false
	}
	return ft.IsLeafPath(addr.Path)
}

// Balance repeatedly splits leaves whose depth is more than one level
// shallower than an edge-adjacent leaf (on the same face or across a cube
// edge onto a neighboring face), until the 1-level invariant holds
// everywhere or maxPasses is exhausted. maxPasses bounds iteration since
// each pass can only increase depth, never decrease it, and depth is
// bounded by MaxDepth.
func (f *Forest) Balance(maxPasses int) {
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, ft := range f.Faces {
			for _, leaf := range ft.Leaves() {
				for _, e := range [4]facegrid.Edge{facegrid.EdgeU0, facegrid.EdgeU1, facegrid.EdgeV0, facegrid.EdgeV1} {
					nb := f.neighborAcrossEdge(leaf, e)
					if nb == nil {
						continue
					}
					leafDepth, nbDepth := chunkaddr.Depth(leaf.Addr.Path), chunkaddr.Depth(nb.Addr.Path)
					if leafDepth-nbDepth > 1 {
						f.Faces[nb.Addr.Face].Split(nb.Addr.Path)
						changed = true
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}
