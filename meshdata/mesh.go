// Package meshdata defines ChunkMesh, the packed vertex/index buffers the
// greedy mesher and seam fixer produce and the (external) renderer
// consumes.
package meshdata

import "github.com/go-gl/mathgl/mgl32"

// Direction indexes the six cardinal face normals, stored per-vertex as a
// single byte instead of a packed float triple.
type Direction uint8

const (
	DirPosX Direction = iota
	DirNegX
	DirPosY
	DirNegY
	DirPosZ
	DirNegZ
)

// Normal returns the unit vector for a packed direction.
func (d Direction) Normal() mgl32.Vec3 {
	switch d {
	case DirPosX:
		return mgl32.Vec3{1, 0, 0}
	case DirNegX:
		return mgl32.Vec3{-1, 0, 0}
	case DirPosY:
		return mgl32.Vec3{0, 1, 0}
	case DirNegY:
		return mgl32.Vec3{0, -1, 0}
	case DirPosZ:
		return mgl32.Vec3{0, 0, 1}
	case DirNegZ:
		return mgl32.Vec3{0, 0, -1}
	default:
		return mgl32.Vec3{}
	}
}

// PackedVertex is a 12-byte-per-vertex layout: position (3 bytes), normal
// index (1 byte), ambient occlusion (2 bits, byte-padded), material id (2
// bytes), uv (2 bytes), and 3 bytes of padding reserved for a future
// attribute.
type PackedVertex struct {
	X, Y, Z    uint8
	NormalIdx  Direction
	AO         uint8 // 0..3
	MaterialID uint16
	U, V       uint8
}

// Bytes serializes a vertex to the literal 12-byte wire layout.
func (v PackedVertex) Bytes() [12]byte {
	var b [12]byte
	b[0], b[1], b[2] = v.X, v.Y, v.Z
	b[3] = uint8(v.NormalIdx)
	b[4] = v.AO & 0b11
	b[5] = uint8(v.MaterialID)
	b[6] = uint8(v.MaterialID >> 8)
	b[7] = v.U
	b[8] = v.V
	// b[9..11] left zero: reserved padding.
	return b
}

// DisplacedVertex holds the f64-derived world-space position for a
// planetary mesh's vertex, computed by the cubesphere displacement in the
// seam fixer. Stored parallel to PackedVertex rather than
// inline since flat chunk meshes (non-planetary use, e.g. unit tests) don't
// need it.
type DisplacedVertex struct {
	WorldX, WorldY, WorldZ float32
}

// ChunkMesh is the output of greedy meshing plus seam fixing: packed
// vertices, their optional planetary displacement, and an index buffer.
// Indices are uint32 when the vertex count exceeds uint16 range.
type ChunkMesh struct {
	Vertices   []PackedVertex
	Displaced  []DisplacedVertex // empty if not a planetary mesh
	Indices16  []uint16          // used when len(Vertices) <= 65536
	Indices32  []uint32          // used otherwise
	TriCount   int
}

// NewChunkMesh returns an empty mesh ready for AddQuad calls.
func NewChunkMesh() *ChunkMesh {
	return &ChunkMesh{}
}

// AddQuad appends four vertices (counter-clockwise) and the two triangles
// spanning them, choosing 16- or 32-bit indices based on the vertex count
// after this quad is added.
func (m *ChunkMesh) AddQuad(v0, v1, v2, v3 PackedVertex) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v0, v1, v2, v3)
	m.addTriangleIndices(base)
}

// AddQuadDisplaced is AddQuad plus the parallel f64-derived world position
// for each of the four vertices.
func (m *ChunkMesh) AddQuadDisplaced(v0, v1, v2, v3 PackedVertex, d0, d1, d2, d3 DisplacedVertex) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v0, v1, v2, v3)
	m.Displaced = append(m.Displaced, d0, d1, d2, d3)
	m.addTriangleIndices(base)
}

func (m *ChunkMesh) addTriangleIndices(base uint32) {
	// Diagonal flip: by default split 0-1-2 / 0-2-3; callers
	// that need the alternate split call AddQuadFlipped instead.
	idx := [6]uint32{base, base + 1, base + 2, base, base + 2, base + 3}
	m.appendIndices(idx)
	m.TriCount += 2
}

// AddQuadFlipped is AddQuad but splits the quad along the 1-3 diagonal
// instead of 0-2, used when ao[0]+ao[2] > ao[1]+ao[3].
func (m *ChunkMesh) AddQuadFlipped(v0, v1, v2, v3 PackedVertex) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v0, v1, v2, v3)
	idx := [6]uint32{base, base + 1, base + 3, base + 1, base + 2, base + 3}
	m.appendIndices(idx)
	m.TriCount += 2
}

func (m *ChunkMesh) appendIndices(idx [6]uint32) {
	if len(m.Indices32) > 0 || idx[5] > 65535 {
		if len(m.Indices32) == 0 && len(m.Indices16) > 0 {
			// Migrate previously-16-bit indices up to 32-bit.
			m.Indices32 = make([]uint32, len(m.Indices16))
			for i, v := range m.Indices16 {
				m.Indices32[i] = uint32(v)
			}
			m.Indices16 = nil
		}
		m.Indices32 = append(m.Indices32, idx[:]...)
		return
	}
	for _, v := range idx {
		m.Indices16 = append(m.Indices16, uint16(v))
	}
}

// EstimatedBytes approximates GPU memory usage: 12 bytes/vertex plus
// optional 12-byte displaced positions plus 2 or 4 bytes/index.
func (m *ChunkMesh) EstimatedBytes() int64 {
	n := int64(len(m.Vertices)) * 12
	if len(m.Displaced) > 0 {
		n += int64(len(m.Displaced)) * 12
	}
	n += int64(len(m.Indices16)) * 2
	n += int64(len(m.Indices32)) * 4
	return n
}
