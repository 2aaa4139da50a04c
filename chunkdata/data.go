// Package chunkdata implements LodChunkData, a palette-compressed
// resolution-aware voxel grid, plus Neighborhood, which the mesher needs
// for boundary face visibility and ambient occlusion.
package chunkdata

import "github.com/kestrelworks/planetlod/voxeltype"

// MaxLod is the deepest supported LOD level.
const MaxLod = 5

// BaseResolution is the voxel grid resolution at LOD 0.
const BaseResolution = 32

// ResolutionAt returns r = 32 >> lod for lod in [0, MaxLod].
func ResolutionAt(lod uint8) int {
	if lod > MaxLod {
		lod = MaxLod
	}
	return BaseResolution >> lod
}

// LodChunkData is a resolution r^3 voxel grid stored as a deduplicated
// palette plus per-voxel palette indices. Zero value is not
// usable; construct via New.
type LodChunkData struct {
	Lod        uint8
	resolution int
	palette    []voxeltype.Id
	paletteIdx map[voxeltype.Id]uint16
	indices    []uint16
}

// New creates an all-air chunk at the given LOD.
func New(lod uint8) *LodChunkData {
	r := ResolutionAt(lod)
	c := &LodChunkData{
		Lod:        lod,
		resolution: r,
		palette:    []voxeltype.Id{voxeltype.Air},
		paletteIdx: map[voxeltype.Id]uint16{voxeltype.Air: 0},
		indices:    make([]uint16, r*r*r),
	}
	return c
}

// Resolution returns r = 32 >> Lod.
func (c *LodChunkData) Resolution() int { return c.resolution }

func (c *LodChunkData) index(x, y, z int) int {
	r := c.resolution
	return x*r*r + y*r + z
}

// InBounds reports whether (x,y,z) is a valid local voxel coordinate.
func (c *LodChunkData) InBounds(x, y, z int) bool {
	r := c.resolution
	return x >= 0 && y >= 0 && z >= 0 && x < r && y < r && z < r
}

// Get returns the voxel type at local coordinates, or Air out of bounds.
func (c *LodChunkData) Get(x, y, z int) voxeltype.Id {
	if !c.InBounds(x, y, z) {
		return voxeltype.Air
	}
	return c.palette[c.indices[c.index(x, y, z)]]
}

// Set assigns a voxel type, growing the palette if this is a new type seen
// in this chunk. Out-of-bounds writes are ignored.
func (c *LodChunkData) Set(x, y, z int, id voxeltype.Id) {
	if !c.InBounds(x, y, z) {
		return
	}
	idx, ok := c.paletteIdx[id]
	if !ok {
		idx = uint16(len(c.palette))
		c.palette = append(c.palette, id)
		c.paletteIdx[id] = idx
	}
	c.indices[c.index(x, y, z)] = idx
}

// Fill sets every voxel in the chunk to a single type, collapsing the
// palette to one entry.
func (c *LodChunkData) Fill(id voxeltype.Id) {
	c.palette = []voxeltype.Id{id}
	c.paletteIdx = map[voxeltype.Id]uint16{id: 0}
	for i := range c.indices {
		c.indices[i] = 0
	}
}

// IsUniform reports whether every voxel shares one type, and returns it.
func (c *LodChunkData) IsUniform() (voxeltype.Id, bool) {
	if len(c.palette) == 1 {
		return c.palette[0], true
	}
	return 0, false
}

// PaletteSize returns the number of distinct voxel types in this chunk.
func (c *LodChunkData) PaletteSize() int { return len(c.palette) }

// EstimatedBytes approximates the memory this chunk occupies: one palette
// entry plus a packed index per voxel, sized to the smallest index width
// that fits the palette.
func (c *LodChunkData) EstimatedBytes() int64 {
	indexWidth := 1
	if len(c.palette) > 256 {
		indexWidth = 2
	}
	return int64(len(c.palette))*2 + int64(len(c.indices)*indexWidth)
}

// Neighborhood bundles a center chunk with its 26 neighbors (by relative
// offset) for boundary face visibility and ambient occlusion.
// A nil neighbor means "not loaded"; meshing treats that face as fully air.
type Neighborhood struct {
	Center    *LodChunkData
	Neighbors map[[3]int]*LodChunkData
}

// NewNeighborhood creates an (initially neighbor-less) neighborhood around
// center.
func NewNeighborhood(center *LodChunkData) *Neighborhood {
	return &Neighborhood{Center: center, Neighbors: make(map[[3]int]*LodChunkData, 26)}
}

// SetNeighbor installs the chunk adjacent to center at the given offset,
// each component in {-1, 0, 1} and not all zero.
func (n *Neighborhood) SetNeighbor(dx, dy, dz int, data *LodChunkData) {
	n.Neighbors[[3]int{dx, dy, dz}] = data
}

// At returns the voxel type at a coordinate that may fall outside the
// center chunk's bounds, by routing into the appropriate neighbor. Missing
// neighbors resolve to Air.
func (n *Neighborhood) At(x, y, z int) voxeltype.Id {
	r := n.Center.resolution
	if n.Center.InBounds(x, y, z) {
		return n.Center.Get(x, y, z)
	}

	dx, dy, dz := 0, 0, 0
	lx, ly, lz := x, y, z
	switch {
	case x < 0:
		dx, lx = -1, x+r
	case x >= r:
		dx, lx = 1, x-r
	}
	switch {
	case y < 0:
		dy, ly = -1, y+r
	case y >= r:
		dy, ly = 1, y-r
	}
	switch {
	case z < 0:
		dz, lz = -1, z+r
	case z >= r:
		dz, lz = 1, z-r
	}

	nb, ok := n.Neighbors[[3]int{dx, dy, dz}]
	if !ok || nb == nil {
		return voxeltype.Air
	}
	return nb.Get(lx, ly, lz)
}
