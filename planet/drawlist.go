package planet

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/horizon"
	"github.com/kestrelworks/planetlod/meshdata"
	"github.com/kestrelworks/planetlod/planetmode"
	"github.com/kestrelworks/planetlod/store"
)

func sphereAt(x, y, z, radius float64) horizon.Sphere {
	return horizon.Sphere{Center: mgl64.Vec3{x, y, z}, Radius: radius}
}

// DrawCommand is one resident chunk's mesh plus the blend state a renderer
// needs to composite it correctly: the crossfade between a chunk's old and
// new LOD mesh, and (in HybridTerrainSphere) the fade toward the geometric
// sphere representation.
type DrawCommand struct {
	Addr chunkaddr.Address
	Mesh *meshdata.ChunkMesh
	// OldMesh is the outgoing representation during a crossfade, blended
	// out at AlphaOld while Mesh fades in at AlphaNew. Nil once the chunk
	// is stable at a single LOD.
	OldMesh *meshdata.ChunkMesh
	Mode    planetmode.Mode
	Blend   float64 // 0 = full voxel terrain, 1 = full geometric sphere

	// AlphaOld/AlphaNew are the chunk's own LOD crossfade weights; they are
	// (0, 1) when the chunk isn't mid-transition.
	AlphaOld, AlphaNew float32

	// ImpostorRecapture is set only in Impostor mode: true when the
	// cached view/sun snapshot has drifted past its threshold and the
	// renderer must re-render the impostor texture before drawing it.
	ImpostorRecapture bool
}

// buildDrawList emits per-frame draw state for sel.Mode: one command per
// resident, frustum-visible, meshed chunk at VoxelTerrain or
// HybridTerrainSphere distance; a single recapture-flagged command in
// Impostor mode; nothing in GeometricSphere, which has no per-chunk detail
// and whose plain sphere a renderer draws by watching Selection.Mode
// itself.
func (p *Planet) buildDrawList(sel planetmode.Selection, frustum Frustum, forwardDirWorld [3]float64) []DrawCommand {
	switch sel.Mode {
	case planetmode.VoxelTerrain, planetmode.HybridTerrainSphere:
		return p.buildTerrainDrawList(sel, frustum)
	case planetmode.Impostor:
		return p.buildImpostorDrawList(forwardDirWorld)
	default: // GeometricSphere
		return nil
	}
}

func (p *Planet) buildTerrainDrawList(sel planetmode.Selection, frustum Frustum) []DrawCommand {
	var draws []DrawCommand
	p.chunks.Range(func(addr chunkaddr.Address, e *store.Entry) {
		if e.Mesh == nil || len(e.Mesh.Vertices) == 0 {
			return
		}

		wx, wy, wz := chunkCenterWorldMM(addr.Face, addr.Path, p.planetCenter, p.radiusMM)
		radius := chunkBoundingRadiusMM(addr.Lod, p.radiusMM, p.cfg.MaxDepth)
		if !frustum.Intersects(sphereAt(wx, wy, wz, radius)) {
			return
		}

		alphaOld, alphaNew := p.trans.CrossfadeAlphas(addr)
		draws = append(draws, DrawCommand{
			Addr:     addr,
			Mesh:     e.Mesh,
			OldMesh:  e.OldMesh,
			Mode:     sel.Mode,
			Blend:    sel.Blend,
			AlphaOld: alphaOld,
			AlphaNew: alphaNew,
		})
	})
	return draws
}

// buildImpostorDrawList updates the impostor capture state against the
// camera's current forward direction and this Planet's tracked sun
// direction, (re)capturing when either has drifted too far, and emits the
// single draw command a renderer needs to know whether to re-render the
// cached impostor texture this frame.
func (p *Planet) buildImpostorDrawList(forwardDirWorld [3]float64) []DrawCommand {
	recapture := p.impostor == nil
	if !recapture {
		recapture = p.impostor.NeedsRecapture(forwardDirWorld, p.sunDirWorld)
	}
	if recapture {
		state := planetmode.NewImpostorState(forwardDirWorld, p.sunDirWorld)
		p.impostor = &state
	}
	return []DrawCommand{{Mode: planetmode.Impostor, ImpostorRecapture: recapture}}
}
