package planet

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/chunkdata"
	"github.com/kestrelworks/planetlod/facegrid"
	"github.com/kestrelworks/planetlod/horizon"
	"github.com/kestrelworks/planetlod/meshdata"
	"github.com/kestrelworks/planetlod/planetmode"
	"github.com/kestrelworks/planetlod/quadtree"
	"github.com/kestrelworks/planetlod/schedule"
	"github.com/kestrelworks/planetlod/seam"
	"github.com/kestrelworks/planetlod/store"
	"github.com/kestrelworks/planetlod/worker"
)

// skirtDepthVoxels is how far (in local voxel units) AddSkirts drops its
// fallback seal geometry below a chunk-boundary quad.
const skirtDepthVoxels = 2

// buildResult is what a terrain-generation-plus-mesh job produces;
// worker.Result.Payload carries one of these.
type buildResult struct {
	voxels *chunkdata.LodChunkData
	mesh   *meshdata.ChunkMesh
}

// Update runs one frame of the control loop:
// rebase -> horizon cull -> quadtree split/merge + balance -> reschedule ->
// evict -> submit/ingest work -> tick transitions -> classify -> draw list.
func (p *Planet) Update(cam Camera, dt float32) (draws []DrawCommand, rebase RebaseDelta, rebased bool) {
	camPos := cam.WorldPosition()
	rebase, rebased = p.space.RebaseIfNeeded(camPos)
	if rebased {
		p.log.Debugf("rebased origin by %+v", rebase)
	}

	cx, cy, cz := worldPosToFloat3(p.planetCenter)
	px, py, pz := worldPosToFloat3(camPos)
	camVec := mgl64.Vec3{px, py, pz}
	altitude := cam.AltitudeAbove(p.planetCenter, p.radiusMM)

	culler := horizon.NewCuller(mgl64.Vec3{cx, cy, cz}, p.radiusMM)
	sel := planetmode.Select(altitude, p.radiusMM, p.cfg.PlanetThresholds)

	forward := cam.ForwardDirWorld()
	forwardVec := mgl64.Vec3{forward[0], forward[1], forward[2]}
	frustum := cam.Frustum(DefaultFrustumHalfAngleRad)

	p.updateQuadtrees(camVec)
	p.forest.Balance(8)

	p.scheduleLeaves(camVec, forwardVec, culler, frustum)
	p.chunks.EvictOverBudget()
	p.submitWork()
	p.ingestCompletedWork()
	for _, addr := range p.trans.Tick(dt) {
		p.chunks.ClearOldMesh(addr)
	}

	p.generation++
	return p.buildDrawList(sel, frustum, forward), rebase, rebased
}

// updateQuadtrees drives each face's split/merge decisions from camera
// distance to each leaf's chunk center, per LodThresholds.
func (p *Planet) updateQuadtrees(camVec mgl64.Vec3) {
	for _, ft := range p.forest.Faces {
		for _, leaf := range ft.Leaves() {
			wx, wy, wz := chunkCenterWorldMM(leaf.Addr.Face, leaf.Addr.Path, p.planetCenter, p.radiusMM)
			d := camVec.Sub(mgl64.Vec3{wx, wy, wz}).Len()
			depth := chunkaddr.Depth(leaf.Addr.Path)
			desired := p.thresholds.DesiredDepth(d)

			switch {
			case desired > depth && depth < int(p.cfg.MaxDepth):
				ft.Split(leaf.Addr.Path)
			case desired < depth:
				parent, _ := chunkaddr.Ascend(leaf.Addr.Path)
				ft.Merge(parent)
			}
		}
	}
}

// scheduleLeaves recomputes a priority for every horizon-visible leaf and
// pushes it into the scheduling queue. Leaves beyond GenerationRadiusChunks
// and not already resident are skipped entirely: they bound the
// ahead-of-camera load horizon rather than contending for scheduling.
func (p *Planet) scheduleLeaves(camVec, forwardVec mgl64.Vec3, culler *horizon.Culler, frustum Frustum) {
	maxLod := p.cfg.MaxDepth
	genRadiusMM := float64(p.cfg.GenerationRadiusChunks) * float64(chunkdata.BaseResolution) * BaseVoxelSizeMM
	genRadiusSqMM := genRadiusMM * genRadiusMM

	for _, ft := range p.forest.Faces {
		for _, leaf := range ft.Leaves() {
			wx, wy, wz := chunkCenterWorldMM(leaf.Addr.Face, leaf.Addr.Path, p.planetCenter, p.radiusMM)
			center := mgl64.Vec3{wx, wy, wz}

			chunkRadius := chunkBoundingRadiusMM(leaf.Addr.Lod, p.radiusMM, p.cfg.MaxDepth)
			sphere := horizon.Sphere{Center: center, Radius: chunkRadius}
			if culler.IsOccluded(camVec, sphere) {
				continue
			}

			delta := center.Sub(camVec)
			distSq := delta.Dot(delta)

			if distSq > genRadiusSqMM {
				if _, resident := p.chunks.Get(leaf.Addr); !resident {
					continue
				}
			}

			forwardDot := 0.0
			if distSq > 0 {
				forwardDot = delta.Normalize().Dot(forwardVec)
			}
			inFrustum := frustum.Intersects(sphere)

			score := schedule.Score(distSq, leaf.Addr.Lod, maxLod, inFrustum, forwardDot, schedule.DefaultWeights)
			p.queue.Push(leaf.Addr, score)
			p.chunks.UpdatePriority(leaf.Addr, score)
		}
	}
}

// chunkBoundingRadiusMM approximates a leaf's world-space bounding sphere
// radius from its quadtree depth: a face spans 2*planetRadiusMM in cube
// space, halved at each split.
func chunkBoundingRadiusMM(lod uint8, radiusMM float64, maxDepth uint8) float64 {
	depth := int(maxDepth) - int(lod)
	half := radiusMM
	for i := 0; i < depth; i++ {
		half /= 2
	}
	return half
}

// submitWork pops addresses off the scheduling queue and submits a build
// job for any that aren't already resident at the right LOD or already
// mid-transition, until IngestCapPerFrame jobs have been submitted or the
// queue is empty. Skipped addresses and jobs TrySubmit rejects don't count
// toward the cap.
func (p *Planet) submitWork() {
	submitted := 0
	for submitted < p.cfg.IngestCapPerFrame {
		addr, ok := p.queue.Pop()
		if !ok {
			return
		}
		if p.trans.IsTransitioning(addr) {
			continue
		}
		if entry, resident := p.chunks.Get(addr); resident && entry.Voxels != nil && entry.Voxels.Lod == addr.Lod {
			continue
		}

		if p.pool.TrySubmit(p.buildJob(addr)) {
			submitted++
		}
	}
}

// tangentEdges maps each of a chunk's four tangent-plane (UV) neighbor
// directions to the quadtree edge that bounds it and the chunkdata.
// Neighborhood offset that direction corresponds to under
// generatePlanetChunk's lx->u, lz->v convention. The radial (Y) directions
// have no neighbor chunk: a column chunk spans its own full local depth,
// so DirPosY/DirNegY always keep a zero delta and an unset neighbor.
var tangentEdges = [4]struct {
	edge       facegrid.Edge
	dir        meshdata.Direction
	dx, dy, dz int
}{
	{facegrid.EdgeU0, meshdata.DirNegX, -1, 0, 0},
	{facegrid.EdgeU1, meshdata.DirPosX, 1, 0, 0},
	{facegrid.EdgeV0, meshdata.DirNegZ, 0, 0, -1},
	{facegrid.EdgeV1, meshdata.DirPosZ, 0, 0, 1},
}

// wireNeighbors installs the same-LOD resident chunks adjacent to addr (if
// any) into nb, so boundary-face occlusion and ambient occlusion see real
// neighbor data instead of treating every chunk edge as open air. A
// neighbor at a different LOD is left unset: seam.FixMesh's T-junction
// constraining (driven by neighborLodDeltas below) is what actually
// reconciles those boundaries, not per-voxel occlusion sampling.
func wireNeighbors(nb *chunkdata.Neighborhood, forest *quadtree.Forest, chunks *store.Store, addr chunkaddr.Address) {
	for _, te := range tangentEdges {
		nbAddr, ok := forest.NeighborAcross(addr, te.edge)
		if !ok || nbAddr.Lod != addr.Lod {
			continue
		}
		entry, resident := chunks.Get(nbAddr)
		if !resident || entry.Voxels == nil {
			continue
		}
		nb.SetNeighbor(te.dx, te.dy, te.dz, entry.Voxels)
	}
}

// neighborLodDeltas computes the real per-direction coarser-neighbor
// deltas seam.FixMesh needs to eliminate T-junctions at LOD boundaries,
// by asking the quadtree forest what currently borders addr on each
// tangent side. The balance invariant guarantees a delta of at most 1.
func neighborLodDeltas(forest *quadtree.Forest, addr chunkaddr.Address) seam.NeighborLodDelta {
	var deltas seam.NeighborLodDelta
	depth := chunkaddr.Depth(addr.Path)
	for _, te := range tangentEdges {
		nbAddr, ok := forest.NeighborAcross(addr, te.edge)
		if !ok {
			continue
		}
		if nbDepth := chunkaddr.Depth(nbAddr.Path); depth > nbDepth {
			deltas[te.dir] = depth - nbDepth
		}
	}
	return deltas
}

// buildJob closes over the immutable planet-level collaborators a build
// needs, so Run can execute on a worker goroutine without touching Planet
// state directly.
func (p *Planet) buildJob(addr chunkaddr.Address) worker.Job {
	planetCenter := p.planetCenter
	radiusMM := p.radiusMM
	sampler := p.sampler
	gm := p.mesher
	fx := p.seamFix
	forest := p.forest
	chunks := p.chunks

	return worker.Job{
		Addr:       addr,
		Generation: p.generation,
		Run: func() (worker.Result, error) {
			data := generatePlanetChunk(sampler, addr, radiusMM)
			nb := chunkdata.NewNeighborhood(data)
			wireNeighbors(nb, forest, chunks, addr)
			mesh := gm.Mesh(nb)
			fx.FixMesh(mesh, data.Resolution(), neighborLodDeltas(forest, addr))
			fx.AddSkirts(mesh, data.Resolution(), skirtDepthVoxels)
			displaceMesh(mesh, addr, data.Resolution(), planetCenter, radiusMM)
			return worker.Result{Addr: addr, Payload: buildResult{voxels: data, mesh: mesh}}, nil
		},
	}
}

// ingestCompletedWork drains finished build jobs, stores their results, and
// starts a fade-in transition (from and to the same LOD) for any address
// that had no resident entry. The store is keyed by the full address, LOD
// included, so a resident entry's LOD always equals a fresh build's:
// lodChanged is never true, no OldMesh is carried forward, and a chunk is
// not crossfaded against the parent or child chunks it replaces. A job
// whose address is no longer a current quadtree leaf (its chunk split or
// merged away while the build was in flight) is discarded: installing it
// would resurrect a desired LOD the scheduler has already abandoned.
func (p *Planet) ingestCompletedWork() {
	outcomes := p.pool.Drain(p.cfg.IngestCapPerFrame)
	for _, o := range outcomes {
		if o.Err != nil {
			p.log.Warnf("build job for %+v failed: %v", o.Result.Addr, o.Err)
			continue
		}
		res, ok := o.Result.Payload.(buildResult)
		if !ok {
			continue
		}
		if !p.forest.IsCurrentLeaf(o.Result.Addr) {
			p.log.Debugf("discarding stale build for %+v: no longer a current leaf", o.Result.Addr)
			continue
		}

		old, hadOld := p.chunks.Get(o.Result.Addr)
		lodChanged := hadOld && old.Voxels != nil && old.Voxels.Lod != res.voxels.Lod

		entry := &store.Entry{
			Voxels:   res.voxels,
			Mesh:     res.mesh,
			Priority: 0,
		}
		if lodChanged {
			entry.OldMesh = old.Mesh
		}
		if err := p.chunks.Put(o.Result.Addr, entry); err != nil {
			p.log.Warnf("store put for %+v: %v", o.Result.Addr, err)
			continue
		}

		if lodChanged {
			p.trans.OnLodChanged(o.Result.Addr, old.Voxels.Lod, res.voxels.Lod)
		} else if !hadOld {
			p.trans.OnLodChanged(o.Result.Addr, res.voxels.Lod, res.voxels.Lod)
		}
	}
}
