// Package planet ties every other package in this module into one
// per-frame control loop: rebase, horizon cull, quadtree update and
// balance, reschedule, evict, ingest finished work, tick transitions,
// classify representation, emit a draw list. It is the single entry point
// a renderer/windowing/networking collaborator (none of which live in
// this module, per the teacher's GL-bound pkg/render and pkg/network
// staying out of this GPU-free core) drives once per frame.
package planet

import (
	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/config"
	"github.com/kestrelworks/planetlod/coordspace"
	"github.com/kestrelworks/planetlod/facegrid"
	"github.com/kestrelworks/planetlod/internal/plog"
	"github.com/kestrelworks/planetlod/mesher"
	"github.com/kestrelworks/planetlod/planetmode"
	"github.com/kestrelworks/planetlod/quadtree"
	"github.com/kestrelworks/planetlod/schedule"
	"github.com/kestrelworks/planetlod/seam"
	"github.com/kestrelworks/planetlod/store"
	"github.com/kestrelworks/planetlod/terrain"
	"github.com/kestrelworks/planetlod/transition"
	"github.com/kestrelworks/planetlod/voxeltype"
	"github.com/kestrelworks/planetlod/worker"
)

// BaseVoxelSizeMM is the edge length, in millimeters, of a single LOD-0
// voxel.
const BaseVoxelSizeMM = 1000

// Camera is the external collaborator providing per-frame view state. Its
// implementation (windowing/input) lives outside this module.
type Camera interface {
	WorldPosition() coordspace.WorldPosition
	ForwardDirWorld() [3]float64 // unit vector, world space

	// Frustum returns the camera's view volume for the given half-angle
	// (radians), used to cull chunks outside the visible cone.
	Frustum(halfAngleRad float64) Frustum
	// AltitudeAbove returns the camera's height above centerMM's surface
	// at radiusMM, i.e. distance(WorldPosition(), centerMM) - radiusMM.
	AltitudeAbove(centerMM coordspace.WorldPosition, radiusMM float64) float64
}

// Planet is the aggregate root: one cubesphere planet's LOD state.
type Planet struct {
	cfg config.PlanetConfig
	log *plog.Logger

	space   *coordspace.Space
	forest  *quadtree.Forest
	queue   *schedule.Queue
	tracker *store.Tracker
	chunks  *store.Store
	trans   *transition.Manager
	pool    *worker.Pool
	mesher  *mesher.GreedyMesher
	seamFix *seam.Fixer
	sampler terrain.Sampler

	planetCenter coordspace.WorldPosition
	radiusMM     float64
	thresholds   quadtree.LodThresholds

	generation uint64

	impostor    *planetmode.ImpostorState
	sunDirWorld [3]float64
}

// New constructs a Planet centered at planetCenter with the given radius
// (millimeters), sampled by sampler, governed by cfg.
func New(cfg config.PlanetConfig, planetCenter coordspace.WorldPosition, radiusMM float64, sampler terrain.Sampler, reg voxeltype.Registry) *Planet {
	voxelTracker := store.NewTracker(cfg.VoxelBudgetBytes + cfg.MeshBudgetBytes)
	trans := transition.NewManager(cfg.CrossfadeDuration)
	chunks := store.NewStore(voxelTracker)
	chunks.SetTransitionChecker(trans)

	return &Planet{
		cfg:          cfg,
		log:          plog.New("[planet] ", cfg.Verbose),
		space:        coordspace.NewSpace(planetCenter, cfg.RebaseThresholdMM),
		forest:       quadtree.NewForest(cfg.MaxDepth),
		queue:        schedule.NewQueue(),
		tracker:      voxelTracker,
		chunks:       chunks,
		trans:        trans,
		pool:         worker.NewPool(cfg.WorkerCount, 256, 2),
		mesher:       mesher.NewGreedyMesher(reg),
		seamFix:      seam.NewFixer(),
		sampler:      sampler,
		planetCenter: planetCenter,
		radiusMM:     radiusMM,
		thresholds:   defaultLodThresholds(radiusMM, cfg.MaxDepth),
		sunDirWorld:  [3]float64{0, 1, 0},
	}
}

// SetSunDirWorld updates the directional light vector Update uses to judge
// whether a captured Impostor snapshot has gone stale. Lighting itself is
// owned by a renderer outside this module; Planet only needs to know when
// the sun has moved enough that a cached impostor texture no longer
// matches.
func (p *Planet) SetSunDirWorld(dir [3]float64) {
	p.sunDirWorld = dir
}

// defaultLodThresholds spaces split/merge distance boundaries geometrically
// relative to planet radius, finest near the surface.
func defaultLodThresholds(radiusMM float64, maxDepth uint8) quadtree.LodThresholds {
	thresholds := make([]float64, maxDepth)
	for d := range thresholds {
		// Depth d's boundary shrinks by half each level deeper, anchored at
		// one planet radius for the shallowest split.
		shrink := 1.0
		for i := 0; i < d; i++ {
			shrink /= 2
		}
		thresholds[d] = radiusMM * shrink
	}
	return quadtree.LodThresholds{Thresholds: thresholds}
}

// Close releases the Planet's worker pool.
func (p *Planet) Close() {
	p.pool.Close()
}

// RebaseDelta is how far the camera-relative origin moved during a rebase
// (new origin minus old origin), in millimeters.
type RebaseDelta = coordspace.Vec3I128

func chunkCenterWorldMM(face facegrid.Face, path uint64, planetCenter coordspace.WorldPosition, radiusMM float64) (x, y, z float64) {
	u, v := chunkaddr.UV(path)
	dx, dy, dz := seam.Displace(face, u, v, radiusMM)
	cx := planetCenter.X.ToFloat64()
	cy := planetCenter.Y.ToFloat64()
	cz := planetCenter.Z.ToFloat64()
	return cx + dx, cy + dy, cz + dz
}

func worldPosToFloat3(p coordspace.WorldPosition) (x, y, z float64) {
	return p.X.ToFloat64(), p.Y.ToFloat64(), p.Z.ToFloat64()
}
