package planet

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kestrelworks/planetlod/config"
	"github.com/kestrelworks/planetlod/coordspace"
	"github.com/kestrelworks/planetlod/voxeltype"
)

type stubCamera struct {
	pos coordspace.WorldPosition
}

func (c stubCamera) WorldPosition() coordspace.WorldPosition { return c.pos }
func (c stubCamera) ForwardDirWorld() [3]float64             { return [3]float64{0, 0, -1} }

func (c stubCamera) Frustum(halfAngleRad float64) Frustum {
	x, y, z := worldPosToFloat3(c.pos)
	return NewFrustum(mgl64.Vec3{x, y, z}, c.ForwardDirWorld(), halfAngleRad)
}

func (c stubCamera) AltitudeAbove(centerMM coordspace.WorldPosition, radiusMM float64) float64 {
	cx, cy, cz := worldPosToFloat3(c.pos)
	ox, oy, oz := worldPosToFloat3(centerMM)
	dx, dy, dz := cx-ox, cy-oy, cz-oz
	return math.Sqrt(dx*dx+dy*dy+dz*dz) - radiusMM
}

type flatSampler struct{ radiusMM float64 }

func (s flatSampler) Sample(wx, wy, wz int64) voxeltype.Id {
	x, y, z := float64(wx), float64(wy), float64(wz)
	if x*x+y*y+z*z <= s.radiusMM*s.radiusMM {
		return 1
	}
	return voxeltype.Air
}

func newTestPlanet(t *testing.T) *Planet {
	t.Helper()
	cfg, err := config.New(config.PlanetConfig{MaxDepth: 2, WorkerCount: 2})
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	reg := voxeltype.NewStaticRegistry(map[voxeltype.Id]voxeltype.Properties{
		1: {Solid: true},
	})
	const radiusMM = 1_000_000.0
	p := New(cfg, coordspace.WorldPosition{}, radiusMM, flatSampler{radiusMM: radiusMM}, reg)
	t.Cleanup(p.Close)
	return p
}

func TestUpdateRunsWithoutPanicking(t *testing.T) {
	p := newTestPlanet(t)
	cam := stubCamera{pos: coordspace.WorldPosition{
		X: coordspace.FromInt64(0),
		Y: coordspace.FromInt64(0),
		Z: coordspace.FromInt64(1_005_000),
	}}

	for i := 0; i < 5; i++ {
		p.Update(cam, 1.0/60)
		time.Sleep(time.Millisecond) // let worker goroutines finish a round
	}
}

func TestUpdateEventuallyProducesDrawCommands(t *testing.T) {
	p := newTestPlanet(t)
	cam := stubCamera{pos: coordspace.WorldPosition{
		X: coordspace.FromInt64(0),
		Y: coordspace.FromInt64(0),
		Z: coordspace.FromInt64(1_005_000),
	}}

	var draws []DrawCommand
	for i := 0; i < 20; i++ {
		draws, _, _ = p.Update(cam, 1.0/60)
		if len(draws) > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected at least one draw command after 20 frames, got 0")
}
