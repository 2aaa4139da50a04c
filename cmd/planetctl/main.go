// Command planetctl drives a planet.Planet for a fixed number of frames
// along a scripted orbital camera path with no renderer attached, logging
// the draw-list size every 30 frames and each rebase event. Budget totals
// are not logged.
// It exists to exercise the core LOD loop headlessly.
package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kestrelworks/planetlod/config"
	"github.com/kestrelworks/planetlod/coordspace"
	"github.com/kestrelworks/planetlod/planet"
	"github.com/kestrelworks/planetlod/voxeltype"
)

func main() {
	frames := flag.Int("frames", 300, "number of simulated frames to run")
	radiusKM := flag.Float64("radius", 6371, "planet radius, kilometers")
	startAltKM := flag.Float64("altitude", 50, "starting camera altitude above the surface, kilometers")
	climbKMPerSec := flag.Float64("climb", 40, "camera climb rate, kilometers/second")
	orbitDegPerSec := flag.Float64("orbit", 6, "camera orbital rate, degrees/second")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	radiusMM := *radiusKM * 1e6
	cfg, err := config.New(config.PlanetConfig{Verbose: *verbose})
	if err != nil {
		fmt.Println("invalid config:", err)
		return
	}

	center := coordspace.WorldPosition{}
	reg := voxeltype.NewStaticRegistry(map[voxeltype.Id]voxeltype.Properties{
		rock:  {Solid: true},
		soil:  {Solid: true},
		water: {Solid: false, Transparent: true},
	})
	p := planet.New(cfg, center, radiusMM, heightmapSampler{radiusMM: radiusMM}, reg)
	defer p.Close()

	cam := &orbitCamera{
		radiusMM:    radiusMM,
		altitudeMM:  *startAltKM * 1e6,
		climbMMPerS: *climbKMPerSec * 1e6,
		orbitRadPerS: *orbitDegPerSec * math.Pi / 180,
	}

	const dt float32 = 1.0 / 60
	start := time.Now()
	for i := 0; i < *frames; i++ {
		cam.advance(dt)
		draws, delta, rebased := p.Update(cam, dt)
		if rebased {
			fmt.Printf("frame %d: rebase origin by %+v\n", i, delta)
		}
		if i%30 == 0 {
			fmt.Printf("frame %d: altitude=%.1fkm draws=%d\n", i, cam.altitudeMM/1e6, len(draws))
		}
	}
	fmt.Printf("ran %d frames in %s\n", *frames, time.Since(start))
}

const (
	rock voxeltype.Id = iota + 1
	soil
	water
)

// heightmapSampler is a deterministic sine-wave surface, the same texture
// of terrain the teacher's singleplayer demo world fills its chunks with,
// evaluated across a sphere's tangent-plane coordinates instead of a flat
// grid.
type heightmapSampler struct {
	radiusMM float64
}

func (s heightmapSampler) Sample(wx, wy, wz int64) voxeltype.Id {
	x, y, z := float64(wx), float64(wy), float64(wz)
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return rock
	}
	lat := math.Asin(z / r)
	lon := math.Atan2(y, x)

	reliefMM := (math.Sin(lon*6)*3 + math.Cos(lat*9)*2) * 1e6 // a few km of relief
	surfaceR := s.radiusMM + reliefMM

	switch {
	case r > surfaceR:
		return voxeltype.Air
	case r > surfaceR-5e6:
		return soil
	case r > s.radiusMM-2e6:
		return water
	default:
		return rock
	}
}

// orbitCamera climbs radially while circling the planet at a fixed
// angular rate, enough to exercise every LOD transition from ground level
// out to orbit without any real input handling.
type orbitCamera struct {
	radiusMM     float64
	altitudeMM   float64
	climbMMPerS  float64
	orbitRadPerS float64
	angleRad     float64
}

func (c *orbitCamera) advance(dt float32) {
	c.altitudeMM += c.climbMMPerS * float64(dt)
	c.angleRad += c.orbitRadPerS * float64(dt)
}

func (c *orbitCamera) WorldPosition() coordspace.WorldPosition {
	r := c.radiusMM + c.altitudeMM
	x := r * math.Cos(c.angleRad)
	y := r * math.Sin(c.angleRad) * 0.3 // a shallow inclination
	z := r * math.Sin(c.angleRad)
	return coordspace.WorldPosition{
		X: coordspace.FromInt64(int64(x)),
		Y: coordspace.FromInt64(int64(y)),
		Z: coordspace.FromInt64(int64(z)),
	}
}

func (c *orbitCamera) ForwardDirWorld() [3]float64 {
	// Faces toward the planet center.
	p := c.WorldPosition()
	x, y, z := -p.X.ToFloat64(), -p.Y.ToFloat64(), -p.Z.ToFloat64()
	n := math.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return [3]float64{0, 0, -1}
	}
	return [3]float64{x / n, y / n, z / n}
}

func (c *orbitCamera) Frustum(halfAngleRad float64) planet.Frustum {
	p := c.WorldPosition()
	apex := mgl64.Vec3{p.X.ToFloat64(), p.Y.ToFloat64(), p.Z.ToFloat64()}
	return planet.NewFrustum(apex, c.ForwardDirWorld(), halfAngleRad)
}

func (c *orbitCamera) AltitudeAbove(centerMM coordspace.WorldPosition, radiusMM float64) float64 {
	p := c.WorldPosition()
	dx := p.X.ToFloat64() - centerMM.X.ToFloat64()
	dy := p.Y.ToFloat64() - centerMM.Y.ToFloat64()
	dz := p.Z.ToFloat64() - centerMM.Z.ToFloat64()
	return math.Sqrt(dx*dx+dy*dy+dz*dz) - radiusMM
}
