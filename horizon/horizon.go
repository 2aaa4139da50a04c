// Package horizon implements conservative horizon occlusion culling for a
// spherical planet: a chunk is only culled when its entire bounding sphere
// provably lies beyond the curvature horizon as seen from the camera.
package horizon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is a bounding sphere in planet-centered float64 space.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Culler tests chunk bounding spheres against a planet's curvature
// horizon as seen from a camera position.
type Culler struct {
	PlanetCenter mgl64.Vec3
	PlanetRadius float64
}

// NewCuller creates a horizon culler for a sphere of the given radius
// centered at center.
func NewCuller(center mgl64.Vec3, radius float64) *Culler {
	return &Culler{PlanetCenter: center, PlanetRadius: radius}
}

// IsOccluded reports whether target is provably entirely hidden behind the
// planet's curvature as seen from camera. This is the classic radio-horizon
// mutual-visibility test between two points above a sphere: two points at
// angular half-angles alphaC, alphaP from the tangent direction can see
// each other exactly when the angle between them (measured at the planet
// center) is at most alphaC+alphaP. The target's bounding radius inflates
// that budget so the test only ever culls a sphere that is fully beyond
// the horizon, never one that merely pokes over it.
func (c *Culler) IsOccluded(camera mgl64.Vec3, target Sphere) bool {
	co := camera.Sub(c.PlanetCenter)
	l := co.Len()
	if l <= c.PlanetRadius {
		return false // camera at or below the reference surface: never cull
	}

	to := target.Center.Sub(c.PlanetCenter)
	d := to.Len()
	if d == 0 {
		return false // degenerate target position: never cull
	}

	cosTheta := clamp(co.Dot(to)/(l*d), -1, 1)
	theta := math.Acos(cosTheta)

	alphaC := math.Acos(c.PlanetRadius / l)
	// A target at or below the reference surface has no horizon of its own.
	alphaP := 0.0
	if d > c.PlanetRadius {
		alphaP = math.Acos(c.PlanetRadius / d)
	}

	angularRadius := 0.0
	if target.Radius > 0 {
		angularRadius = math.Asin(clamp(target.Radius/d, 0, 1))
	}

	return theta > alphaC+alphaP+angularRadius
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
