package planet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kestrelworks/planetlod/horizon"
)

// DefaultFrustumHalfAngleRad is the half-angle (radians) of the cone used
// when a caller doesn't otherwise supply a field of view: roughly a 90
// degree full FOV.
const DefaultFrustumHalfAngleRad = 45.0 * math.Pi / 180.0

// Frustum is a camera's view volume test, modeled as a cone rather than a
// full six-plane frustum: Camera only exposes a position and a forward
// direction (no up/right/aspect), so a half-angle cone around the forward
// axis is the coarsest test that still captures "is this roughly ahead of
// the camera".
type Frustum struct {
	Apex      mgl64.Vec3
	Forward   mgl64.Vec3 // unit
	HalfAngle float64    // radians
}

// NewFrustum builds a cone-shaped Frustum from a camera's world position,
// its unit forward direction, and a half-angle in radians.
func NewFrustum(apex mgl64.Vec3, forward [3]float64, halfAngleRad float64) Frustum {
	f := mgl64.Vec3{forward[0], forward[1], forward[2]}
	if l := f.Len(); l > 0 {
		f = f.Mul(1 / l)
	}
	return Frustum{Apex: apex, Forward: f, HalfAngle: halfAngleRad}
}

// Intersects reports whether s might be visible within the cone: the
// camera being inside or touching the sphere always counts, otherwise the
// angle between the forward axis and the sphere's center is compared
// against HalfAngle inflated by the sphere's own angular radius as seen
// from Apex, the same inflate-by-angular-size approach horizon.Culler
// uses for its curvature test.
func (f Frustum) Intersects(s horizon.Sphere) bool {
	toCenter := s.Center.Sub(f.Apex)
	dist := toCenter.Len()
	if dist <= s.Radius {
		return true
	}

	cosAngle := clamp(toCenter.Dot(f.Forward)/dist, -1, 1)
	angle := math.Acos(cosAngle)

	angularRadius := 0.0
	if s.Radius > 0 {
		angularRadius = math.Asin(clamp(s.Radius/dist, 0, 1))
	}

	return angle <= f.HalfAngle+angularRadius
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
