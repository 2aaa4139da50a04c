package planetmode

// DefaultRecaptureAngle is the default angle, in radians, past which an
// impostor is considered stale (~3 degrees).
const DefaultRecaptureAngle = 3.0 * 3.14159265358979323846 / 180.0

// ImpostorState is the camera-facing snapshot captured the last time an
// Impostor was (re)rendered: the view direction and sun direction at
// capture time, both unit vectors.
type ImpostorState struct {
	CapturedViewDir [3]float64
	CapturedSunDir  [3]float64
	AngleThreshold  float64
}

// NewImpostorState captures state at the given view and sun directions,
// using DefaultRecaptureAngle as the threshold.
func NewImpostorState(viewDir, sunDir [3]float64) ImpostorState {
	return ImpostorState{
		CapturedViewDir: viewDir,
		CapturedSunDir:  sunDir,
		AngleThreshold:  DefaultRecaptureAngle,
	}
}

// NeedsRecapture reports whether the current view or sun direction has
// drifted from the captured snapshot by more than AngleThreshold, meaning
// the impostor texture is stale and should be re-rendered.
func (s ImpostorState) NeedsRecapture(currentViewDir, currentSunDir [3]float64) bool {
	viewDelta := AngleBetween(
		s.CapturedViewDir[0], s.CapturedViewDir[1], s.CapturedViewDir[2],
		currentViewDir[0], currentViewDir[1], currentViewDir[2],
	)
	if viewDelta > s.AngleThreshold {
		return true
	}
	sunDelta := AngleBetween(
		s.CapturedSunDir[0], s.CapturedSunDir[1], s.CapturedSunDir[2],
		currentSunDir[0], currentSunDir[1], currentSunDir[2],
	)
	return sunDelta > s.AngleThreshold
}
