// Package transition tracks each chunk's crossfade between an outgoing and
// incoming LOD representation, so a split or merge swap never pops. Each
// in-flight transition is backed by a *gween.Tween (the same tween library
// phanxgames-willow uses for camera scrolls and node animations, its
// camera.go's scrollAnim and animation.go's TweenGroup) driven
// by ease.InOutSine in place of a hand-rolled progress += dt/duration
// accumulator.
package transition

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is how long a crossfade runs, in seconds.
const DefaultDuration float32 = 0.35

// ChunkTransition is one chunk's in-flight swap from FromLod to ToLod.
type ChunkTransition struct {
	FromLod, ToLod uint8
	tween          *gween.Tween
	progress       float32
}

// newChunkTransition starts a transition at progress 0, ramping toward 1
// over duration seconds.
func newChunkTransition(fromLod, toLod uint8, duration float32) *ChunkTransition {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &ChunkTransition{
		FromLod: fromLod,
		ToLod:   toLod,
		tween:   gween.New(0, 1, duration, ease.InOutSine),
	}
}

// tick advances progress by dt seconds and reports whether the transition
// has completed.
func (c *ChunkTransition) tick(dt float32) (done bool) {
	val, done := c.tween.Update(dt)
	c.progress = val
	return done
}

// crossfadeAlphas returns (old, new) render weights for the outgoing and
// incoming representations: (1-progress, progress), where progress is the
// eased tween value. Their sum is always exactly 1.
func (c *ChunkTransition) crossfadeAlphas() (old, new float32) {
	return 1 - c.progress, c.progress
}
