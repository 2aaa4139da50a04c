// Package config validates and constructs a PlanetConfig, the tunable
// parameters every other package in this module is driven by. Failing
// loudly and completely on bad input, aggregating every invalid field via
// errors.Join instead of stopping at the first one, follows the
// wrapping-error idiom of felipemarts-krakovia's pkg/wallet/wallet.go, the
// only corpus repo that layers structured validation errors over plain
// fmt.Errorf.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/kestrelworks/planetlod/coordspace"
	"github.com/kestrelworks/planetlod/planetmode"
)

// ValidationError reports one invalid PlanetConfig field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: field %s: %s", e.Field, e.Reason)
}

// PlanetConfig holds every tunable this module's packages are driven by.
type PlanetConfig struct {
	// MaxDepth bounds FaceQuadtree split depth.
	MaxDepth uint8
	// VoxelBudgetBytes and MeshBudgetBytes size the resident-chunk budget:
	// planet.New gives its store.Tracker their sum as a single byte cap, so
	// voxel bytes and mesh bytes are not capped separately.
	VoxelBudgetBytes int64
	MeshBudgetBytes  int64
	// CrossfadeDuration is the transition.Manager fade duration, seconds.
	CrossfadeDuration float32
	// RebaseThresholdMM is how far (in millimeters) the camera may drift
	// from a CoordSpace's origin before a rebase is triggered.
	RebaseThresholdMM int64
	// GenerationRadiusChunks bounds how far out chunk generation requests
	// are issued around the camera.
	GenerationRadiusChunks int
	// IngestCapPerFrame bounds how many completed worker results Planet
	// ingests in a single Update call.
	IngestCapPerFrame int
	// PlanetThresholds are the planetmode.Select altitude boundaries.
	PlanetThresholds planetmode.Thresholds
	// Verbose gates plog.Debugf; plog.Warnf is always emitted.
	Verbose bool
	// WorkerCount sizes the worker.Pool. Defaults to runtime.NumCPU()-2,
	// clamped to at least 1.
	WorkerCount int
}

// DefaultVoxelBudgetBytes and DefaultMeshBudgetBytes match spec.md's
// stated BudgetTracker "high" preset.
const (
	DefaultVoxelBudgetBytes = 2 << 30 // 2 GiB
	DefaultMeshBudgetBytes  = 1 << 30 // 1 GiB
)

// New validates opts (a zero-value-friendly PlanetConfig with the fields
// the caller cares about set) and returns a fully-defaulted PlanetConfig,
// or every ValidationError found, joined via errors.Join.
func New(opts PlanetConfig) (PlanetConfig, error) {
	var errs []error

	cfg := opts

	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = 5
	}
	if cfg.MaxDepth > 5 {
		errs = append(errs, &ValidationError{Field: "MaxDepth", Reason: "must be <= 5"})
	}

	if cfg.VoxelBudgetBytes == 0 {
		cfg.VoxelBudgetBytes = DefaultVoxelBudgetBytes
	}
	if cfg.VoxelBudgetBytes < 0 {
		errs = append(errs, &ValidationError{Field: "VoxelBudgetBytes", Reason: "must be non-negative"})
	}

	if cfg.MeshBudgetBytes == 0 {
		cfg.MeshBudgetBytes = DefaultMeshBudgetBytes
	}
	if cfg.MeshBudgetBytes < 0 {
		errs = append(errs, &ValidationError{Field: "MeshBudgetBytes", Reason: "must be non-negative"})
	}

	if cfg.CrossfadeDuration == 0 {
		cfg.CrossfadeDuration = 0.35
	}
	if cfg.CrossfadeDuration < 0 {
		errs = append(errs, &ValidationError{Field: "CrossfadeDuration", Reason: "must be non-negative"})
	}

	if cfg.RebaseThresholdMM == 0 {
		cfg.RebaseThresholdMM = coordspace.RebaseThresholdDefaultMM
	}
	if cfg.RebaseThresholdMM < 0 {
		errs = append(errs, &ValidationError{Field: "RebaseThresholdMM", Reason: "must be non-negative"})
	}

	if cfg.GenerationRadiusChunks == 0 {
		cfg.GenerationRadiusChunks = 8
	}
	if cfg.GenerationRadiusChunks < 0 {
		errs = append(errs, &ValidationError{Field: "GenerationRadiusChunks", Reason: "must be non-negative"})
	}

	if cfg.IngestCapPerFrame == 0 {
		cfg.IngestCapPerFrame = 16
	}
	if cfg.IngestCapPerFrame < 0 {
		errs = append(errs, &ValidationError{Field: "IngestCapPerFrame", Reason: "must be non-negative"})
	}

	if cfg.PlanetThresholds == (planetmode.Thresholds{}) {
		cfg.PlanetThresholds = planetmode.DefaultThresholds
	}
	if !(cfg.PlanetThresholds.VoxelMax < cfg.PlanetThresholds.HybridMax &&
		cfg.PlanetThresholds.HybridMax < cfg.PlanetThresholds.SphereMax) {
		errs = append(errs, &ValidationError{
			Field:  "PlanetThresholds",
			Reason: "must satisfy VoxelMax < HybridMax < SphereMax",
		})
	}

	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = runtime.NumCPU() - 2
		if cfg.WorkerCount < 1 {
			cfg.WorkerCount = 1
		}
	}
	if cfg.WorkerCount < 0 {
		errs = append(errs, &ValidationError{Field: "WorkerCount", Reason: "must be non-negative"})
	}

	if len(errs) > 0 {
		return PlanetConfig{}, errors.Join(errs...)
	}
	return cfg, nil
}
