package config

import (
	"errors"
	"testing"

	"github.com/kestrelworks/planetlod/coordspace"
	"github.com/kestrelworks/planetlod/planetmode"
)

func TestNewAppliesDefaults(t *testing.T) {
	cfg, err := New(PlanetConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxDepth != 5 {
		t.Errorf("expected default MaxDepth 5, got %d", cfg.MaxDepth)
	}
	if cfg.VoxelBudgetBytes != DefaultVoxelBudgetBytes {
		t.Errorf("expected default voxel budget, got %d", cfg.VoxelBudgetBytes)
	}
	if cfg.WorkerCount < 1 {
		t.Errorf("expected WorkerCount clamped to >= 1, got %d", cfg.WorkerCount)
	}
	if cfg.RebaseThresholdMM != coordspace.RebaseThresholdDefaultMM {
		t.Errorf("expected default RebaseThresholdMM %d, got %d", coordspace.RebaseThresholdDefaultMM, cfg.RebaseThresholdMM)
	}
}

func TestNewRejectsMaxDepthOverFive(t *testing.T) {
	_, err := New(PlanetConfig{MaxDepth: 6})
	if err == nil {
		t.Fatal("expected error for MaxDepth > 5")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a *ValidationError, got %T: %v", err, err)
	}
	if ve.Field != "MaxDepth" {
		t.Errorf("expected Field MaxDepth, got %s", ve.Field)
	}
}

func TestNewAggregatesMultipleErrors(t *testing.T) {
	_, err := New(PlanetConfig{
		MaxDepth:         6,
		VoxelBudgetBytes: -1,
		MeshBudgetBytes:  -1,
	})
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	count := 0
	for _, e := range []string{"MaxDepth", "VoxelBudgetBytes", "MeshBudgetBytes"} {
		if containsField(err, e) {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected all 3 invalid fields reported, matched %d", count)
	}
}

func containsField(err error, field string) bool {
	type unwrapper interface{ Unwrap() []error }
	if u, ok := err.(unwrapper); ok {
		for _, e := range u.Unwrap() {
			var ve *ValidationError
			if errors.As(e, &ve) && ve.Field == field {
				return true
			}
		}
	}
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Field == field
}

func TestNewRejectsNonMonotonicThresholds(t *testing.T) {
	_, err := New(PlanetConfig{
		PlanetThresholds: planetmode.Thresholds{
			VoxelMax: 0.5, HybridMax: 0.1, SphereMax: 10,
		},
	})
	if err == nil {
		t.Fatal("expected error for non-monotonic thresholds")
	}
}
