package voxeltype

import "testing"

func TestAirIsImplicitlyNonSolidAndTransparent(t *testing.T) {
	reg := NewStaticRegistry(nil)
	if reg.IsSolid(Air) {
		t.Error("Air should not be solid")
	}
	if !reg.IsTransparent(Air) {
		t.Error("Air should be transparent")
	}
}

func TestRegisteredTypeOverridesDefaults(t *testing.T) {
	const glass Id = 1
	reg := NewStaticRegistry(map[Id]Properties{
		glass: {Solid: true, Transparent: true},
	})
	if !reg.IsSolid(glass) {
		t.Error("glass should be solid")
	}
	if !reg.IsTransparent(glass) {
		t.Error("glass should be transparent")
	}
}

func TestUnknownIdFallsBackToConservativeDefault(t *testing.T) {
	reg := NewStaticRegistry(map[Id]Properties{1: {Solid: true}})
	const unknown Id = 99
	if !reg.IsSolid(unknown) {
		t.Error("unknown id should default solid")
	}
	if reg.IsTransparent(unknown) {
		t.Error("unknown id should default opaque")
	}
}

func TestFacesOfReturnsRegisteredMaterials(t *testing.T) {
	const stone Id = 2
	want := FaceMaterial{PosX: 1, NegX: 2, PosY: 3, NegY: 4, PosZ: 5, NegZ: 6}
	reg := NewStaticRegistry(map[Id]Properties{stone: {Solid: true, Faces: want}})
	if got := reg.FacesOf(stone); got != want {
		t.Errorf("FacesOf() = %+v, want %+v", got, want)
	}
}
