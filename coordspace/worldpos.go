package coordspace

import "math/bits"

// WorldPosition is a signed 128-bit-per-axis world coordinate in
// millimeters, covering the observable universe at sub-millimeter
// granularity.
type WorldPosition struct {
	X, Y, Z Int128
}

// Vec3I128 is an i128 displacement vector.
type Vec3I128 struct {
	X, Y, Z Int128
}

// CheckedAddDisp adds a displacement to a world position. Any axis overflow
// returns an *OverflowError identifying the axis, and the position is left
// unmodified (the caller must decide how to clamp the offending entity).
func CheckedAddDisp(p WorldPosition, v Vec3I128) (WorldPosition, error) {
	x, err := p.X.CheckedAdd(v.X)
	if err != nil {
		return WorldPosition{}, axisErr("checked_add_disp", "x", err)
	}
	y, err := p.Y.CheckedAdd(v.Y)
	if err != nil {
		return WorldPosition{}, axisErr("checked_add_disp", "y", err)
	}
	z, err := p.Z.CheckedAdd(v.Z)
	if err != nil {
		return WorldPosition{}, axisErr("checked_add_disp", "z", err)
	}
	return WorldPosition{X: x, Y: y, Z: z}, nil
}

// CheckedSubPos returns a-b as a displacement, or an *OverflowError
// identifying the first axis that overflowed.
func CheckedSubPos(a, b WorldPosition) (Vec3I128, error) {
	x, err := a.X.CheckedSub(b.X)
	if err != nil {
		return Vec3I128{}, axisErr("checked_sub_pos", "x", err)
	}
	y, err := a.Y.CheckedSub(b.Y)
	if err != nil {
		return Vec3I128{}, axisErr("checked_sub_pos", "y", err)
	}
	z, err := a.Z.CheckedSub(b.Z)
	if err != nil {
		return Vec3I128{}, axisErr("checked_sub_pos", "z", err)
	}
	return Vec3I128{X: x, Y: y, Z: z}, nil
}

func axisErr(op, axis string, cause error) error {
	oe, _ := cause.(*OverflowError)
	ctx := "i128 arithmetic"
	if oe != nil {
		ctx = oe.Context
	}
	return &OverflowError{Operation: op, Context: ctx, Axis: axis}
}

// SaturatingDistanceSquared returns |a-b|^2 in mm^2, clamped to MaxInt128 on
// intermediate or sum overflow. The clamp preserves ordering: farther points
// never compare as nearer.
func SaturatingDistanceSquared(a, b WorldPosition) Int128 {
	dx := a.X.SaturatingSub(b.X)
	dy := a.Y.SaturatingSub(b.Y)
	dz := a.Z.SaturatingSub(b.Z)

	sq := square256(dx)
	sq = add256(sq, square256(dy))
	sq = add256(sq, square256(dz))

	return narrow256ToSaturatedInt128(sq)
}

// wide256 holds an unsigned 256-bit value as four little-endian 64-bit
// limbs: w[0] is least significant, w[3] most significant.
type wide256 [4]uint64

// square256 computes dx^2 as an exact unsigned 256-bit value via schoolbook
// multiplication on the magnitude limbs, so no precision is lost before the
// final saturating narrow.
func square256(v Int128) wide256 {
	hi, lo := v.magnitude()

	hiHi, hiLo := bits.Mul64(hi, hi)
	loHi, loLo := bits.Mul64(lo, lo)
	crossHi, crossLo := bits.Mul64(hi, lo)

	// term lo^2 occupies limbs [0,1]; term hi^2 occupies limbs [2,3];
	// term 2*hi*lo occupies limbs [1,2,3].
	termLoSq := wide256{loLo, loHi, 0, 0}
	termHiSq := wide256{0, 0, hiLo, hiHi}

	dLo, c := bits.Add64(crossLo, crossLo, 0)
	dHi, c2 := bits.Add64(crossHi, crossHi, c)
	termCross := wide256{0, dLo, dHi, c2}

	sum := add3(termLoSq, termHiSq, termCross)
	return sum
}

func add3(a, b, c wide256) wide256 {
	var r wide256
	var carry uint64
	for i := range r {
		r[i], carry = bits.Add64(a[i], b[i], carry)
	}
	carry = 0
	for i := range r {
		r[i], carry = bits.Add64(r[i], c[i], carry)
	}
	return r
}

func add256(a, b wide256) wide256 {
	var r wide256
	var carry uint64
	for i := range r {
		r[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return r
}

// narrow256ToSaturatedInt128 clamps a 256-bit magnitude into Int128's
// positive range, returning MaxInt128 if it does not fit in 127 bits.
func narrow256ToSaturatedInt128(v wide256) Int128 {
	if v[3] != 0 || v[2] != 0 || v[1] > 0x7FFFFFFFFFFFFFFF {
		return MaxInt128
	}
	return Int128{Hi: int64(v[1]), Lo: v[0]}
}
