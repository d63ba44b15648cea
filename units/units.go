// Package units defines the dimension units used across the typesetting
// pipeline, along with conversion rules to go from one to another easily.
//
// The main conversion rules are that 1 in = 72.27 pt = 2.54 cm and
// 1 pt = 65,536 sp.
package units

import (
	"fmt"
	"math"
)

// Conversion constants. All scaled-point arithmetic stays in integers; the
// float factors below only appear at the human-facing boundary.
const (
	SpPerPt = 65536.0
	PtPerIn = 72.27
	MmPerIn = 25.4
)

// PlusInfinity is the measure of what is supposed to be positive infinity.
//
// Any measure exceeding this value will be considered infinite.
const PlusInfinity = Sp(10_000_000_000)

// MinusInfinity is the measure of what is supposed to be negative infinity.
const MinusInfinity = Sp(-10_000_000_000)

// Sp is a scaled point, equal to 1/65,536 of a point.
//
// Defining this unit is useful because the wavelength of visible light is
// around 100 sp. This makes rounding errors invisible to the eye, which
// allows to perform uniquely integer arithmetics by treating all dimensions
// as integer multiples of this tiny unit. This ensures consistent
// computations, and thus output, across a wide variety of computers.
type Sp int64

// Mm is a length in millimeters.
type Mm float64

// Pt is a length in points.
type Pt float64

// Add returns s + other.
func (s Sp) Add(other Sp) Sp { return s + other }

// Sub returns s - other.
func (s Sp) Sub(other Sp) Sp { return s - other }

// SpFromMm converts millimeters into scaled points, rounding half away from
// zero to the nearest scaled point.
func SpFromMm(mm Mm) Sp {
	return Sp(math.Round((PtPerIn / MmPerIn) * SpPerPt * float64(mm)))
}

// SpFromPt converts points into scaled points, rounding half away from zero
// to the nearest scaled point.
func SpFromPt(pt Pt) Sp {
	return Sp(math.Round(SpPerPt * float64(pt)))
}

// Mm converts scaled points back into millimeters.
func (s Sp) Mm() Mm {
	return Mm((MmPerIn / (PtPerIn * SpPerPt)) * float64(s))
}

// Pt converts scaled points back into points. The conversion is exact since
// one point is exactly 65,536 scaled points.
func (s Sp) Pt() Pt {
	return Pt(float64(s) / SpPerPt)
}

// Pt converts millimeters into points.
func (m Mm) Pt() Pt { return Pt((PtPerIn / MmPerIn) * float64(m)) }

// Mm converts points into millimeters.
func (p Pt) Mm() Mm { return Mm((MmPerIn / PtPerIn) * float64(p)) }

func (s Sp) String() string { return fmt.Sprintf("%d sp", int64(s)) }
func (m Mm) String() string { return fmt.Sprintf("%g mm", float64(m)) }
func (p Pt) String() string { return fmt.Sprintf("%g pt", float64(p)) }

// Float64 bounds mirrored as untyped constants. minPositive is the smallest
// positive normal float64 and epsilon the difference between 1 and the next
// representable float64.
const (
	epsilon     = 0x1p-52
	minPositive = 0x1p-1022
)

// NearlyEqual compares two float numbers to check if they're close enough to
// be considered equal.
//
// This is only meant for comparing two independently computed real-unit
// values, typically in tests or display code. Layout decisions must rely on
// exact Sp arithmetic instead.
func NearlyEqual(a, b float64) bool {
	absA := math.Abs(a)
	absB := math.Abs(b)
	diff := math.Abs(a - b)

	if a == b {
		// Handles infinities.
		return true
	} else if a == 0 || b == 0 || diff < minPositive {
		// One of a or b is zero, or both are extremely close to it.
		// Use absolute error.
		return diff < epsilon*minPositive
	}
	// Use relative error.
	return diff/math.Min(absA+absB, math.MaxFloat64) < 1e-4
}
