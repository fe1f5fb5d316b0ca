package utils

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-9, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.1, 1e-8), test.ShouldBeFalse)
}

func TestR3VectorAlmostEqual(t *testing.T) {
	a := r3.Vector{X: 1, Y: 2, Z: 3}
	test.That(t, R3VectorAlmostEqual(a, r3.Vector{X: 1, Y: 2, Z: 3 + 1e-10}, 1e-8), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(a, r3.Vector{X: 1, Y: 2.01, Z: 3}, 1e-8), test.ShouldBeFalse)
}

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
}
