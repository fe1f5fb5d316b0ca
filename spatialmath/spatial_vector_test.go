package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"github.com/mechsim/kinetree/utils"
)

func TestAdjointTransform(t *testing.T) {
	tf := NewPoseFromAxisAngle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 0, Z: 1}, math.Pi/2)
	v := &SpatialVelocity{Angular: r3.Vector{X: 0, Y: 0, Z: 1}, Linear: r3.Vector{X: 1, Y: 0, Z: 0}}

	got := TransformVelocity(tf, v)
	test.That(t, utils.R3VectorAlmostEqual(got.Angular, r3.Vector{X: 0, Y: 0, Z: 1}, 1e-8), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(got.Linear, r3.Vector{X: 2, Y: 0, Z: 0}, 1e-8), test.ShouldBeTrue)

	t.Run("inverse undoes the transform", func(t *testing.T) {
		back := TransformVelocityInverse(tf, got)
		test.That(t, utils.R3VectorAlmostEqual(back.Angular, v.Angular, 1e-8), test.ShouldBeTrue)
		test.That(t, utils.R3VectorAlmostEqual(back.Linear, v.Linear, 1e-8), test.ShouldBeTrue)
	})

	t.Run("rotation-only pose degenerates to rotation", func(t *testing.T) {
		rot := NewPoseFromAxisAngle(r3.Vector{}, r3.Vector{X: 0, Y: 1, Z: 0}, math.Pi/3)
		full := TransformVelocity(rot, v)
		rotated := RotateVelocity(rot, v)
		test.That(t, utils.R3VectorAlmostEqual(full.Angular, rotated.Angular, 1e-8), test.ShouldBeTrue)
		test.That(t, utils.R3VectorAlmostEqual(full.Linear, rotated.Linear, 1e-8), test.ShouldBeTrue)
	})
}

func TestAdjointMatrixAgrees(t *testing.T) {
	tf := NewPoseFromAxisAngle(r3.Vector{X: -0.4, Y: 1.5, Z: 2}, r3.Vector{X: 1, Y: 2, Z: -1}, 0.7)
	v := &SpatialVelocity{Angular: r3.Vector{X: 0.3, Y: -1, Z: 0.2}, Linear: r3.Vector{X: -2, Y: 0.1, Z: 1}}

	adj := AdjointMatrix(tf)
	stacked := mat.NewVecDense(6, []float64{
		v.Angular.X, v.Angular.Y, v.Angular.Z,
		v.Linear.X, v.Linear.Y, v.Linear.Z,
	})
	var product mat.VecDense
	product.MulVec(adj, stacked)

	got := TransformVelocity(tf, v)
	test.That(t, got.Angular.X, test.ShouldAlmostEqual, product.AtVec(0), 1e-8)
	test.That(t, got.Angular.Y, test.ShouldAlmostEqual, product.AtVec(1), 1e-8)
	test.That(t, got.Angular.Z, test.ShouldAlmostEqual, product.AtVec(2), 1e-8)
	test.That(t, got.Linear.X, test.ShouldAlmostEqual, product.AtVec(3), 1e-8)
	test.That(t, got.Linear.Y, test.ShouldAlmostEqual, product.AtVec(4), 1e-8)
	test.That(t, got.Linear.Z, test.ShouldAlmostEqual, product.AtVec(5), 1e-8)
}

func TestVelocityAtPoint(t *testing.T) {
	// pure rotation about Z carries a point on the X axis in the +Y direction
	v := &SpatialVelocity{Angular: r3.Vector{X: 0, Y: 0, Z: 2}}
	at := v.AtPoint(r3.Vector{X: 1.5, Y: 0, Z: 0})
	test.That(t, utils.R3VectorAlmostEqual(at.Angular, v.Angular, 1e-8), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(at.Linear, r3.Vector{X: 0, Y: 3, Z: 0}, 1e-8), test.ShouldBeTrue)
}

func TestAccelerationAtPoint(t *testing.T) {
	// constant rotation: zero spatial acceleration, but an offset point sees the
	// centripetal w x (w x r) term
	w := r3.Vector{X: 0, Y: 0, Z: 2}
	a := ZeroAcceleration().AtPoint(r3.Vector{X: 1, Y: 0, Z: 0}, w)
	test.That(t, utils.R3VectorAlmostEqual(a.Linear, r3.Vector{X: -4, Y: 0, Z: 0}, 1e-8), test.ShouldBeTrue)

	// angular acceleration adds the tangential term
	a = (&SpatialAcceleration{Angular: r3.Vector{X: 0, Y: 0, Z: 3}}).AtPoint(r3.Vector{X: 1, Y: 0, Z: 0}, w)
	test.That(t, utils.R3VectorAlmostEqual(a.Linear, r3.Vector{X: -4, Y: 3, Z: 0}, 1e-8), test.ShouldBeTrue)
}

func TestCoriolisAcceleration(t *testing.T) {
	v1 := &SpatialVelocity{Angular: r3.Vector{X: 1, Y: 0, Z: 0.5}, Linear: r3.Vector{X: 0, Y: 2, Z: 0}}

	// the spatial cross of a velocity with itself vanishes
	self := CoriolisAcceleration(v1, v1)
	test.That(t, utils.R3VectorAlmostEqual(self.Angular, r3.Vector{}, 1e-8), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(self.Linear, r3.Vector{}, 1e-8), test.ShouldBeTrue)

	// simple axis case: w1 about Z crossed with a velocity along X
	wz := &SpatialVelocity{Angular: r3.Vector{X: 0, Y: 0, Z: 1}}
	vx := &SpatialVelocity{Linear: r3.Vector{X: 1, Y: 0, Z: 0}}
	c := CoriolisAcceleration(wz, vx)
	test.That(t, utils.R3VectorAlmostEqual(c.Angular, r3.Vector{}, 1e-8), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(c.Linear, r3.Vector{X: 0, Y: 1, Z: 0}, 1e-8), test.ShouldBeTrue)
}
