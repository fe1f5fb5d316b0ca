package referenceframe

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/mechsim/kinetree/spatialmath"
	"github.com/mechsim/kinetree/utils"
)

func TestMovableFrameSetters(t *testing.T) {
	m, err := NewMovableFrame(World(), "mov")
	test.That(t, err, test.ShouldBeNil)
	defer m.Detach()

	// starts coincident with its parent and at rest
	test.That(t, spatialmath.PoseAlmostEqual(m.WorldTransform(), spatialmath.NewZeroPose()), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(m.SpatialVelocity().Angular, r3.Vector{}, 1e-8), test.ShouldBeTrue)

	// a set is visible on the very next query
	tf := spatialmath.NewPoseFromAxisAngle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 1, Z: 0}, math.Pi/7)
	m.SetRelativeTransform(tf)
	test.That(t, spatialmath.PoseAlmostEqual(m.WorldTransform(), tf), test.ShouldBeTrue)

	v := &spatialmath.SpatialVelocity{Angular: r3.Vector{X: 0, Y: 0, Z: 1}, Linear: r3.Vector{X: 1, Y: 0, Z: 0}}
	m.SetRelativeSpatialVelocity(v)
	test.That(t, utils.R3VectorAlmostEqual(m.SpatialVelocity().Angular, v.Angular, 1e-8), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(m.SpatialVelocity().Linear, v.Linear, 1e-8), test.ShouldBeTrue)
}

func TestMovableFrameSetTransformWithRespectTo(t *testing.T) {
	anchor, err := NewMovableFrame(World(), "anchor")
	test.That(t, err, test.ShouldBeNil)
	defer anchor.Detach()
	anchor.SetRelativeTransform(spatialmath.NewPoseFromAxisAngle(
		r3.Vector{X: 0, Y: 5, Z: 0}, r3.Vector{X: 0, Y: 0, Z: 1}, math.Pi/2))

	m, err := NewMovableFrame(World(), "tracked")
	test.That(t, err, test.ShouldBeNil)
	defer m.Detach()

	// place m one unit in front of the anchor, in the anchor's coordinates
	want := spatialmath.NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0})
	m.SetTransform(want, anchor.Frame)
	test.That(t, spatialmath.PoseAlmostEqual(m.Transform(anchor.Frame), want), test.ShouldBeTrue)

	// the anchor's +X axis points along world +Y
	test.That(t, utils.R3VectorAlmostEqual(
		m.WorldTransform().Point(), r3.Vector{X: 0, Y: 6, Z: 0}, 1e-8), test.ShouldBeTrue)
}

func TestPartialAccelerationIdentity(t *testing.T) {
	m, err := NewMovableFrame(World(), "partial")
	test.That(t, err, test.ShouldBeNil)
	defer m.Detach()

	m.SetRelativeTransform(spatialmath.NewPoseFromAxisAngle(
		r3.Vector{X: 0.5, Y: -1, Z: 2}, r3.Vector{X: 1, Y: 1, Z: 0}, 0.4))
	m.SetRelativeSpatialVelocity(&spatialmath.SpatialVelocity{
		Angular: r3.Vector{X: 0.3, Y: 0, Z: 1.1},
		Linear:  r3.Vector{X: -0.2, Y: 0.7, Z: 0},
	})
	m.SetPrimaryRelativeAcceleration(&spatialmath.SpatialAcceleration{
		Angular: r3.Vector{X: 0, Y: 0.9, Z: -0.4},
		Linear:  r3.Vector{X: 1, Y: 0, Z: 0.6},
	})

	// the full relative acceleration decomposes into primary + velocity coupling
	full := m.RelativeSpatialAcceleration()
	recomposed := m.PrimaryRelativeAcceleration().
		Add(spatialmath.CoriolisAcceleration(m.SpatialVelocity(), m.RelativeSpatialVelocity()))
	test.That(t, utils.R3VectorAlmostEqual(full.Angular, recomposed.Angular, 1e-8), test.ShouldBeTrue)
	test.That(t, utils.R3VectorAlmostEqual(full.Linear, recomposed.Linear, 1e-8), test.ShouldBeTrue)
}

func TestFixedFrameIsInert(t *testing.T) {
	parent, err := NewMovableFrame(World(), "fix-parent")
	test.That(t, err, test.ShouldBeNil)
	defer parent.Detach()
	parent.SetRelativeSpatialVelocity(&spatialmath.SpatialVelocity{Linear: r3.Vector{X: 1, Y: 0, Z: 0}})

	fixed, err := NewFixedFrame(parent.Frame, "fix", spatialmath.NewPoseFromPoint(r3.Vector{X: 0, Y: 1, Z: 0}))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, utils.R3VectorAlmostEqual(
		fixed.RelativeSpatialVelocity().Linear, r3.Vector{}, 1e-8), test.ShouldBeTrue)
	// all of its motion comes from the parent
	test.That(t, utils.R3VectorAlmostEqual(
		fixed.LinearVelocity(World(), World()), r3.Vector{X: 1, Y: 0, Z: 0}, 1e-8), test.ShouldBeTrue)
}
