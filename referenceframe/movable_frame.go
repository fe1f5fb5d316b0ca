package referenceframe

import (
	"github.com/mechsim/kinetree/spatialmath"
)

// MovableFrame is a Frame whose state relative to its parent can be set freely by the
// caller: an arbitrary pose, spatial velocity, and primary spatial acceleration, all
// in the frame's own coordinates. It is the general-purpose specialization for
// tracking targets, sensor mounts, and prescribed motion.
type MovableFrame struct {
	*Frame

	relativeTransform   spatialmath.Pose
	relativeVelocity    *spatialmath.SpatialVelocity
	primaryAcceleration *spatialmath.SpatialAcceleration
}

// NewMovableFrame creates a MovableFrame as a child of parent, coincident with it and
// at rest.
func NewMovableFrame(parent *Frame, name string) (*MovableFrame, error) {
	m := &MovableFrame{
		relativeTransform:   spatialmath.NewZeroPose(),
		relativeVelocity:    spatialmath.ZeroVelocity(),
		primaryAcceleration: spatialmath.ZeroAcceleration(),
	}
	f, err := NewFrame(parent, name, m)
	if err != nil {
		return nil, err
	}
	m.Frame = f
	return m, nil
}

// RelativeTransform returns the pose of the frame with respect to its parent.
func (m *MovableFrame) RelativeTransform() spatialmath.Pose {
	return m.relativeTransform
}

// RelativeSpatialVelocity returns the spatial velocity of the frame relative to its
// parent, in its own coordinates.
func (m *MovableFrame) RelativeSpatialVelocity() *spatialmath.SpatialVelocity {
	return m.relativeVelocity
}

// PrimaryRelativeAcceleration returns the caller-set portion of the relative spatial
// acceleration.
func (m *MovableFrame) PrimaryRelativeAcceleration() *spatialmath.SpatialAcceleration {
	return m.primaryAcceleration
}

// PartialAcceleration returns the velocity-coupling portion of the relative spatial
// acceleration: the spatial cross product of the frame's total velocity with its
// relative velocity.
func (m *MovableFrame) PartialAcceleration() *spatialmath.SpatialAcceleration {
	return spatialmath.CoriolisAcceleration(m.SpatialVelocity(), m.relativeVelocity)
}

// RelativeSpatialAcceleration returns the full spatial acceleration of the frame
// relative to its parent: the primary part plus the partial part.
func (m *MovableFrame) RelativeSpatialAcceleration() *spatialmath.SpatialAcceleration {
	return m.primaryAcceleration.Add(m.PartialAcceleration())
}

// SetRelativeTransform sets the pose of this frame with respect to its parent and
// invalidates the cached quantities of its subtree.
func (m *MovableFrame) SetRelativeTransform(tf spatialmath.Pose) {
	m.relativeTransform = tf
	m.NotifyTransformUpdate()
}

// SetTransform sets the pose of this frame so that it has the given pose with respect
// to an arbitrary frame, re-expressing it against the parent. A nil withRespectTo
// means the world frame.
func (m *MovableFrame) SetTransform(tf spatialmath.Pose, withRespectTo *Frame) {
	if withRespectTo == nil {
		withRespectTo = World()
	}
	m.SetRelativeTransform(spatialmath.Compose(
		spatialmath.PoseBetween(m.ParentFrame().WorldTransform(), withRespectTo.WorldTransform()),
		tf,
	))
}

// SetRelativeSpatialVelocity sets the spatial velocity of this frame relative to its
// parent, in this frame's coordinates, and invalidates the dependent caches of its
// subtree.
func (m *MovableFrame) SetRelativeSpatialVelocity(v *spatialmath.SpatialVelocity) {
	m.relativeVelocity = v
	m.NotifyVelocityUpdate()
}

// SetPrimaryRelativeAcceleration sets the primary portion of this frame's relative
// spatial acceleration and invalidates the acceleration caches of its subtree.
func (m *MovableFrame) SetPrimaryRelativeAcceleration(a *spatialmath.SpatialAcceleration) {
	m.primaryAcceleration = a
	m.NotifyAccelerationUpdate()
}
