package referenceframe

import (
	"github.com/mechsim/kinetree/spatialmath"
)

// FixedFrame is a Frame rigidly welded to its parent at a constant pose. It
// contributes no velocity or acceleration of its own, so all of its motion comes from
// its ancestry.
type FixedFrame struct {
	*Frame

	tf spatialmath.Pose
}

// NewFixedFrame creates a FixedFrame as a child of parent at the given constant pose.
// A nil pose means coincident with the parent.
func NewFixedFrame(parent *Frame, name string, tf spatialmath.Pose) (*FixedFrame, error) {
	if tf == nil {
		tf = spatialmath.NewZeroPose()
	}
	x := &FixedFrame{tf: tf}
	f, err := NewFrame(parent, name, x)
	if err != nil {
		return nil, err
	}
	x.Frame = f
	return x, nil
}

// RelativeTransform returns the constant pose of the frame with respect to its parent.
func (x *FixedFrame) RelativeTransform() spatialmath.Pose {
	return x.tf
}

// RelativeSpatialVelocity always returns zero.
func (x *FixedFrame) RelativeSpatialVelocity() *spatialmath.SpatialVelocity {
	return spatialmath.ZeroVelocity()
}

// RelativeSpatialAcceleration always returns zero.
func (x *FixedFrame) RelativeSpatialAcceleration() *spatialmath.SpatialAcceleration {
	return spatialmath.ZeroAcceleration()
}

// PrimaryRelativeAcceleration always returns zero.
func (x *FixedFrame) PrimaryRelativeAcceleration() *spatialmath.SpatialAcceleration {
	return spatialmath.ZeroAcceleration()
}

// PartialAcceleration always returns zero.
func (x *FixedFrame) PartialAcceleration() *spatialmath.SpatialAcceleration {
	return spatialmath.ZeroAcceleration()
}
