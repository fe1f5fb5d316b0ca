// Package spatialmath defines spatial mathematical operations: rigid transforms,
// orientations, and the 6-component spatial velocity/acceleration vectors used to
// describe the motion of reference frames.
package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a rigid transform: the position and orientation of one reference
// frame relative to another.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// dualQuaternion implements Pose as a unit dual quaternion: the real part holds the
// rotation and the dual part encodes half the translation multiplied by the rotation.
type dualQuaternion struct {
	dualquat.Number
}

func newDualQuaternion() *dualQuaternion {
	return &dualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	q := newDualQuaternion()
	if o != nil {
		q.Real = o.Quaternion()
	}
	q.setTranslation(p)
	return q
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a Pose whose
// orientation is the zero rotation.
func NewPoseFromPoint(p r3.Vector) Pose {
	q := newDualQuaternion()
	q.setTranslation(p)
	return q
}

// NewPoseFromOrientation takes in an orientation and returns a Pose at the origin.
func NewPoseFromOrientation(o Orientation) Pose {
	q := newDualQuaternion()
	if o != nil {
		q.Real = o.Quaternion()
	}
	return q
}

// NewPoseFromAxisAngle takes in a position, rotation axis, and angle and returns a Pose.
func NewPoseFromAxisAngle(p, axis r3.Vector, angle float64) Pose {
	return NewPose(p, &R4AA{Theta: angle, RX: axis.X, RY: axis.Y, RZ: axis.Z})
}

// NewPoseFromMat4 converts a homogeneous transformation matrix to a Pose. Used to
// interchange with loaders and exporters that traffic in matrices.
func NewPoseFromMat4(m mgl64.Mat4) Pose {
	q := newDualQuaternion()
	rot := mgl64.Mat4ToQuat(m)
	q.Real = quat.Number{Real: rot.W, Imag: rot.X(), Jmag: rot.Y(), Kmag: rot.Z()}
	q.setTranslation(r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)})
	return q
}

// Mat4 converts a Pose to a homogeneous transformation matrix.
func Mat4(p Pose) mgl64.Mat4 {
	q := p.Orientation().Quaternion()
	m := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Mat4()
	pt := p.Point()
	m.SetCol(3, mgl64.Vec4{pt.X, pt.Y, pt.Z, 1})
	return m
}

// Compose treats Poses as functions and returns the pose equivalent to applying
// a, then b. If a maps B-coordinates to A-coordinates and b maps C-coordinates to
// B-coordinates, the result maps C-coordinates to A-coordinates.
func Compose(a, b Pose) Pose {
	result := &dualQuaternion{dualquat.Mul(dqFromPose(a).Number, dqFromPose(b).Number)}

	// Normalization prevents magnitude drift over long composition chains.
	if vecLen := quat.Abs(result.Real); vecLen != 1 {
		result.Real = quat.Scale(1/vecLen, result.Real)
	}
	return result
}

// PoseInverse returns the inverse of a rigid transform. For a unit dual quaternion
// the inverse is the quaternion conjugate of each part.
func PoseInverse(p Pose) Pose {
	return &dualQuaternion{dualquat.ConjQuat(dqFromPose(p).Number)}
}

// PoseBetween returns the pose of b relative to a, i.e. the transform which, composed
// onto a, gives b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// PoseAlmostEqual checks whether two poses represent the same rigid transform to
// within a small tolerance.
func PoseAlmostEqual(a, b Pose) bool {
	const epsilon = 1e-8
	ptA, ptB := a.Point(), b.Point()
	return ptA.Sub(ptB).Norm2() < epsilon && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

// TransformPoint applies a pose to a point: rotating it and then displacing it by the
// pose's translation.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	return QuatRotateVector(p.Orientation().Quaternion(), pt).Add(p.Point())
}

// Point returns the translation of the transform.
func (q *dualQuaternion) Point() r3.Vector {
	// 2 * dual * conj(real) recovers the translation from a unit dual quaternion.
	t := quat.Scale(2, quat.Mul(q.Dual, quat.Conj(q.Real)))
	return r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag}
}

// Orientation returns the rotation of the transform.
func (q *dualQuaternion) Orientation() Orientation {
	o := quaternion(q.Real)
	return &o
}

// setTranslation correctly sets the translation quaternion against the rotation.
func (q *dualQuaternion) setTranslation(p r3.Vector) {
	q.Dual = quat.Number{Imag: p.X / 2, Jmag: p.Y / 2, Kmag: p.Z / 2}
	q.Dual = quat.Mul(q.Dual, q.Real)
}

// dqFromPose returns the pose's dual quaternion representation, avoiding a conversion
// when it already is one.
func dqFromPose(p Pose) *dualQuaternion {
	if q, ok := p.(*dualQuaternion); ok {
		return q
	}
	q := newDualQuaternion()
	q.Real = p.Orientation().Quaternion()
	q.setTranslation(p.Point())
	return q
}
