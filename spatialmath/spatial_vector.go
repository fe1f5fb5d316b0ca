package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// SpatialVelocity is a 6-component spatial motion vector: the angular velocity of a
// frame stacked on the linear velocity of its origin. A spatial velocity is only
// meaningful together with the frame it is expressed in and the frame it is measured
// relative to; the operations below re-express it between frames.
type SpatialVelocity struct {
	Angular r3.Vector
	Linear  r3.Vector
}

// SpatialAcceleration is a 6-component spatial acceleration vector, the frame-local
// time derivative of a SpatialVelocity.
type SpatialAcceleration struct {
	Angular r3.Vector
	Linear  r3.Vector
}

// ZeroVelocity returns a zero spatial velocity.
func ZeroVelocity() *SpatialVelocity {
	return &SpatialVelocity{}
}

// ZeroAcceleration returns a zero spatial acceleration.
func ZeroAcceleration() *SpatialAcceleration {
	return &SpatialAcceleration{}
}

// Add returns the componentwise sum of two spatial velocities. Both must be expressed
// in the same frame.
func (v *SpatialVelocity) Add(o *SpatialVelocity) *SpatialVelocity {
	return &SpatialVelocity{
		Angular: v.Angular.Add(o.Angular),
		Linear:  v.Linear.Add(o.Linear),
	}
}

// Sub returns the componentwise difference of two spatial velocities.
func (v *SpatialVelocity) Sub(o *SpatialVelocity) *SpatialVelocity {
	return &SpatialVelocity{
		Angular: v.Angular.Sub(o.Angular),
		Linear:  v.Linear.Sub(o.Linear),
	}
}

// AtPoint returns the spatial velocity of a point fixed in the moving frame at the
// given offset from its origin, expressed in the same coordinates.
func (v *SpatialVelocity) AtPoint(offset r3.Vector) *SpatialVelocity {
	return &SpatialVelocity{
		Angular: v.Angular,
		Linear:  v.Linear.Add(v.Angular.Cross(offset)),
	}
}

// Add returns the componentwise sum of two spatial accelerations.
func (a *SpatialAcceleration) Add(o *SpatialAcceleration) *SpatialAcceleration {
	return &SpatialAcceleration{
		Angular: a.Angular.Add(o.Angular),
		Linear:  a.Linear.Add(o.Linear),
	}
}

// Sub returns the componentwise difference of two spatial accelerations.
func (a *SpatialAcceleration) Sub(o *SpatialAcceleration) *SpatialAcceleration {
	return &SpatialAcceleration{
		Angular: a.Angular.Sub(o.Angular),
		Linear:  a.Linear.Sub(o.Linear),
	}
}

// AtPoint returns the spatial acceleration of a point fixed in the moving frame at the
// given offset from its origin. The angular velocity of the frame, expressed in the
// same coordinates, supplies the centripetal contribution.
func (a *SpatialAcceleration) AtPoint(offset, angularVelocity r3.Vector) *SpatialAcceleration {
	return &SpatialAcceleration{
		Angular: a.Angular,
		Linear: a.Linear.
			Add(a.Angular.Cross(offset)).
			Add(angularVelocity.Cross(angularVelocity.Cross(offset))),
	}
}

// TransformVelocity re-expresses a spatial velocity through the adjoint of tf. If tf
// is the pose of frame B relative to frame A and v is expressed in B, the result is
// the same physical motion expressed in A.
func TransformVelocity(tf Pose, v *SpatialVelocity) *SpatialVelocity {
	w, l := adjoint(tf, v.Angular, v.Linear)
	return &SpatialVelocity{Angular: w, Linear: l}
}

// TransformVelocityInverse re-expresses a spatial velocity through the inverse adjoint
// of tf: from the destination frame of tf back into its source frame.
func TransformVelocityInverse(tf Pose, v *SpatialVelocity) *SpatialVelocity {
	w, l := adjointInverse(tf, v.Angular, v.Linear)
	return &SpatialVelocity{Angular: w, Linear: l}
}

// RotateVelocity re-expresses a spatial velocity using only the rotation of tf. Used
// when changing the coordinate frame of a relative quantity without moving its
// reference point.
func RotateVelocity(tf Pose, v *SpatialVelocity) *SpatialVelocity {
	q := tf.Orientation().Quaternion()
	return &SpatialVelocity{
		Angular: QuatRotateVector(q, v.Angular),
		Linear:  QuatRotateVector(q, v.Linear),
	}
}

// TransformAcceleration re-expresses a spatial acceleration through the adjoint of tf.
func TransformAcceleration(tf Pose, a *SpatialAcceleration) *SpatialAcceleration {
	w, l := adjoint(tf, a.Angular, a.Linear)
	return &SpatialAcceleration{Angular: w, Linear: l}
}

// TransformAccelerationInverse re-expresses a spatial acceleration through the inverse
// adjoint of tf.
func TransformAccelerationInverse(tf Pose, a *SpatialAcceleration) *SpatialAcceleration {
	w, l := adjointInverse(tf, a.Angular, a.Linear)
	return &SpatialAcceleration{Angular: w, Linear: l}
}

// RotateAcceleration re-expresses a spatial acceleration using only the rotation of tf.
func RotateAcceleration(tf Pose, a *SpatialAcceleration) *SpatialAcceleration {
	q := tf.Orientation().Quaternion()
	return &SpatialAcceleration{
		Angular: QuatRotateVector(q, a.Angular),
		Linear:  QuatRotateVector(q, a.Linear),
	}
}

// CoriolisAcceleration returns the spatial cross product of two spatial velocities:
// the velocity-coupling term that appears when differentiating a velocity expressed
// in a moving frame. This is the "partial" component of relative acceleration.
func CoriolisAcceleration(v1, v2 *SpatialVelocity) *SpatialAcceleration {
	return &SpatialAcceleration{
		Angular: v1.Angular.Cross(v2.Angular),
		Linear:  v1.Angular.Cross(v2.Linear).Add(v1.Linear.Cross(v2.Angular)),
	}
}

// AdjointMatrix returns the 6x6 matrix form of the adjoint of tf, ordered with the
// angular components first. Multiplying it against a stacked spatial vector is
// equivalent to TransformVelocity/TransformAcceleration.
func AdjointMatrix(tf Pose) *mat.Dense {
	r := rotationMatrix(tf.Orientation().Quaternion())
	p := tf.Point()
	pHat := [9]float64{
		0, -p.Z, p.Y,
		p.Z, 0, -p.X,
		-p.Y, p.X, 0,
	}
	pHatR := matMul3(pHat, r)

	adj := mat.NewDense(6, 6, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			adj.Set(i, j, r[3*i+j])
			adj.Set(i+3, j, pHatR[3*i+j])
			adj.Set(i+3, j+3, r[3*i+j])
		}
	}
	return adj
}

// adjoint applies Ad(tf) to a stacked spatial vector:
// angular' = R*w, linear' = p x (R*w) + R*l.
func adjoint(tf Pose, w, l r3.Vector) (r3.Vector, r3.Vector) {
	q := tf.Orientation().Quaternion()
	p := tf.Point()
	rw := QuatRotateVector(q, w)
	return rw, p.Cross(rw).Add(QuatRotateVector(q, l))
}

// adjointInverse applies Ad(tf)^-1:
// angular' = R^T*w, linear' = R^T*(l - p x w).
func adjointInverse(tf Pose, w, l r3.Vector) (r3.Vector, r3.Vector) {
	q := quat.Conj(tf.Orientation().Quaternion())
	p := tf.Point()
	return QuatRotateVector(q, w), QuatRotateVector(q, l.Sub(p.Cross(w)))
}

// rotationMatrix expands a unit rotation quaternion into a row-major 3x3 matrix.
func rotationMatrix(q quat.Number) [9]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [9]float64{
		1 - 2*y*y - 2*z*z, 2*x*y - 2*z*w, 2*x*z + 2*y*w,
		2*x*y + 2*z*w, 1 - 2*x*x - 2*z*z, 2*y*z - 2*x*w,
		2*x*z - 2*y*w, 2*y*z + 2*x*w, 1 - 2*x*x - 2*y*y,
	}
}

func matMul3(a, b [9]float64) [9]float64 {
	var c [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[3*i+j] += a[3*i+k] * b[3*k+j]
			}
		}
	}
	return c
}
