// Package referenceframe implements a mutable tree of kinematic reference frames.
// Each Frame tracks its pose, velocity, and acceleration relative to its parent and
// lazily composes them into world-space quantities on demand, invalidating cached
// results eagerly through its subtree whenever its own state changes.
package referenceframe

import (
	"github.com/golang/geo/r3"

	"github.com/mechsim/kinetree/spatialmath"
)

// Kinematics supplies the state of a Frame relative to its immediate parent, in the
// Frame's own coordinates. Concrete Frame specializations (joints, bodies, the
// movable and fixed frames in this package) implement it; the tree composes the
// relative quantities it reports into absolute ones.
type Kinematics interface {
	// RelativeTransform returns the pose of the frame with respect to its parent.
	RelativeTransform() spatialmath.Pose

	// RelativeSpatialVelocity returns the spatial velocity of the frame relative to
	// its parent, in the frame's own coordinates.
	RelativeSpatialVelocity() *spatialmath.SpatialVelocity

	// RelativeSpatialAcceleration returns the full spatial acceleration of the frame
	// relative to its parent: the primary part plus the partial part.
	RelativeSpatialAcceleration() *spatialmath.SpatialAcceleration

	// PrimaryRelativeAcceleration returns the portion of the relative spatial
	// acceleration not contained in the partial acceleration.
	PrimaryRelativeAcceleration() *spatialmath.SpatialAcceleration

	// PartialAcceleration returns the velocity-coupling component of the relative
	// spatial acceleration. Splitting it out lets a tree-wide forward pass compute
	// the coupling term once per frame instead of re-deriving it at every query.
	PartialAcceleration() *spatialmath.SpatialAcceleration
}

// EntityHooks is an optional interface a Kinematics supplier may implement to
// post-process children as they are added to or removed from the frame.
type EntityHooks interface {
	ProcessNewEntity(e Entity)
	ProcessRemovedEntity(e Entity)
}

// Drawer is an optional interface a Kinematics supplier may implement so a rendering
// collaborator can visualize the frame. Invoking it never mutates kinematic state.
type Drawer interface {
	Draw()
}

// Frame is a node in the kinematic tree: a coordinate system positioned relative to a
// parent Frame. It owns the sets of child Frames and child Entities that live inside
// it, and caches its world transform, velocity, and acceleration, rebuilding each
// lazily after invalidation.
//
// Frames are not safe for concurrent use; callers needing to share a tree across
// goroutines must provide their own mutual exclusion around mutations and queries.
type Frame struct {
	name   string
	parent *Frame
	kin    Kinematics

	childFrames   map[*Frame]bool
	childEntities map[Entity]bool

	// Cached world-space quantities. Access them only through WorldTransform,
	// SpatialVelocity, and SpatialAcceleration, which refresh them when dirty.
	worldTransform spatialmath.Pose
	velocity       *spatialmath.SpatialVelocity
	acceleration   *spatialmath.SpatialAcceleration

	needTransformUpdate    bool
	needVelocityUpdate     bool
	needAccelerationUpdate bool

	amWorld bool
}

// NewFrame creates a Frame as a child of parent whose relative state is supplied by
// kin, and inserts it into parent's child set.
func NewFrame(parent *Frame, name string, kin Kinematics) (*Frame, error) {
	if parent == nil {
		return nil, NewParentFrameMissingError()
	}
	if kin == nil {
		return nil, NewMissingKinematicsError(name)
	}
	f := &Frame{
		name:                   name,
		parent:                 parent,
		kin:                    kin,
		childFrames:            map[*Frame]bool{},
		childEntities:          map[Entity]bool{},
		needTransformUpdate:    true,
		needVelocityUpdate:     true,
		needAccelerationUpdate: true,
	}
	parent.attachChildFrame(f)
	return f, nil
}

// Name returns the name of the frame.
func (f *Frame) Name() string {
	return f.name
}

// ParentFrame returns the frame's parent, or nil for the world frame and for frames
// that have been detached.
func (f *Frame) ParentFrame() *Frame {
	return f.parent
}

// IsWorld returns true only for the singleton world frame.
func (f *Frame) IsWorld() bool {
	return f.amWorld
}

// RelativeTransform returns the pose of this frame with respect to its parent, as
// reported by its kinematics supplier. Identity for the world frame.
func (f *Frame) RelativeTransform() spatialmath.Pose {
	if f.amWorld {
		return spatialmath.NewZeroPose()
	}
	return f.kin.RelativeTransform()
}

// RelativeSpatialVelocity returns the spatial velocity of this frame relative to its
// parent, in this frame's coordinates. Zero for the world frame.
func (f *Frame) RelativeSpatialVelocity() *spatialmath.SpatialVelocity {
	if f.amWorld {
		return spatialmath.ZeroVelocity()
	}
	return f.kin.RelativeSpatialVelocity()
}

// RelativeSpatialAcceleration returns the full spatial acceleration of this frame
// relative to its parent, in this frame's coordinates. Zero for the world frame.
func (f *Frame) RelativeSpatialAcceleration() *spatialmath.SpatialAcceleration {
	if f.amWorld {
		return spatialmath.ZeroAcceleration()
	}
	return f.kin.RelativeSpatialAcceleration()
}

// PrimaryRelativeAcceleration returns the non-coupling portion of the relative
// spatial acceleration. Zero for the world frame.
func (f *Frame) PrimaryRelativeAcceleration() *spatialmath.SpatialAcceleration {
	if f.amWorld {
		return spatialmath.ZeroAcceleration()
	}
	return f.kin.PrimaryRelativeAcceleration()
}

// PartialAcceleration returns the velocity-coupling portion of the relative spatial
// acceleration. Zero for the world frame.
func (f *Frame) PartialAcceleration() *spatialmath.SpatialAcceleration {
	if f.amWorld {
		return spatialmath.ZeroAcceleration()
	}
	return f.kin.PartialAcceleration()
}

// WorldTransform returns the pose of this frame with respect to the world frame,
// composing the parent's world transform with this frame's relative transform. The
// result is cached until the next transform notification.
func (f *Frame) WorldTransform() spatialmath.Pose {
	if f.amWorld {
		return spatialmath.NewZeroPose()
	}
	if f.needTransformUpdate {
		f.worldTransform = spatialmath.Compose(f.parent.WorldTransform(), f.RelativeTransform())
		f.needTransformUpdate = false
	}
	return f.worldTransform
}

// Transform returns the pose of this frame with respect to another frame. A nil
// argument means the world frame.
func (f *Frame) Transform(withRespectTo *Frame) spatialmath.Pose {
	if withRespectTo == nil || withRespectTo.amWorld {
		return f.WorldTransform()
	}
	if withRespectTo == f.parent {
		return f.RelativeTransform()
	}
	if withRespectTo == f {
		return spatialmath.NewZeroPose()
	}
	return spatialmath.PoseBetween(withRespectTo.WorldTransform(), f.WorldTransform())
}

// SpatialVelocity returns the total spatial velocity of this frame relative to the
// world frame, expressed in this frame's coordinates. The result is cached until the
// next velocity notification; callers must not modify it.
func (f *Frame) SpatialVelocity() *spatialmath.SpatialVelocity {
	if f.amWorld {
		return spatialmath.ZeroVelocity()
	}
	if f.needVelocityUpdate {
		f.velocity = spatialmath.TransformVelocityInverse(f.RelativeTransform(), f.parent.SpatialVelocity()).
			Add(f.RelativeSpatialVelocity())
		f.needVelocityUpdate = false
	}
	return f.velocity
}

// SpatialVelocityRelative returns the spatial velocity of this frame relative to an
// arbitrary frame, expressed in the coordinates of yet another arbitrary frame. Nil
// arguments mean the world frame.
func (f *Frame) SpatialVelocityRelative(relativeTo, inCoordinatesOf *Frame) *spatialmath.SpatialVelocity {
	if relativeTo == nil {
		relativeTo = World()
	}
	if inCoordinatesOf == nil {
		inCoordinatesOf = World()
	}
	if relativeTo == f {
		return spatialmath.ZeroVelocity()
	}
	if relativeTo.amWorld {
		if inCoordinatesOf == f {
			return f.SpatialVelocity()
		}
		return spatialmath.RotateVelocity(f.Transform(inCoordinatesOf), f.SpatialVelocity())
	}
	v := f.SpatialVelocity().
		Sub(spatialmath.TransformVelocity(relativeTo.Transform(f), relativeTo.SpatialVelocity()))
	if inCoordinatesOf == f {
		return v
	}
	return spatialmath.RotateVelocity(f.Transform(inCoordinatesOf), v)
}

// PointSpatialVelocity returns the spatial velocity of a point fixed in this frame at
// the given offset from its origin, relative to the world frame and expressed in this
// frame's coordinates.
func (f *Frame) PointSpatialVelocity(offset r3.Vector) *spatialmath.SpatialVelocity {
	return f.SpatialVelocity().AtPoint(offset)
}

// PointSpatialVelocityRelative returns the spatial velocity of a point fixed in this
// frame, relative to an arbitrary frame and expressed in the coordinates of another.
// Nil arguments mean the world frame.
func (f *Frame) PointSpatialVelocityRelative(
	offset r3.Vector,
	relativeTo, inCoordinatesOf *Frame,
) *spatialmath.SpatialVelocity {
	if inCoordinatesOf == nil {
		inCoordinatesOf = World()
	}
	v := f.SpatialVelocityRelative(relativeTo, f).AtPoint(offset)
	if inCoordinatesOf == f {
		return v
	}
	return spatialmath.RotateVelocity(f.Transform(inCoordinatesOf), v)
}

// LinearVelocity returns the classical linear velocity of this frame's origin
// relative to an arbitrary frame, expressed in the coordinates of another. Nil
// arguments mean the world frame.
func (f *Frame) LinearVelocity(relativeTo, inCoordinatesOf *Frame) r3.Vector {
	return f.SpatialVelocityRelative(relativeTo, inCoordinatesOf).Linear
}

// PointLinearVelocity returns the classical linear velocity of a point fixed in this
// frame at the given offset. Nil arguments mean the world frame.
func (f *Frame) PointLinearVelocity(offset r3.Vector, relativeTo, inCoordinatesOf *Frame) r3.Vector {
	return f.PointSpatialVelocityRelative(offset, relativeTo, inCoordinatesOf).Linear
}

// AngularVelocity returns the angular velocity of this frame relative to an arbitrary
// frame, expressed in the coordinates of another. Nil arguments mean the world frame.
func (f *Frame) AngularVelocity(relativeTo, inCoordinatesOf *Frame) r3.Vector {
	return f.SpatialVelocityRelative(relativeTo, inCoordinatesOf).Angular
}

// SpatialAcceleration returns the total spatial acceleration of this frame relative
// to the world frame, expressed in this frame's coordinates. The composition adds the
// parent's re-expressed acceleration, the primary relative part, and the partial
// (velocity-coupling) part. The result is cached until the next acceleration
// notification; callers must not modify it.
func (f *Frame) SpatialAcceleration() *spatialmath.SpatialAcceleration {
	if f.amWorld {
		return spatialmath.ZeroAcceleration()
	}
	if f.needAccelerationUpdate {
		f.acceleration = spatialmath.TransformAccelerationInverse(f.RelativeTransform(), f.parent.SpatialAcceleration()).
			Add(f.PartialAcceleration()).
			Add(f.PrimaryRelativeAcceleration())
		f.needAccelerationUpdate = false
	}
	return f.acceleration
}

// SpatialAccelerationRelative returns the spatial acceleration of this frame relative
// to an arbitrary frame, expressed in the coordinates of another. Differentiating a
// velocity measured from a moving frame introduces a velocity-coupling term, which is
// folded in here. Nil arguments mean the world frame.
func (f *Frame) SpatialAccelerationRelative(relativeTo, inCoordinatesOf *Frame) *spatialmath.SpatialAcceleration {
	if relativeTo == nil {
		relativeTo = World()
	}
	if inCoordinatesOf == nil {
		inCoordinatesOf = World()
	}
	if relativeTo == f {
		return spatialmath.ZeroAcceleration()
	}
	if relativeTo.amWorld {
		if inCoordinatesOf == f {
			return f.SpatialAcceleration()
		}
		return spatialmath.RotateAcceleration(f.Transform(inCoordinatesOf), f.SpatialAcceleration())
	}
	tf := relativeTo.Transform(f)
	a := f.SpatialAcceleration().
		Sub(spatialmath.TransformAcceleration(tf, relativeTo.SpatialAcceleration())).
		Add(spatialmath.CoriolisAcceleration(
			f.SpatialVelocity(),
			spatialmath.TransformVelocity(tf, relativeTo.SpatialVelocity()),
		))
	if inCoordinatesOf == f {
		return a
	}
	return spatialmath.RotateAcceleration(f.Transform(inCoordinatesOf), a)
}

// PointSpatialAcceleration returns the spatial acceleration of a point fixed in this
// frame at the given offset, relative to the world frame and expressed in this
// frame's coordinates.
func (f *Frame) PointSpatialAcceleration(offset r3.Vector) *spatialmath.SpatialAcceleration {
	return f.SpatialAcceleration().AtPoint(offset, f.SpatialVelocity().Angular)
}

// PointSpatialAccelerationRelative returns the spatial acceleration of a point fixed
// in this frame, relative to an arbitrary frame and expressed in the coordinates of
// another. Nil arguments mean the world frame.
func (f *Frame) PointSpatialAccelerationRelative(
	offset r3.Vector,
	relativeTo, inCoordinatesOf *Frame,
) *spatialmath.SpatialAcceleration {
	if inCoordinatesOf == nil {
		inCoordinatesOf = World()
	}
	v := f.SpatialVelocityRelative(relativeTo, f)
	a := f.SpatialAccelerationRelative(relativeTo, f).AtPoint(offset, v.Angular)
	if inCoordinatesOf == f {
		return a
	}
	return spatialmath.RotateAcceleration(f.Transform(inCoordinatesOf), a)
}

// LinearAcceleration returns the classical linear acceleration of this frame's
// origin: the spatial linear part plus the angular-velocity coupling. Nil arguments
// mean the world frame.
func (f *Frame) LinearAcceleration(relativeTo, inCoordinatesOf *Frame) r3.Vector {
	if inCoordinatesOf == nil {
		inCoordinatesOf = World()
	}
	v := f.SpatialVelocityRelative(relativeTo, f)
	a := f.SpatialAccelerationRelative(relativeTo, f).Linear.Add(v.Angular.Cross(v.Linear))
	return spatialmath.QuatRotateVector(f.Transform(inCoordinatesOf).Orientation().Quaternion(), a)
}

// PointLinearAcceleration returns the classical linear acceleration of a point fixed
// in this frame at the given offset. Nil arguments mean the world frame.
func (f *Frame) PointLinearAcceleration(offset r3.Vector, relativeTo, inCoordinatesOf *Frame) r3.Vector {
	if inCoordinatesOf == nil {
		inCoordinatesOf = World()
	}
	v := f.SpatialVelocityRelative(relativeTo, f).AtPoint(offset)
	a := f.SpatialAccelerationRelative(relativeTo, f).
		AtPoint(offset, v.Angular).Linear.
		Add(v.Angular.Cross(v.Linear))
	return spatialmath.QuatRotateVector(f.Transform(inCoordinatesOf).Orientation().Quaternion(), a)
}

// AngularAcceleration returns the angular acceleration of this frame relative to an
// arbitrary frame, expressed in the coordinates of another. Nil arguments mean the
// world frame.
func (f *Frame) AngularAcceleration(relativeTo, inCoordinatesOf *Frame) r3.Vector {
	return f.SpatialAccelerationRelative(relativeTo, inCoordinatesOf).Angular
}

// ChildFrames returns the Frames that are currently children of this Frame. The
// returned slice is a freshly built copy; mutating it does not affect the tree.
func (f *Frame) ChildFrames() []*Frame {
	children := make([]*Frame, 0, len(f.childFrames))
	for child := range f.childFrames {
		children = append(children, child)
	}
	return children
}

// NumChildFrames returns the number of Frames that are currently children of this Frame.
func (f *Frame) NumChildFrames() int {
	return len(f.childFrames)
}

// ChildEntities returns the Entities that are currently children of this Frame. The
// returned slice is a freshly built copy; mutating it does not affect the tree.
func (f *Frame) ChildEntities() []Entity {
	children := make([]Entity, 0, len(f.childEntities))
	for child := range f.childEntities {
		children = append(children, child)
	}
	return children
}

// NumChildEntities returns the number of Entities that are currently children of this Frame.
func (f *Frame) NumChildEntities() int {
	return len(f.childEntities)
}

// NotifyTransformUpdate informs this frame and everything in its subtree that its
// pose has changed. A transform change also invalidates the dependent velocity and
// acceleration caches. Re-notifying an already dirty subtree is harmless.
func (f *Frame) NotifyTransformUpdate() {
	f.needTransformUpdate = true
	f.needVelocityUpdate = true
	f.needAccelerationUpdate = true
	for child := range f.childFrames {
		child.NotifyTransformUpdate()
	}
	for e := range f.childEntities {
		e.NotifyTransformUpdate()
	}
}

// NotifyVelocityUpdate informs this frame and everything in its subtree that its
// velocity has changed, which also invalidates the acceleration caches.
func (f *Frame) NotifyVelocityUpdate() {
	f.needVelocityUpdate = true
	f.needAccelerationUpdate = true
	for child := range f.childFrames {
		child.NotifyVelocityUpdate()
	}
	for e := range f.childEntities {
		e.NotifyVelocityUpdate()
	}
}

// NotifyAccelerationUpdate informs this frame and everything in its subtree that its
// acceleration has changed.
func (f *Frame) NotifyAccelerationUpdate() {
	f.needAccelerationUpdate = true
	for child := range f.childFrames {
		child.NotifyAccelerationUpdate()
	}
	for e := range f.childEntities {
		e.NotifyAccelerationUpdate()
	}
}

// SetParentFrame moves this frame from its current parent's child set into
// newParent's and invalidates the cached quantities of the moved subtree. The world
// frame cannot be reparented, and a frame cannot be reparented onto itself or one of
// its own descendants; both are rejected before any mutation happens.
func (f *Frame) SetParentFrame(newParent *Frame) error {
	if f.amWorld {
		return ErrReparentWorldFrame
	}
	if newParent == nil {
		return NewParentFrameMissingError()
	}
	if newParent == f || f.isAncestorOf(newParent) {
		return NewCycleError(f.name, newParent.name)
	}
	if newParent == f.parent {
		return nil
	}
	if f.parent != nil {
		f.parent.detachChildFrame(f)
	}
	f.parent = newParent
	newParent.attachChildFrame(f)
	f.NotifyTransformUpdate()
	return nil
}

// Detach removes this frame from its parent's child set, ending its membership in the
// tree. The caller must reparent or discard the frame's children first and must not
// query the frame afterwards.
func (f *Frame) Detach() error {
	if f.amWorld {
		return ErrReparentWorldFrame
	}
	if f.parent != nil {
		f.parent.detachChildFrame(f)
		f.parent = nil
	}
	return nil
}

// Draw invokes the draw hook of this frame's kinematics supplier, if it has one, then
// recurses through child entities and frames. Drawing never mutates kinematic state.
func (f *Frame) Draw() {
	if d, ok := f.kin.(Drawer); ok {
		d.Draw()
	}
	for e := range f.childEntities {
		if d, ok := e.(Drawer); ok {
			d.Draw()
		}
	}
	for child := range f.childFrames {
		child.Draw()
	}
}

// isAncestorOf reports whether f appears in the parent chain of other.
func (f *Frame) isAncestorOf(other *Frame) bool {
	for cur := other.parent; cur != nil; cur = cur.parent {
		if cur == f {
			return true
		}
	}
	return false
}

func (f *Frame) setParentFrame(p *Frame) {
	f.parent = p
}

func (f *Frame) attachChildFrame(child *Frame) {
	f.childFrames[child] = true
	if h, ok := f.kin.(EntityHooks); ok {
		h.ProcessNewEntity(child)
	}
}

func (f *Frame) detachChildFrame(child *Frame) {
	delete(f.childFrames, child)
	if h, ok := f.kin.(EntityHooks); ok {
		h.ProcessRemovedEntity(child)
	}
}

func (f *Frame) attachChildEntity(e Entity) {
	f.childEntities[e] = true
	if h, ok := f.kin.(EntityHooks); ok {
		h.ProcessNewEntity(e)
	}
}

func (f *Frame) detachChildEntity(e Entity) {
	delete(f.childEntities, e)
	if h, ok := f.kin.(EntityHooks); ok {
		h.ProcessRemovedEntity(e)
	}
}
