package referenceframe

// Entity is anything that exists within a reference Frame without necessarily being a
// coordinate system itself. An Entity belongs to exactly one parent Frame at a time
// and is notified whenever its ancestry or the ancestry's state changes.
//
// The interface is sealed by an unexported method: implementations outside this
// package embed *SimpleEntity (or *Frame) to satisfy it, which keeps the parent
// bookkeeping consistent with the child sets held by Frames.
type Entity interface {
	Name() string

	// ParentFrame returns the Frame this Entity currently lives in. Only the world
	// frame and detached entities have no parent.
	ParentFrame() *Frame

	// NotifyTransformUpdate informs the Entity that the pose of its ancestry has
	// changed. Frames use this to invalidate their caches; transform changes also
	// imply velocity and acceleration changes.
	NotifyTransformUpdate()

	// NotifyVelocityUpdate informs the Entity that the velocity of its ancestry has
	// changed, which also implies an acceleration change.
	NotifyVelocityUpdate()

	// NotifyAccelerationUpdate informs the Entity that the acceleration of its
	// ancestry has changed.
	NotifyAccelerationUpdate()

	setParentFrame(*Frame)
}

// ChangeParentFrame moves e out of its current parent Frame's child set and into
// newParent's, firing the removed-entity hook on the old parent and the new-entity
// hook on the new one, then notifies e that its transform has changed. A nil
// newParent detaches e; a detached Entity must not be queried through any Frame.
//
// Frames, including specializations embedding *Frame, are routed through
// SetParentFrame instead, which performs the structural checks a tree node requires.
func ChangeParentFrame(e Entity, newParent *Frame) error {
	if f, ok := e.(interface{ SetParentFrame(*Frame) error }); ok {
		return f.SetParentFrame(newParent)
	}
	old := e.ParentFrame()
	if old == newParent {
		return nil
	}
	if old != nil {
		old.detachChildEntity(e)
	}
	e.setParentFrame(newParent)
	if newParent != nil {
		newParent.attachChildEntity(e)
	}
	e.NotifyTransformUpdate()
	return nil
}

// SimpleEntity is a basic Entity implementation: a named occupant of a Frame with
// optional notification callbacks. It starts detached; attach it with
// ChangeParentFrame. Specializations may embed it and install callbacks to react to
// ancestry changes.
type SimpleEntity struct {
	name   string
	parent *Frame

	// Optional callbacks invoked when the corresponding notification arrives.
	OnTransformUpdate    func()
	OnVelocityUpdate     func()
	OnAccelerationUpdate func()
}

// NewSimpleEntity returns a detached SimpleEntity with the given name.
func NewSimpleEntity(name string) *SimpleEntity {
	return &SimpleEntity{name: name}
}

// Name returns the name of the entity.
func (e *SimpleEntity) Name() string {
	return e.name
}

// ParentFrame returns the Frame this entity currently lives in, or nil if detached.
func (e *SimpleEntity) ParentFrame() *Frame {
	return e.parent
}

// NotifyTransformUpdate relays a transform change to the registered callback.
func (e *SimpleEntity) NotifyTransformUpdate() {
	if e.OnTransformUpdate != nil {
		e.OnTransformUpdate()
	}
}

// NotifyVelocityUpdate relays a velocity change to the registered callback.
func (e *SimpleEntity) NotifyVelocityUpdate() {
	if e.OnVelocityUpdate != nil {
		e.OnVelocityUpdate()
	}
}

// NotifyAccelerationUpdate relays an acceleration change to the registered callback.
func (e *SimpleEntity) NotifyAccelerationUpdate() {
	if e.OnAccelerationUpdate != nil {
		e.OnAccelerationUpdate()
	}
}

func (e *SimpleEntity) setParentFrame(f *Frame) {
	e.parent = f
}
