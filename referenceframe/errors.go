package referenceframe

import "github.com/pkg/errors"

// ErrReparentWorldFrame is returned when a caller attempts to give the world frame a
// parent. The world frame is the root of every tree and never moves.
var ErrReparentWorldFrame = errors.New("the world frame cannot be given a parent")

// NewParentFrameMissingError returns an error indicating that a frame or entity was
// given a nil parent where one is required.
func NewParentFrameMissingError() error {
	return errors.New("parent frame is nil")
}

// NewCycleError returns an error indicating that reparenting frame onto newParent
// would create a cycle in the tree.
func NewCycleError(frame, newParent string) error {
	return errors.Errorf("cannot make %q the parent of %q: it is a descendant of %q", newParent, frame, frame)
}

// NewMissingKinematicsError returns an error indicating that a frame was constructed
// without a kinematics supplier.
func NewMissingKinematicsError(frame string) error {
	return errors.Errorf("frame %q has no kinematics supplier", frame)
}
