package referenceframe

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// CheckTree walks the subtree rooted at root and verifies the structural invariants
// of the kinematic tree: every child frame's parent pointer matches the frame whose
// child set contains it, every child entity points back at its containing frame, and
// no frame appears in its own ancestry. All findings are aggregated and returned
// together.
func CheckTree(root *Frame) error {
	if root == nil {
		return NewParentFrameMissingError()
	}
	return checkSubtree(root, map[*Frame]bool{})
}

func checkSubtree(f *Frame, seen map[*Frame]bool) error {
	if seen[f] {
		return errors.Errorf("frame %q appears more than once in the tree", f.name)
	}
	seen[f] = true

	var err error
	if !f.amWorld && f.parent == nil {
		err = multierr.Append(err, errors.Errorf("frame %q has no parent and is not the world frame", f.name))
	}
	for child := range f.childFrames {
		if child.parent != f {
			err = multierr.Append(err, errors.Errorf(
				"frame %q is in the child set of %q but has parent %q",
				child.name, f.name, parentName(child),
			))
		}
		err = multierr.Append(err, checkSubtree(child, seen))
	}
	for e := range f.childEntities {
		if e.ParentFrame() != f {
			err = multierr.Append(err, errors.Errorf(
				"entity %q is in the child set of %q but has parent %q",
				e.Name(), f.name, parentName(e),
			))
		}
	}
	return err
}

func parentName(e Entity) string {
	if p := e.ParentFrame(); p != nil {
		return p.Name()
	}
	return "<none>"
}

// LogTree writes a debug dump of the subtree rooted at root to the given logger: one
// line per frame with its depth, world pose, and entity count.
func LogTree(logger golog.Logger, root *Frame) {
	logSubtree(logger, root, 0)
}

func logSubtree(logger golog.Logger, f *Frame, depth int) {
	tf := f.WorldTransform()
	logger.Debugw("frame",
		"name", f.Name(),
		"depth", depth,
		"point", tf.Point(),
		"orientation", tf.Orientation().AxisAngles(),
		"entities", f.NumChildEntities(),
	)
	for child := range f.childFrames {
		logSubtree(logger, child, depth+1)
	}
}
