package referenceframe

import "sync"

// WorldName is the name of the singleton world frame.
const WorldName = "world"

var (
	worldOnce     sync.Once
	worldInstance *Frame
)

// World returns the singleton world frame: the root of every kinematic tree. It is
// constructed on first use and shared for the life of the process. Its transform is
// always identity and its velocity and acceleration are always zero; queries against
// it never recompute and invalidation calls against it have no effect on its state.
func World() *Frame {
	worldOnce.Do(func() {
		worldInstance = &Frame{
			name:          WorldName,
			childFrames:   map[*Frame]bool{},
			childEntities: map[Entity]bool{},
			amWorld:       true,
		}
	})
	return worldInstance
}
