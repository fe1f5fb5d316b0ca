// Package main contains a command that drives a three-joint kinematic chain through
// a prescribed motion and logs the world-space quantities the frame tree reports.
package main

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	goutils "go.viam.com/utils"

	"github.com/mechsim/kinetree/referenceframe"
	"github.com/mechsim/kinetree/spatialmath"
	"github.com/mechsim/kinetree/utils"
)

var logger = golog.NewDevelopmentLogger("chainsim")

func main() {
	goutils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Steps    int     `flag:"steps,default=10,usage=number of simulation steps"`
	TimeStep float64 `flag:"dt,default=0.1,usage=seconds per step"`
}

type link struct {
	frame  *referenceframe.MovableFrame
	length float64
	rate   float64 // joint angular rate, deg/s
	angle  float64 // rad
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := goutils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	chain, err := buildChain()
	if err != nil {
		return err
	}
	if err := referenceframe.CheckTree(referenceframe.World()); err != nil {
		return err
	}

	wrist := chain[len(chain)-1].frame
	tip := r3.Vector{X: chain[len(chain)-1].length, Y: 0, Z: 0}

	for step := 0; step < argsParsed.Steps; step++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		advance(chain, argsParsed.TimeStep)

		angles := make([]float64, len(chain))
		for i, l := range chain {
			angles[i] = utils.RadToDeg(l.angle)
		}

		pose := wrist.WorldTransform()
		vel := wrist.SpatialVelocityRelative(nil, nil)
		logger.Infow("step",
			"t", float64(step+1)*argsParsed.TimeStep,
			"joints_deg", angles,
			"wrist", pose.Point(),
			"angular", vel.Angular,
			"linear", vel.Linear,
			"tip_velocity", wrist.PointLinearVelocity(tip, nil, nil),
		)
	}

	referenceframe.LogTree(logger, referenceframe.World())
	return nil
}

// buildChain assembles World -> shoulder -> elbow -> wrist, each joint rotating about
// Z at its own rate, with each link extending along its parent's X axis.
func buildChain() ([]*link, error) {
	chain := []*link{
		{length: 1.0, rate: 35},
		{length: 0.75, rate: -50},
		{length: 0.5, rate: 85},
	}
	names := []string{"shoulder", "elbow", "wrist"}

	parent := referenceframe.World()
	offset := 0.0
	for i, l := range chain {
		frame, err := referenceframe.NewMovableFrame(parent, names[i])
		if err != nil {
			return nil, err
		}
		l.frame = frame
		l.frame.SetRelativeTransform(jointPose(offset, l.angle))
		l.frame.SetRelativeSpatialVelocity(&spatialmath.SpatialVelocity{
			Angular: r3.Vector{X: 0, Y: 0, Z: utils.DegToRad(l.rate)},
		})
		parent = frame.Frame
		offset = l.length
	}
	return chain, nil
}

// advance integrates the prescribed joint angles forward and pushes the new relative
// poses into the tree, invalidating the affected subtrees.
func advance(chain []*link, dt float64) {
	offset := 0.0
	for _, l := range chain {
		l.angle = math.Mod(l.angle+utils.DegToRad(l.rate)*dt, 2*math.Pi)
		l.frame.SetRelativeTransform(jointPose(offset, l.angle))
		offset = l.length
	}
}

// jointPose places a joint at the end of its parent link, rotated about Z.
func jointPose(parentLength, angle float64) spatialmath.Pose {
	return spatialmath.NewPoseFromAxisAngle(
		r3.Vector{X: parentLength, Y: 0, Z: 0},
		r3.Vector{X: 0, Y: 0, Z: 1},
		angle,
	)
}
