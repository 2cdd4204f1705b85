// Package kinematics converts between the joint space and the Cartesian tip
// position of the SO-101 arm. It provides the forward solver, a bounded
// grid-search inverse solver, and a cheap workspace pre-filter. Positions are
// r3.Vectors in meters with Y up.
package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"go.robosim.dev/armkin/arm"
	"go.robosim.dev/armkin/utils"
)

// Forward computes Cartesian tip positions from joint states. It is a pure
// geometric function: it performs no limit checks and accepts any numeric
// joint state.
type Forward struct {
	dims arm.Dimensions
}

// NewForward returns a forward solver over the given model's dimensions.
func NewForward(model *arm.Model) *Forward {
	return &Forward{dims: model.Dimensions()}
}

// planeAngles returns the cumulative segment angles within the vertical arm
// plane, in radians. Shoulder, elbow and wrist rotations accumulate in
// sequence.
func planeAngles(joints arm.JointState) (a1, a2, a3 float64) {
	a1 = utils.DegToRad(joints.Shoulder)
	a2 = a1 + utils.DegToRad(joints.Elbow)
	a3 = a2 + utils.DegToRad(joints.Wrist)
	return a1, a2, a3
}

// world maps an in-plane (forward, up) pair into world coordinates given the
// base rotation.
func (f *Forward) world(baseRad, forward, up float64) r3.Vector {
	return r3.Vector{
		X: forward * math.Sin(baseRad),
		Y: f.dims.ShoulderPivotHeight() + up,
		Z: forward * math.Cos(baseRad),
	}
}

// TipPosition returns the Cartesian position of the gripper tip for the given
// joint state.
func (f *Forward) TipPosition(joints arm.JointState) r3.Vector {
	baseRad := utils.DegToRad(joints.Base)
	a1, a2, a3 := planeAngles(joints)

	forward := f.dims.ShoulderOffset
	up := 0.0
	forward += f.dims.UpperArmLength * math.Sin(a1)
	up += f.dims.UpperArmLength * math.Cos(a1)
	forward += f.dims.ForearmLength * math.Sin(a2)
	up += f.dims.ForearmLength * math.Cos(a2)
	forward += f.dims.WristSegmentLength() * math.Sin(a3)
	up += f.dims.WristSegmentLength() * math.Cos(a3)

	return f.world(baseRad, forward, up)
}

// JointChain returns the position of every joint pivot in order: base,
// shoulder, elbow, wrist, tip. The final point is always identical to
// TipPosition for the same input; the intermediates exist for visualization.
func (f *Forward) JointChain(joints arm.JointState) []r3.Vector {
	baseRad := utils.DegToRad(joints.Base)
	a1, a2, a3 := planeAngles(joints)

	points := make([]r3.Vector, 0, 5)
	points = append(points, r3.Vector{Y: f.dims.BaseHeight})

	forward := f.dims.ShoulderOffset
	up := 0.0
	points = append(points, f.world(baseRad, forward, up))

	forward += f.dims.UpperArmLength * math.Sin(a1)
	up += f.dims.UpperArmLength * math.Cos(a1)
	points = append(points, f.world(baseRad, forward, up))

	forward += f.dims.ForearmLength * math.Sin(a2)
	up += f.dims.ForearmLength * math.Cos(a2)
	points = append(points, f.world(baseRad, forward, up))

	forward += f.dims.WristSegmentLength() * math.Sin(a3)
	up += f.dims.WristSegmentLength() * math.Cos(a3)
	points = append(points, f.world(baseRad, forward, up))

	return points
}
