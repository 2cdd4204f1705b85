// Package arm describes the joint space and physical geometry of the SO-101
// 6-DOF serial manipulator: named joint values, the published joint limit
// table, and the link dimensions shared by every solver.
package arm

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

// JointState is one complete joint-space configuration of the arm. The five
// angular fields are in degrees; Gripper is percent open, 0-100.
type JointState struct {
	Base      float64 `json:"base"`
	Shoulder  float64 `json:"shoulder"`
	Elbow     float64 `json:"elbow"`
	Wrist     float64 `json:"wrist"`
	WristRoll float64 `json:"wristRoll"`
	Gripper   float64 `json:"gripper"`
}

// Limit represents the allowed range of motion of one joint.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether value lies within the limit range, inclusive.
func (l Limit) Contains(value float64) bool {
	return value >= l.Min && value <= l.Max
}

// Clamp returns value restricted to the limit range.
func (l Limit) Clamp(value float64) float64 {
	if value < l.Min {
		return l.Min
	}
	if value > l.Max {
		return l.Max
	}
	return value
}

// Range returns the span of the limit in the joint's own units.
func (l Limit) Range() float64 {
	return l.Max - l.Min
}

// Limits is the fixed per-joint limit table. It is loaded once with the model
// and never mutated at runtime.
type Limits struct {
	Base      Limit `json:"base"`
	Shoulder  Limit `json:"shoulder"`
	Elbow     Limit `json:"elbow"`
	Wrist     Limit `json:"wrist"`
	WristRoll Limit `json:"wristRoll"`
	Gripper   Limit `json:"gripper"`
}

// Validate checks that every limit range is well formed.
func (ls Limits) Validate() error {
	var err error
	for _, jl := range []struct {
		name string
		lim  Limit
	}{
		{"base", ls.Base},
		{"shoulder", ls.Shoulder},
		{"elbow", ls.Elbow},
		{"wrist", ls.Wrist},
		{"wristRoll", ls.WristRoll},
		{"gripper", ls.Gripper},
	} {
		if jl.lim.Min > jl.lim.Max {
			err = multierr.Append(err, errors.Errorf("joint %s: min %.2f greater than max %.2f", jl.name, jl.lim.Min, jl.lim.Max))
		}
	}
	return err
}

// Contains reports whether every field of the given state lies within its limit.
func (ls Limits) Contains(js JointState) bool {
	return ls.Base.Contains(js.Base) &&
		ls.Shoulder.Contains(js.Shoulder) &&
		ls.Elbow.Contains(js.Elbow) &&
		ls.Wrist.Contains(js.Wrist) &&
		ls.WristRoll.Contains(js.WristRoll) &&
		ls.Gripper.Contains(js.Gripper)
}

// StateL2Distance returns the two-norm between the angular fields of two joint
// states, in degrees. The gripper percentage is excluded since it is not an
// angle.
func StateL2Distance(a, b JointState) float64 {
	diff := []float64{
		a.Base - b.Base,
		a.Shoulder - b.Shoulder,
		a.Elbow - b.Elbow,
		a.Wrist - b.Wrist,
		a.WristRoll - b.WristRoll,
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}
