package kinematics

import (
	"math"

	"github.com/golang/geo/r3"

	"go.robosim.dev/armkin/arm"
)

// Default heuristic factors of the workspace approximation. They come from the
// original arm model without a stated geometric derivation; confirm with the
// owner of the physical model before changing them.
const (
	// DefaultReachableWristFactor is the fraction of the wrist+gripper
	// segment counted toward the maximum reach. Counting only half
	// deliberately undershoots the full vector-sum reach, since joint limits
	// make that reach unrealistic.
	DefaultReachableWristFactor = 0.5
	// DefaultMinReachFactor scales the difference of the two principal link
	// lengths into an exclusion zone near the shoulder axis.
	DefaultMinReachFactor = 0.3
)

// Analyzer approximates the reachable workspace of the arm as a spherical
// annulus around the shoulder pivot. It trades precision for speed and is
// meant as a coarse pre-filter before committing to a full inverse solve, not
// as a guarantee of solver success.
type Analyzer struct {
	dims arm.Dimensions

	// Heuristic factors, overridable per instance.
	ReachableWristFactor float64
	MinReachFactor       float64
}

// NewAnalyzer returns an analyzer over the given model with the default
// heuristic factors.
func NewAnalyzer(model *arm.Model) *Analyzer {
	return &Analyzer{
		dims:                 model.Dimensions(),
		ReachableWristFactor: DefaultReachableWristFactor,
		MinReachFactor:       DefaultMinReachFactor,
	}
}

// maxReach returns the outer radius of the annulus.
func (a *Analyzer) maxReach() float64 {
	return a.dims.ForearmLength + a.dims.WristLength + a.ReachableWristFactor*a.dims.WristSegmentLength()
}

// minReach returns the radius of the exclusion zone near the shoulder axis.
func (a *Analyzer) minReach() float64 {
	return a.MinReachFactor * math.Abs(a.dims.UpperArmLength-a.dims.ForearmLength)
}

// IsReachable reports whether the point plausibly lies within the arm's
// reachable volume. A false result is dependable; a true result is only an
// approximation.
func (a *Analyzer) IsReachable(point r3.Vector) bool {
	if point.Y < 0 {
		return false
	}
	horizontal := math.Hypot(point.X, point.Z) - a.dims.ShoulderOffset - a.dims.ElbowOffset
	vertical := point.Y - a.dims.ShoulderPivotHeight()
	radial := math.Hypot(horizontal, vertical)
	return radial >= a.minReach() && radial <= a.maxReach()
}

// WorkspaceBounds is the axis-aligned bounding box of the reachable volume.
type WorkspaceBounds struct {
	Min      r3.Vector `json:"min"`
	Max      r3.Vector `json:"max"`
	MaxReach float64   `json:"maxReach"`
}

// Bounds returns a box symmetric in the horizontal axes with radius equal to
// the vector-sum of all arm segment lengths, spanning from the ground plane to
// the shoulder pivot plus that same reach.
func (a *Analyzer) Bounds() WorkspaceBounds {
	reach := a.dims.TotalReach()
	return WorkspaceBounds{
		Min:      r3.Vector{X: -reach, Y: 0, Z: -reach},
		Max:      r3.Vector{X: reach, Y: a.dims.ShoulderPivotHeight() + reach, Z: reach},
		MaxReach: reach,
	}
}
