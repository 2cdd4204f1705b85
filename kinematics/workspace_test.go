package kinematics

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.robosim.dev/armkin/arm"
)

func so101Analyzer(t *testing.T) (*arm.Model, *Analyzer) {
	t.Helper()
	model, err := arm.SO101()
	test.That(t, err, test.ShouldBeNil)
	return model, NewAnalyzer(model)
}

func TestIsReachable(t *testing.T) {
	_, analyzer := so101Analyzer(t)

	// a point at working distance in front of the arm
	test.That(t, analyzer.IsReachable(r3.Vector{X: 0, Y: 0.20, Z: 0.25}), test.ShouldBeTrue)

	// below the ground plane
	test.That(t, analyzer.IsReachable(r3.Vector{X: 0, Y: -0.01, Z: 0.25}), test.ShouldBeFalse)

	// far outside any possible reach
	test.That(t, analyzer.IsReachable(r3.Vector{X: 10, Y: 0, Z: 0}), test.ShouldBeFalse)
	test.That(t, analyzer.IsReachable(r3.Vector{X: 0, Y: 0.1416, Z: 0.8}), test.ShouldBeFalse)
}

func TestIsReachableOverriddenFactors(t *testing.T) {
	model, analyzer := so101Analyzer(t)

	// just beyond the default annulus, level with the shoulder pivot
	point := r3.Vector{X: 0, Y: model.Dimensions().ShoulderPivotHeight(), Z: 0.33}
	test.That(t, analyzer.IsReachable(point), test.ShouldBeFalse)

	// counting the full wrist+gripper segment extends the outer radius
	analyzer.ReachableWristFactor = 1.0
	test.That(t, analyzer.IsReachable(point), test.ShouldBeTrue)
}

func TestWorkspaceBounds(t *testing.T) {
	model, analyzer := so101Analyzer(t)
	d := model.Dimensions()

	bounds := analyzer.Bounds()
	reach := d.UpperArmLength + d.ForearmLength + d.WristLength + d.GripperLength
	test.That(t, bounds.MaxReach, test.ShouldAlmostEqual, reach)
	test.That(t, bounds.Min.X, test.ShouldAlmostEqual, -reach)
	test.That(t, bounds.Min.Z, test.ShouldAlmostEqual, -reach)
	test.That(t, bounds.Min.Y, test.ShouldEqual, 0)
	test.That(t, bounds.Max.X, test.ShouldAlmostEqual, reach)
	test.That(t, bounds.Max.Z, test.ShouldAlmostEqual, reach)
	test.That(t, bounds.Max.Y, test.ShouldAlmostEqual, d.ShoulderPivotHeight()+reach)
	test.That(t, bounds.Max.Y, test.ShouldAlmostEqual, 0.548, 1e-3)
}

func TestAnalyzerSolverConsistency(t *testing.T) {
	model, analyzer := so101Analyzer(t)
	ik := NewIKSolver(model, golog.NewTestLogger(t))

	// points the pre-filter rejects as hopeless must also fail a full solve
	for _, point := range []r3.Vector{
		{X: 10, Y: 0, Z: 0},
		{X: 0, Y: -0.5, Z: 0.2},
		{X: 1, Y: 1, Z: 1},
	} {
		test.That(t, analyzer.IsReachable(point), test.ShouldBeFalse)
		_, err := ik.Solve(point, arm.JointState{})
		test.That(t, errors.Is(err, ErrUnreachable), test.ShouldBeTrue)
	}
}
