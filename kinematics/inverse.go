package kinematics

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.robosim.dev/armkin/arm"
	"go.robosim.dev/armkin/utils"
)

// ErrUnreachable is returned when no joint configuration within the search
// space places the tip inside the accepted tolerance of the target.
var ErrUnreachable = errors.New("target position is unreachable")

// SearchParams holds the step sizes and tolerances of the inverse solve. All
// angular values are degrees, all distances meters.
type SearchParams struct {
	// Coarse phase steps over the full limit range of each joint.
	ShoulderStep float64
	ElbowStep    float64
	WristStep    float64
	// Refinement explores a cube of RefineRadius degrees each side of the
	// coarse best at RefineStep resolution, and only runs when the coarse
	// error is already below RefineThreshold.
	RefineRadius    float64
	RefineStep      float64
	RefineThreshold float64
	// Tolerance is the maximum tip error of an accepted solution.
	Tolerance float64
}

// DefaultSearchParams returns the standard search configuration.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		ShoulderStep:    5,
		ElbowStep:       5,
		WristStep:       10,
		RefineRadius:    5,
		RefineStep:      1,
		RefineThreshold: 0.05,
		Tolerance:       0.03,
	}
}

// IKSolver finds joint states that place the gripper tip at a Cartesian
// target. Only the tip position is matched; wrist roll and gripper aperture
// are passed through from the caller's reference state. The solver holds no
// mutable state and is safe for concurrent use.
type IKSolver struct {
	model  *arm.Model
	fk     *Forward
	params SearchParams
	logger golog.Logger
}

// NewIKSolver returns a solver over the given model using DefaultSearchParams.
func NewIKSolver(model *arm.Model, logger golog.Logger) *IKSolver {
	return NewIKSolverWithParams(model, DefaultSearchParams(), logger)
}

// NewIKSolverWithParams returns a solver with a custom search configuration.
func NewIKSolverWithParams(model *arm.Model, params SearchParams, logger golog.Logger) *IKSolver {
	return &IKSolver{
		model:  model,
		fk:     NewForward(model),
		params: params,
		logger: logger,
	}
}

// Solve returns a joint state whose tip position is within tolerance of
// target, or ErrUnreachable. The returned shoulder, elbow and wrist always lie
// within their limits; wristRoll and gripper are copied unchanged from
// reference. Solve never panics and always terminates within the bounded
// evaluation count of the grid search.
func (ik *IKSolver) Solve(target r3.Vector, reference arm.JointState) (arm.JointState, error) {
	solution, _, err := ik.solve(target, reference)
	return solution, err
}

// candidate is one shoulder/elbow/wrist combination under evaluation.
type candidate struct {
	shoulder, elbow, wrist float64
}

// solve additionally reports how many forward evaluations the search spent.
func (ik *IKSolver) solve(target r3.Vector, reference arm.JointState) (arm.JointState, int, error) {
	limits := ik.model.Limits()

	// The base angle is fully determined by the horizontal target direction;
	// no other joint can compensate for it, so an out-of-limit base means the
	// target is unreachable before any search is spent.
	baseAngle := utils.RadToDeg(math.Atan2(target.X, target.Z))
	if !limits.Base.Contains(baseAngle) {
		ik.logger.Debugw("required base angle outside limits", "base", baseAngle, "target", target)
		return arm.JointState{}, 0, ErrUnreachable
	}
	base := limits.Base.Clamp(baseAngle)

	evals := 0
	evalError := func(c candidate) float64 {
		evals++
		tip := ik.fk.TipPosition(arm.JointState{
			Base:     base,
			Shoulder: c.shoulder,
			Elbow:    c.elbow,
			Wrist:    c.wrist,
		})
		return tip.Sub(target).Norm()
	}

	// Coarse phase: sweep the full limit range of each joint. Strict
	// less-than keeps the first combination encountered on an exact tie,
	// which keeps solves reproducible.
	var best candidate
	bestErr := math.Inf(1)
	for _, shoulder := range gridValues(limits.Shoulder.Min, limits.Shoulder.Max, ik.params.ShoulderStep) {
		for _, elbow := range gridValues(limits.Elbow.Min, limits.Elbow.Max, ik.params.ElbowStep) {
			for _, wrist := range gridValues(limits.Wrist.Min, limits.Wrist.Max, ik.params.WristStep) {
				c := candidate{shoulder, elbow, wrist}
				if d := evalError(c); d < bestErr {
					bestErr = d
					best = c
				}
			}
		}
	}
	ik.logger.Debugw("coarse search finished", "error", bestErr, "shoulder", best.shoulder, "elbow", best.elbow, "wrist", best.wrist)

	// Refinement: a fine sweep around the coarse best, each candidate clamped
	// per joint before evaluation. Clamping can fold boundary candidates back
	// onto points the coarse phase already scored; the repeat evaluations are
	// harmless and keep the sweep order fixed.
	if bestErr < ik.params.RefineThreshold {
		coarse := best
		for _, shoulder := range gridValues(coarse.shoulder-ik.params.RefineRadius, coarse.shoulder+ik.params.RefineRadius, ik.params.RefineStep) {
			for _, elbow := range gridValues(coarse.elbow-ik.params.RefineRadius, coarse.elbow+ik.params.RefineRadius, ik.params.RefineStep) {
				for _, wrist := range gridValues(coarse.wrist-ik.params.RefineRadius, coarse.wrist+ik.params.RefineRadius, ik.params.RefineStep) {
					c := candidate{
						shoulder: limits.Shoulder.Clamp(shoulder),
						elbow:    limits.Elbow.Clamp(elbow),
						wrist:    limits.Wrist.Clamp(wrist),
					}
					if d := evalError(c); d < bestErr {
						bestErr = d
						best = c
					}
				}
			}
		}
		ik.logger.Debugw("refinement finished", "error", bestErr)
	}

	if bestErr >= ik.params.Tolerance {
		ik.logger.Debugw("no solution within tolerance", "error", bestErr, "target", target, "evaluations", evals)
		return arm.JointState{}, evals, ErrUnreachable
	}

	return arm.JointState{
		Base:      base,
		Shoulder:  best.shoulder,
		Elbow:     best.elbow,
		Wrist:     best.wrist,
		WristRoll: reference.WristRoll,
		Gripper:   reference.Gripper,
	}, evals, nil
}

// gridValues returns the ascending sweep from min to max at the given step,
// always starting at min. Indexed stepping avoids drift from repeated float
// addition.
func gridValues(min, max, step float64) []float64 {
	if step <= 0 || min > max {
		return nil
	}
	count := int(math.Floor((max-min)/step)) + 1
	values := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		values = append(values, min+float64(i)*step)
	}
	return values
}
