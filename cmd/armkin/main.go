// Package main is a small driver for the armkin solvers: it solves a single
// Cartesian target and prints the resulting joint state as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.robosim.dev/armkin/arm"
	"go.robosim.dev/armkin/kinematics"
)

var logger = golog.NewDevelopmentLogger("armkin")

var (
	targetX = flag.Float64("x", 0, "target x in meters")
	targetY = flag.Float64("y", 0.3, "target y (height) in meters")
	targetZ = flag.Float64("z", 0.2, "target z in meters")
)

func main() {
	goutils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	flag.Parse()

	model, err := arm.SO101()
	if err != nil {
		return err
	}

	target := r3.Vector{X: *targetX, Y: *targetY, Z: *targetZ}
	analyzer := kinematics.NewAnalyzer(model)
	if !analyzer.IsReachable(target) {
		logger.Warnw("target outside the approximate workspace, solving anyway", "target", target)
	}

	solver := kinematics.NewIKSolver(model, logger)
	solution, err := solver.Solve(target, arm.JointState{})
	if err != nil {
		return errors.Wrapf(err, "solving for %v", target)
	}

	tip := kinematics.NewForward(model).TipPosition(solution)
	logger.Infow("solved", "error_m", tip.Sub(target).Norm())

	out, err := json.MarshalIndent(solution, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
