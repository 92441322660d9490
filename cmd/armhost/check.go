package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"armhost/pkg/arm"
	"armhost/pkg/command"
	"armhost/pkg/errors"
)

var checkCmd = &cobra.Command{
	Use:   "check X,Y",
	Short: "Check whether a target is reachable from the configured start",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig()
		if err != nil {
			return err
		}
		target, err := command.ParseTarget(args[0])
		if err != nil {
			return err
		}

		pose, err := arm.Solve(fc.Arm, target)
		if err != nil {
			return errors.OutOfRangeError(target.X, target.Y)
		}
		if !arm.PathClear(fc.Arm, fc.Start, target) {
			return errors.PathBlockedError(fc.Start.X, fc.Start.Y, target.X, target.Y)
		}

		fmt.Printf("reachable: elbow (%g, %g), end-effector (%g, %g)\n",
			pose.Elbow.X, pose.Elbow.Y, pose.EndEffector.X, pose.EndEffector.Y)
		return nil
	},
}
