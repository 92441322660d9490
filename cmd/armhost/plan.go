package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"armhost/pkg/arm"
	"armhost/pkg/command"
)

var planCmd = &cobra.Command{
	Use:   "plan FROM TO",
	Short: "Print the waypoint poses for a move without executing it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig()
		if err != nil {
			return err
		}
		from, err := command.ParseTarget(args[0])
		if err != nil {
			return err
		}
		to, err := command.ParseTarget(args[1])
		if err != nil {
			return err
		}

		poses, err := arm.PlanMove(fc.Arm, from, to)
		if err != nil {
			return err
		}

		fmt.Printf("%4s  %22s  %22s\n", "step", "elbow", "end-effector")
		for i, pose := range poses {
			fmt.Printf("%4d  (%9.3f, %9.3f)  (%9.3f, %9.3f)\n", i+1,
				pose.Elbow.X, pose.Elbow.Y,
				pose.EndEffector.X, pose.EndEffector.Y)
		}
		return nil
	},
}
