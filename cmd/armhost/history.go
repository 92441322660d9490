package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"armhost/pkg/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent moves from the history store",
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig()
		if err != nil {
			return err
		}

		store, err := history.Open(fc.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		counts, err := store.CountByOutcome()
		if err != nil {
			return err
		}

		for _, rec := range records {
			fmt.Printf("%s  (%g, %g) -> (%g, %g)  %-12s  %d poses\n",
				rec.RequestedAt.Format("2006-01-02 15:04:05"),
				rec.From.X, rec.From.Y, rec.To.X, rec.To.Y,
				rec.Outcome, rec.PosesEmitted)
		}
		fmt.Printf("\ncompleted %d, out_of_range %d, path_blocked %d\n",
			counts[history.OutcomeCompleted],
			counts[history.OutcomeOutOfRange],
			counts[history.OutcomePathBlocked])
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of moves to show")
}
