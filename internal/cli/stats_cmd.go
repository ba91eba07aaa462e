package cli

import (
	"fmt"
	"io"

	"github.com/dukerupert/questboard/internal/household"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var participant string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print quest stats for every participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()

			state, err := e.openState(cmd.Context(), nil)
			if err != nil {
				return err
			}

			all := state.AllStats()
			if participant != "" {
				st, err := state.Stats(participant)
				if err != nil {
					return err
				}
				all = []household.ParticipantStats{st}
			}
			printStats(cmd.OutOrStdout(), all)
			return nil
		},
	}

	cmd.Flags().StringVar(&participant, "participant", "", "Only show one participant")

	return cmd
}

func printStats(w io.Writer, all []household.ParticipantStats) {
	for i, p := range all {
		if i > 0 {
			fmt.Fprintln(w)
		}
		d := p.Display
		fmt.Fprintf(w, "%s\n", p.Name)
		fmt.Fprintf(w, "  Streak:                %s\n", d.Streak)
		fmt.Fprintf(w, "  Quests completed:      %s\n", d.TotalQuests)
		fmt.Fprintf(w, "  Average finish:        %s\n", d.AverageFinish)
		fmt.Fprintf(w, "  Best finish:           %s\n", d.BestFinish)
		fmt.Fprintf(w, "  On time:               %s\n", d.OnTimeRate)
		fmt.Fprintf(w, "  Avg before deadline:   %s\n", d.AverageBeforeDeadline)
		fmt.Fprintf(w, "  Lifetime credits:      %s\n", d.LifetimeCredits)
		fmt.Fprintf(w, "  Rewards claimed:       %s\n", d.RewardsClaimed)
	}
}
