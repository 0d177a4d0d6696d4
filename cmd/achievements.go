package cmd

import (
	"fmt"

	"achievement-tracker/feature/achievements"

	"github.com/spf13/cobra"
)

var (
	sortFlag     string
	limitFlag    int
	lockedOnly   bool
	unlockedOnly bool
	refreshFlag  bool
)

// achievementsCmd prints the merged catalog of one title.
var achievementsCmd = &cobra.Command{
	Use:   "achievements <app-id>",
	Short: "Show the merged achievements of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		id := args[0]
		if refreshFlag {
			a.engine.Invalidate(id)
		}

		svc := achievements.NewService(a.engine, a.registry, a.library, a.cfg.Achievements.ShowHidden, a.log)
		q := achievements.DefaultQuery()
		q.SortBy = sortFlag
		q.Limit = limitFlag
		q.IncludeLocked = !unlockedOnly
		q.IncludeUnlocked = !lockedOnly

		list, err := svc.Achievements(cmd.Context(), id, q)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list.Achievements))
		for _, it := range list.Achievements {
			mark := ""
			if it.Unlocked {
				mark = "✓"
			}
			rows = append(rows, []string{
				it.Key, it.Name, fmt.Sprintf("%.1f%%", it.Percentage), string(it.Rarity), string(it.Source), mark,
			})
		}
		fmt.Println(renderTable(
			[]string{"ID", "Name", "Global", "Rarity", "Source", "Unlocked"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
		))
		s := list.Stats
		fmt.Printf("%d/%d unlocked (%.1f%%), strategy %s\n", s.Unlocked, s.Total, s.CompletionPercentage, a.engine.Strategy(""))
		return nil
	},
}

func init() {
	achievementsCmd.Flags().StringVar(&sortFlag, "sort", achievements.SortPercentage, "Sort by percentage, name or unlocked")
	achievementsCmd.Flags().IntVar(&limitFlag, "limit", 0, "Show at most this many achievements")
	achievementsCmd.Flags().BoolVar(&lockedOnly, "locked", false, "Only show locked achievements")
	achievementsCmd.Flags().BoolVar(&unlockedOnly, "unlocked", false, "Only show unlocked achievements")
	achievementsCmd.Flags().BoolVar(&refreshFlag, "refresh", false, "Drop the cached catalog before merging")
	RootCmd.AddCommand(achievementsCmd)
}
