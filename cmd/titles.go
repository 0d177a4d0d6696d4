package cmd

import (
	"fmt"
	"strconv"

	"achievement-tracker/feature/titles"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkSchemaFlag bool

// titlesCmd lists installed titles.
var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Scan and list installed games",
	Long: `Scans the configured install locations, resolves game names, registers
local progress files and prints the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if checkSchemaFlag {
			missing, err := a.repo.CheckSchema()
			if err != nil {
				return fmt.Errorf("schema check failed: %w", err)
			}
			if len(missing) > 0 {
				a.log.Warn("Title table is missing columns", zap.Strings("missing", missing))
			} else {
				a.log.Info("Title table schema is complete")
			}
		}

		found, err := a.library.Refresh(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(found))
		for _, t := range found {
			rows = append(rows, titleRow(t, a.registry.Count(t.ID)))
		}
		fmt.Println(renderTable(
			[]string{"App ID", "Name", "Team", "Location", "Unlocked", "Path"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		))
		fmt.Printf("%d games\n", len(found))
		return nil
	},
}

func titleRow(t titles.Title, unlocked int) []string {
	return []string{t.ID, t.Name, t.Team, t.Location, strconv.Itoa(unlocked), t.InstallPath}
}

func init() {
	titlesCmd.Flags().BoolVar(&checkSchemaFlag, "check-schema", false, "Verify the title table columns (requires database.enabled)")
	RootCmd.AddCommand(titlesCmd)
}
