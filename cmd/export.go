package cmd

import (
	"achievement-tracker/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// exportCmd writes merged catalogs to the output directory or bucket.
var exportCmd = &cobra.Command{
	Use:   "export <app-id>...",
	Short: "Export merged catalogs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		svc := export.NewService(a.engine, a.sink, a.log)
		failed := 0
		for _, id := range args {
			if _, err := svc.Export(cmd.Context(), id); err != nil {
				a.log.Error("Export failed", zap.String("app_id", id), zap.Error(err))
				failed++
			}
		}
		a.log.Info("Export finished", zap.Int("exported", len(args)-failed), zap.Int("failed", failed))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}
