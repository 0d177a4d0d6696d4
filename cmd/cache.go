package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"achievement-tracker/core/cache"
	"achievement-tracker/feature/system"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	namespaceFlag string
	yesConfirm    bool
)

// cacheCmd is the parent command for cache maintenance.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the on-disk cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show entry counts and sizes per namespace",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		stats := system.NewService(a.cache, a.log).CacheStats()
		if !stats.Enabled {
			fmt.Println("Cache is disabled")
			return nil
		}

		rows := make([][]string, 0, len(cache.Namespaces)+1)
		for _, ns := range cache.Namespaces {
			entry := stats.ByNamespace[string(ns)]
			rows = append(rows, []string{string(ns), strconv.Itoa(entry.Files), fmt.Sprintf("%.2f", entry.SizeMB)})
		}
		rows = append(rows, []string{"total", strconv.Itoa(stats.TotalFiles), fmt.Sprintf("%.2f", stats.TotalSizeMB)})
		fmt.Println(renderTable([]string{"Namespace", "Entries", "Size (MB)"}, rows,
			[]columnAlignment{alignLeft, alignRight, alignRight}))
		fmt.Printf("Directory: %s\n", stats.Dir)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached entries (one namespace or all)",
	Long: `Removes cached entries. Without --namespace every namespace is cleared.

Examples:
  # Clear only remote request bodies
  cache clear --namespace api_requests --yes

  # Clear everything after confirmation
  cache clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !confirmDestructiveAction() {
			a.log.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		removed, err := system.NewService(a.cache, a.log).ClearCache(namespaceFlag)
		if err != nil {
			return err
		}
		a.log.Info("Cache cleared", zap.Int("removed", removed))
		return nil
	},
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		removed := system.NewService(a.cache, a.log).Cleanup()
		a.log.Info("Expired entries removed", zap.Int("removed", removed))
		return nil
	},
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		return true
	}

	fmt.Print("Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

func init() {
	cacheClearCmd.Flags().StringVar(&namespaceFlag, "namespace", "", "Namespace to clear (games, achievements, local_achievements, steam_store, api_requests)")
	cacheClearCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")

	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd, cacheCleanupCmd)
	RootCmd.AddCommand(cacheCmd)
}
