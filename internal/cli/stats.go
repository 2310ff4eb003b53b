package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	if textOutput() {
		fmt.Printf("Database: %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
		fmt.Printf("Logs:     %d", stats.TotalLogs)
		if stats.TotalLogs > 0 {
			fmt.Printf(" (%s to %s)", stats.FirstLog, stats.LastLog)
		}
		fmt.Printf("\nEpisodes: %d (%d active)\n", stats.TotalEpisodes, stats.ActiveEpisodes)
		return
	}
	printJSON(stats)
}
