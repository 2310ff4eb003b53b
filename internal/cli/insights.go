package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Summarize episodes, symptoms and recent health averages",
		Args:  cobra.NoArgs,
		Run:   runInsights,
	}

	RootCmd.AddCommand(cmd)
}

func runInsights(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sum, err := newService(s).Summary(cmd.Context())
	if err != nil {
		exitErr("insights", err)
	}

	if !textOutput() {
		printJSON(sum)
		return
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("\n%s\n\n", cyan("=== SickDay Insights ==="))

	if sum.ActiveEpisode != nil {
		fmt.Printf("%s %s\n\n", color.RedString("Active:"), episodeHeadline(*sum.ActiveEpisode, sum.GeneratedAt))
	}

	fmt.Printf("%s\n", yellow("Episodes:"))
	fmt.Printf("  Last 30 days:  %d\n", sum.Episodes30d)
	fmt.Printf("  Last 90 days:  %d\n", sum.Episodes90d)
	fmt.Printf("  Last 365 days: %d\n", sum.Episodes365d)
	if sum.AverageDuration != nil {
		fmt.Printf("  Avg duration:  %.1f days\n", *sum.AverageDuration)
	} else {
		fmt.Printf("  Avg duration:  %s\n", gray("no completed episodes"))
	}
	fmt.Println()

	fmt.Printf("%s\n", yellow("Symptoms:"))
	if len(sum.Symptoms) == 0 {
		fmt.Printf("  %s\n", gray("No symptom data"))
	}
	for _, sc := range sum.Symptoms {
		fmt.Printf("  %-12s %d\n", sc.Symptom.Label(), sc.Count)
	}
	fmt.Println()

	fmt.Printf("%s\n", yellow(fmt.Sprintf("Health (last %d days):", sum.SummaryDays)))
	if sum.Health == nil {
		fmt.Printf("  %s\n", gray("No daily logs"))
	} else {
		h := sum.Health
		fmt.Printf("  Sleep:    %.1f h\n", h.AvgSleepHours)
		fmt.Printf("  Stress:   %.1f/5\n", h.AvgStress)
		fmt.Printf("  Exercise: %.0f min\n", h.AvgExerciseMinutes)
		fmt.Printf("  Days logged: %d\n", h.Days)
	}
	fmt.Println()

	fmt.Printf("Streak: %d days (longest %d)\n\n", sum.CurrentStreak, sum.LongestStreak)
}
