package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/analytics"
	"github.com/rcliao/sickday/internal/tracker"
)

func init() {
	cmd := &cobra.Command{
		Use:   "trigger <episode-id>",
		Short: "Compare the days before an episode with your baseline",
		Long: "Compare the logs from the week before an episode started with a baseline of the " +
			"last 60 days, excluding every episode and its lead-in. Descriptive only; not medical advice.",
		Args: cobra.ExactArgs(1),
		Run:  runTrigger,
	}

	RootCmd.AddCommand(cmd)
}

// triggerRow is one metric of the trigger comparison.
type triggerRow struct {
	Metric     string
	PreEpisode float64
	Baseline   float64
	Format     string
}

func triggerRows(tr *analytics.Trigger) []triggerRow {
	pre, base := tr.PreEpisode, tr.Baseline
	return []triggerRow{
		{"Avg sleep (h)", pre.AvgSleepHours, base.AvgSleepHours, "%.1f"},
		{"Avg stress (1-5)", pre.AvgStress, base.AvgStress, "%.1f"},
		{"Office days (%)", 100 * pre.OfficeRate(), 100 * base.OfficeRate(), "%.0f"},
		{"Sick contact (%)", 100 * pre.SickContactRate(), 100 * base.SickContactRate(), "%.0f"},
		{"Humidifier (%)", 100 * pre.HumidifierRate(), 100 * base.HumidifierRate(), "%.0f"},
	}
}

func runTrigger(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tr, err := newService(s).Trigger(cmd.Context(), args[0])
	if errors.Is(err, tracker.ErrInsufficientData) {
		if textOutput() {
			fmt.Println(color.YellowString("Not enough daily logs before this episode or in the baseline to compare."))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), `{"ok":false,"reason":"insufficient_data","episode_id":%q}`+"\n", args[0])
		}
		os.Exit(2)
	}
	if err != nil {
		exitErr("trigger", err)
	}

	if !textOutput() {
		printJSON(tr)
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%s\n", bold("Trigger analysis for episode "+tr.EpisodeID))
	fmt.Printf("%-18s %12s %12s %10s\n", "", "Pre-episode", "Baseline", "Delta")
	for _, r := range triggerRows(tr) {
		delta := r.PreEpisode - r.Baseline
		d := fmt.Sprintf("%+"+r.Format[1:], delta)
		fmt.Printf("%-18s %12s %12s %10s\n", r.Metric,
			fmt.Sprintf(r.Format, r.PreEpisode), fmt.Sprintf(r.Format, r.Baseline), d)
	}
	fmt.Printf("\n%s\n", color.New(color.FgHiBlack).Sprintf("Based on %d pre-episode and %d baseline days.",
		tr.PreEpisode.Days, tr.Baseline.Days))
}
