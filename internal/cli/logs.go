package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/model"
	"github.com/rcliao/sickday/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List daily logs, newest first",
		Args:  cobra.NoArgs,
		Run:   runLogs,
	}

	cmd.Flags().String("from", "", "Earliest day (YYYY-MM-DD, yesterday or -N)")
	cmd.Flags().String("to", "", "Latest day (YYYY-MM-DD, today or -N)")
	cmd.Flags().IntP("limit", "l", 30, "Max results (0 for all)")

	RootCmd.AddCommand(cmd)
}

func runLogs(cmd *cobra.Command, args []string) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := store.LogFilter{Desc: true, Limit: limit}
	var err error
	if fromStr != "" {
		if filter.From, err = parseDay(fromStr, clock()); err != nil {
			exitErr("logs", err)
		}
	}
	if toStr != "" {
		if filter.To, err = parseDay(toStr, clock()); err != nil {
			exitErr("logs", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	logs, err := s.ListLogs(cmd.Context(), filter)
	if err != nil {
		exitErr("logs", err)
	}

	if !textOutput() {
		if logs == nil {
			logs = []model.DailyLog{}
		}
		printJSON(logs)
		return
	}

	if len(logs) == 0 {
		fmt.Println(color.New(color.FgHiBlack).Sprint("No logs"))
		return
	}
	for _, l := range logs {
		marks := ""
		if l.OfficeDay {
			marks += " office"
		}
		if l.SickContactExposure {
			marks += color.YellowString(" sick-contact")
		}
		if l.HumidifierUsed {
			marks += " humidifier"
		}
		fmt.Printf("%s  sleep %4.1fh  stress %d/5  exercise %3d min%s\n",
			model.FormatDay(l.Date), l.SleepHours, l.Stress, l.ExerciseMinutes, marks)
	}
}
