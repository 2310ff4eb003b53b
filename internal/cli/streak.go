package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the current daily logging streak",
		Args:  cobra.NoArgs,
		Run:   runStreak,
	}

	RootCmd.AddCommand(cmd)
}

func runStreak(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	streak, err := newService(s).Streak(cmd.Context())
	if err != nil {
		exitErr("streak", err)
	}

	if !textOutput() {
		printJSON(streak)
		return
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Printf("Current streak: %s days\n", green(streak.Current))
	fmt.Printf("Longest streak: %d days\n", streak.Longest)
	if !streak.LoggedToday {
		fmt.Println(color.YellowString("No log yet today. Run `sickday log` to keep the streak going."))
	}
}
