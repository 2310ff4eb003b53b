package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/model"
	"github.com/rcliao/sickday/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search notes, test results and medications",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Query: query,
		Limit: limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if !textOutput() {
		if len(results) == 0 {
			fmt.Println("[]")
			return
		}
		printJSON(results)
		return
	}

	gray := color.New(color.FgHiBlack).SprintFunc()
	for _, r := range results {
		fmt.Printf("%s %-7s %s %s\n", model.FormatDay(r.Date), r.Kind, gray(r.Field+":"), r.Excerpt)
	}
}
