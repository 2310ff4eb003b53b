package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every log and episode",
		Args:  cobra.NoArgs,
		Run:   runReset,
	}

	cmd.Flags().Bool("yes", false, "Confirm deleting all data")

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("reset", fmt.Errorf("refusing to delete all data without --yes"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Reset(cmd.Context()); err != nil {
		exitErr("reset", err)
	}
	fmt.Println(`{"ok":true}`)
}
