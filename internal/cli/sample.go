package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/sample"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Load 30 days of demo data",
		Args:  cobra.NoArgs,
		Run:   runSample,
	}

	cmd.Flags().Int64("seed", 1, "Random seed for generated values")

	RootCmd.AddCommand(cmd)
}

func runSample(cmd *cobra.Command, args []string) {
	seed, _ := cmd.Flags().GetInt64("seed")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	d := sample.Generate(clock(), seed)
	if err := sample.Load(cmd.Context(), s, d); err != nil {
		exitErr("load sample", err)
	}

	if textOutput() {
		fmt.Printf("Loaded %d logs and %d episodes\n", len(d.Logs), len(d.Episodes))
		return
	}
	fmt.Printf(`{"ok":true,"logs":%d,"episodes":%d}`+"\n", len(d.Logs), len(d.Episodes))
}
