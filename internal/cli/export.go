package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/report"
	"github.com/rcliao/sickday/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export logs and episodes",
		Long: "Export every daily log and episode as a JSON bundle. " +
			"Use --csv logs|episodes for a spreadsheet-friendly table, or --report for a plain-text summary.",
		Args: cobra.NoArgs,
		Run:  runExport,
	}

	cmd.Flags().String("csv", "", "Export a CSV table: logs or episodes")
	cmd.Flags().Bool("report", false, "Write a plain-text health summary")
	cmd.Flags().StringP("out", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	table, _ := cmd.Flags().GetString("csv")
	asReport, _ := cmd.Flags().GetBool("report")
	out, _ := cmd.Flags().GetString("out")

	if table != "" && asReport {
		exitErr("export", fmt.Errorf("--csv and --report are mutually exclusive"))
	}
	if table != "" && table != "logs" && table != "episodes" {
		exitErr("export", fmt.Errorf("invalid --csv table %q (use logs or episodes)", table))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if out == "" {
		if err := writeExport(cmd, s, os.Stdout, table, asReport, true); err != nil {
			exitErr("export", err)
		}
		return
	}

	f, err := os.Create(out)
	if err != nil {
		exitErr("create output", err)
	}
	err = writeOutput(f, func(w io.Writer) error {
		return writeExport(cmd, s, w, table, asReport, false)
	})
	if err != nil {
		exitErr("export", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
}

// writeOutput runs write against wc and closes it. A close error fails the
// export since buffered data may not have reached the file.
func writeOutput(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func writeExport(cmd *cobra.Command, s *store.SQLiteStore, w io.Writer, table string, asReport, stdout bool) error {
	ctx := cmd.Context()
	switch {
	case asReport:
		sum, err := newService(s).Summary(ctx)
		if err != nil {
			return err
		}
		return report.WriteSummary(w, *sum)
	case table == "logs":
		logs, err := s.ListLogs(ctx, store.LogFilter{})
		if err != nil {
			return err
		}
		return report.WriteLogsCSV(w, logs)
	case table == "episodes":
		episodes, err := s.ListEpisodes(ctx, store.EpisodeFilter{})
		if err != nil {
			return err
		}
		return report.WriteEpisodesCSV(w, episodes)
	default:
		bundle, err := s.ExportAll(ctx)
		if err != nil {
			return err
		}
		if stdout {
			printJSON(bundle)
			return nil
		}
		return writeJSON(w, bundle)
	}
}
