// Package cli implements the sickday CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/config"
	"github.com/rcliao/sickday/internal/model"
	"github.com/rcliao/sickday/internal/store"
	"github.com/rcliao/sickday/internal/tracker"
)

var (
	dbPath     string
	formatFlag string
	configPath string
	verbose    bool

	cfg = config.Default()

	// clock is the reference time for relative dates and every analysis.
	clock = time.Now
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "sickday",
	Short: "Track daily wellness and illness episodes",
	Long: "A small CLI for logging daily wellness metrics and illness episodes, " +
		"with streaks, overlap checks and pre-episode trigger analysis. SQLite-backed, single binary.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if formatFlag != "json" && formatFlag != "text" {
			return fmt.Errorf("invalid format %q (use json or text)", formatFlag)
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		if err := config.LoadEnv(config.EnvPath()); err != nil {
			return err
		}

		path := configPath
		if path == "" {
			path = config.Path()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		if !cfg.Color {
			color.NoColor = true
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $SICKDAY_DB, config db_path, or ~/.sickday/sickday.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $SICKDAY_CONFIG or ~/.sickday/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
}

func getDBPath() string {
	return cfg.ResolveDBPath(dbPath)
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newService(st store.Store) *tracker.Service {
	return tracker.New(st,
		tracker.WithClock(clock),
		tracker.WithWindows(cfg.Windows()),
		tracker.WithSummaryDays(cfg.Analysis.SummaryDays),
		tracker.WithLogger(slog.Default()),
	)
}

func textOutput() bool { return formatFlag == "text" }

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// parseDay accepts YYYY-MM-DD, "today", "yesterday" or a relative "-N" day offset.
func parseDay(s string, now time.Time) (time.Time, error) {
	today := model.StartOfDay(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return model.AddDays(today, -1), nil
	}
	if strings.HasPrefix(s, "-") {
		var n int
		if _, err := fmt.Sscanf(s, "-%d", &n); err == nil && n >= 0 {
			return model.AddDays(today, -n), nil
		}
	}
	d, err := model.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today, yesterday or -N)", s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
