package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/model"
	"github.com/rcliao/sickday/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:     "episode",
		Aliases: []string{"ep"},
		Short:   "Record and review illness episodes",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Start an episode",
		Long:  "Record a new illness episode. Overlapping episodes are reported but still saved.",
		Args:  cobra.NoArgs,
		Run:   runEpisodeAdd,
	}
	add.Flags().String("start", "today", "Start day (YYYY-MM-DD, today, yesterday or -N)")
	add.Flags().String("end", "", "End day; omit while the episode is ongoing")
	addEpisodeFlags(add)

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an episode's fields",
		Args:  cobra.ExactArgs(1),
		Run:   runEpisodeEdit,
	}
	edit.Flags().String("start", "", "Start day")
	edit.Flags().String("end", "", "End day, or \"ongoing\" to reopen")
	addEpisodeFlags(edit)

	end := &cobra.Command{
		Use:   "end <id>",
		Short: "Mark an episode as resolved",
		Args:  cobra.ExactArgs(1),
		Run:   runEpisodeEnd,
	}
	end.Flags().String("date", "today", "End day")

	list := &cobra.Command{
		Use:   "list",
		Short: "List episodes, newest first",
		Args:  cobra.NoArgs,
		Run:   runEpisodeList,
	}
	list.Flags().String("status", "all", "Filter: all, active, completed")
	list.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an episode and the episodes it overlaps",
		Args:  cobra.ExactArgs(1),
		Run:   runEpisodeShow,
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an episode",
		Args:  cobra.ExactArgs(1),
		Run:   runEpisodeRm,
	}

	cmd.AddCommand(add, edit, end, list, show, rm)
	RootCmd.AddCommand(cmd)
}

func addEpisodeFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "cold", "Type: cold, cough, fever, sinus, allergy, other")
	cmd.Flags().Int("severity", 3, "Severity (1-5)")
	cmd.Flags().String("symptoms", "", "Comma-separated: cough, sore_throat, runny_nose, sneezing, fever, fatigue, body_aches, headache")
	cmd.Flags().String("worst-time", "all_day", "Worst time of day: morning, night, all_day")
	cmd.Flags().String("mucus", "none", "Mucus color: none, clear, yellow, green")
	cmd.Flags().String("meds", "", "Comma-separated medications, in order taken")
	cmd.Flags().Bool("doctor", false, "Visited a doctor")
	cmd.Flags().String("test-results", "", "Test results")
	cmd.Flags().String("notes", "", "Free-text notes")
}

// applyEpisodeFlags overwrites only the fields whose flags were set.
func applyEpisodeFlags(cmd *cobra.Command, e *model.Episode, now time.Time) error {
	f := cmd.Flags()
	var err error
	if f.Changed("start") {
		v, _ := f.GetString("start")
		if e.StartDate, err = parseDay(v, now); err != nil {
			return err
		}
	}
	if f.Changed("end") {
		v, _ := f.GetString("end")
		if v == "" || v == "ongoing" {
			e.End = model.Ongoing()
		} else {
			d, err := parseDay(v, now)
			if err != nil {
				return err
			}
			e.End = model.EndedOn(d)
		}
	}
	if f.Changed("type") {
		v, _ := f.GetString("type")
		if e.Type, err = model.ParseEpisodeType(v); err != nil {
			return err
		}
	}
	if f.Changed("severity") {
		e.Severity, _ = f.GetInt("severity")
	}
	if f.Changed("symptoms") {
		v, _ := f.GetString("symptoms")
		var symptoms []model.Symptom
		for _, name := range splitList(v) {
			s, err := model.ParseSymptom(name)
			if err != nil {
				return err
			}
			symptoms = append(symptoms, s)
		}
		e.Symptoms = model.NewSymptomSet(symptoms...)
	}
	if f.Changed("worst-time") {
		v, _ := f.GetString("worst-time")
		if e.WorstTime, err = model.ParseWorstTime(v); err != nil {
			return err
		}
	}
	if f.Changed("mucus") {
		v, _ := f.GetString("mucus")
		if e.MucusColor, err = model.ParseMucusColor(v); err != nil {
			return err
		}
	}
	if f.Changed("meds") {
		v, _ := f.GetString("meds")
		e.Medications = splitList(v)
	}
	if f.Changed("doctor") {
		e.DoctorVisit, _ = f.GetBool("doctor")
	}
	if f.Changed("test-results") {
		e.TestResults, _ = f.GetString("test-results")
	}
	if f.Changed("notes") {
		e.Notes, _ = f.GetString("notes")
	}
	return nil
}

// episodeResult is the JSON shape for commands that save an episode.
type episodeResult struct {
	Episode  *model.Episode  `json:"episode"`
	Overlaps []model.Episode `json:"overlaps"`
}

func runEpisodeAdd(cmd *cobra.Command, args []string) {
	now := clock()
	ep := model.NewEpisode(now)
	if err := applyEpisodeFlags(cmd, &ep, now); err != nil {
		exitErr("episode add", err)
	}
	saveEpisode(cmd, ep, "Started")
}

func runEpisodeEdit(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	ep, err := s.GetEpisode(cmd.Context(), args[0])
	s.Close()
	if err != nil {
		exitErr("episode edit", err)
	}
	if err := applyEpisodeFlags(cmd, ep, clock()); err != nil {
		exitErr("episode edit", err)
	}
	saveEpisode(cmd, *ep, "Updated")
}

func runEpisodeEnd(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	day, err := parseDay(dateStr, clock())
	if err != nil {
		exitErr("episode end", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	ep, err := s.GetEpisode(cmd.Context(), args[0])
	s.Close()
	if err != nil {
		exitErr("episode end", err)
	}
	if !ep.IsActive() {
		exitErr("episode end", fmt.Errorf("episode %s has already ended", ep.ID))
	}
	ep.End = model.EndedOn(day)
	saveEpisode(cmd, *ep, "Ended")
}

func saveEpisode(cmd *cobra.Command, ep model.Episode, verb string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	saved, overlaps, err := newService(s).SaveEpisode(cmd.Context(), ep)
	if err != nil && saved == nil {
		exitErr("save episode", err)
	}
	if err != nil {
		// The episode is stored; only the overlap check failed.
		fmt.Fprintf(os.Stderr, "%s could not check overlaps: %v\n", color.YellowString("warning:"), err)
	}

	if textOutput() {
		fmt.Printf("%s episode %s\n", color.GreenString(verb), saved.ID)
		printEpisodeText(*saved, clock())
		printOverlapsText(overlaps)
		return
	}
	if overlaps == nil {
		overlaps = []model.Episode{}
	}
	printJSON(episodeResult{Episode: saved, Overlaps: overlaps})
}

func runEpisodeList(cmd *cobra.Command, args []string) {
	statusStr, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	status, err := store.ParseEpisodeStatus(statusStr)
	if err != nil {
		exitErr("episode list", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	episodes, err := s.ListEpisodes(cmd.Context(), store.EpisodeFilter{Status: status, Limit: limit})
	if err != nil {
		exitErr("episode list", err)
	}

	if !textOutput() {
		if episodes == nil {
			episodes = []model.Episode{}
		}
		printJSON(episodes)
		return
	}
	if len(episodes) == 0 {
		fmt.Println(color.New(color.FgHiBlack).Sprint("No episodes"))
		return
	}
	now := clock()
	for _, e := range episodes {
		fmt.Printf("%s  %s\n", color.New(color.FgHiBlack).Sprint(e.ID), episodeHeadline(e, now))
	}
}

func runEpisodeShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ep, err := s.GetEpisode(cmd.Context(), args[0])
	if err != nil {
		exitErr("episode show", err)
	}
	overlaps, err := newService(s).Overlaps(cmd.Context(), *ep)
	if err != nil {
		exitErr("check overlaps", err)
	}

	if textOutput() {
		fmt.Println(color.New(color.Bold).Sprint(ep.ID))
		printEpisodeText(*ep, clock())
		printOverlapsText(overlaps)
		return
	}
	if overlaps == nil {
		overlaps = []model.Episode{}
	}
	printJSON(episodeResult{Episode: ep, Overlaps: overlaps})
}

func runEpisodeRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteEpisode(cmd.Context(), args[0]); err != nil {
		exitErr("episode rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func episodeHeadline(e model.Episode, now time.Time) string {
	if d, ok := e.Duration(); ok {
		end, _ := e.End.Date()
		return fmt.Sprintf("%s  %s to %s (%d days)  severity %d/5",
			e.Type, model.FormatDay(e.StartDate), model.FormatDay(end), d, e.Severity)
	}
	days := model.DaysBetween(e.StartDate, now)
	return fmt.Sprintf("%s  %s to now %s  severity %d/5",
		e.Type, model.FormatDay(e.StartDate), color.RedString("(active, %d days)", days), e.Severity)
}

func printEpisodeText(e model.Episode, now time.Time) {
	fmt.Printf("  %s\n", episodeHeadline(e, now))
	if len(e.Symptoms) > 0 {
		labels := make([]string, len(e.Symptoms))
		for i, s := range e.Symptoms {
			labels[i] = s.Label()
		}
		fmt.Printf("  Symptoms:    %s\n", strings.Join(labels, ", "))
	}
	fmt.Printf("  Worst time:  %s   Mucus: %s\n", e.WorstTime, e.MucusColor)
	if len(e.Medications) > 0 {
		fmt.Printf("  Medications: %s\n", strings.Join(e.Medications, ", "))
	}
	if e.DoctorVisit {
		fmt.Printf("  Doctor visit: yes\n")
	}
	if e.TestResults != "" {
		fmt.Printf("  Tests:       %s\n", e.TestResults)
	}
	if e.Notes != "" {
		fmt.Printf("  Notes:       %s\n", e.Notes)
	}
}

func printOverlapsText(overlaps []model.Episode) {
	if len(overlaps) == 0 {
		return
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s overlaps %d other episode(s):\n", yellow("⚠"), len(overlaps))
	now := clock()
	for _, o := range overlaps {
		fmt.Printf("    %s  %s\n", o.ID, episodeHeadline(o, now))
	}
}
