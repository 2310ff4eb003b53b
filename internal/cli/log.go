package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/model"
	"github.com/rcliao/sickday/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record or update a day's wellness log",
		Long: "Record a day's wellness metrics. The first log of a day creates it; later calls " +
			"update only the flags given.",
		Args: cobra.NoArgs,
		Run:  runLog,
	}

	cmd.Flags().String("date", "today", "Day to log: YYYY-MM-DD, today, yesterday or -N")
	cmd.Flags().Float64("sleep", 7, "Sleep hours (0-12)")
	cmd.Flags().Int("sleep-quality", 3, "Sleep quality (1-5)")
	cmd.Flags().Int("stress", 3, "Stress (1-5)")
	cmd.Flags().Int("exercise", 0, "Exercise minutes (0-300)")
	cmd.Flags().String("exercise-type", "none", "Exercise type: none, walk, gym, yoga, other")
	cmd.Flags().String("sugar", "low", "Sugar intake: low, medium, high")
	cmd.Flags().String("alcohol", "none", "Alcohol: none, some")
	cmd.Flags().Int("fruits", 0, "Fruit servings (0-10)")
	cmd.Flags().Int("protein", 0, "Protein grams (0-200)")
	cmd.Flags().String("supplements", "", "Comma-separated supplements")
	cmd.Flags().Bool("office", false, "Office day")
	cmd.Flags().Bool("sick-contact", false, "Exposed to someone sick")
	cmd.Flags().Bool("humidifier", false, "Humidifier used")
	cmd.Flags().String("notes", "", "Free-text notes")

	show := &cobra.Command{
		Use:   "show [date]",
		Short: "Show a day's log",
		Args:  cobra.MaximumNArgs(1),
		Run:   runLogShow,
	}

	rm := &cobra.Command{
		Use:   "rm <date>",
		Short: "Delete a day's log",
		Args:  cobra.ExactArgs(1),
		Run:   runLogRm,
	}

	cmd.AddCommand(show, rm)
	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	day, err := parseDay(dateStr, clock())
	if err != nil {
		exitErr("log", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	l := model.NewDailyLog(day)
	existing, err := s.GetLog(cmd.Context(), day)
	switch {
	case err == nil:
		l = *existing
	case !errors.Is(err, store.ErrNotFound):
		exitErr("get log", err)
	}

	if err := applyLogFlags(cmd, &l); err != nil {
		exitErr("log", err)
	}

	saved, err := s.SaveLog(cmd.Context(), l)
	if err != nil {
		exitErr("save log", err)
	}

	if textOutput() {
		verb := "Logged"
		if existing != nil {
			verb = "Updated"
		}
		fmt.Printf("%s %s\n", color.GreenString(verb), model.FormatDay(saved.Date))
		printLogText(*saved)
		return
	}
	printJSON(saved)
}

// applyLogFlags overwrites only the fields whose flags were set.
func applyLogFlags(cmd *cobra.Command, l *model.DailyLog) error {
	f := cmd.Flags()
	var err error
	if f.Changed("sleep") {
		l.SleepHours, _ = f.GetFloat64("sleep")
	}
	if f.Changed("sleep-quality") {
		l.SleepQuality, _ = f.GetInt("sleep-quality")
	}
	if f.Changed("stress") {
		l.Stress, _ = f.GetInt("stress")
	}
	if f.Changed("exercise") {
		l.ExerciseMinutes, _ = f.GetInt("exercise")
	}
	if f.Changed("exercise-type") {
		v, _ := f.GetString("exercise-type")
		if l.ExerciseType, err = model.ParseExerciseType(v); err != nil {
			return err
		}
	}
	if f.Changed("sugar") {
		v, _ := f.GetString("sugar")
		if l.SugarIntake, err = model.ParseSugarLevel(v); err != nil {
			return err
		}
	}
	if f.Changed("alcohol") {
		v, _ := f.GetString("alcohol")
		if l.Alcohol, err = model.ParseAlcohol(v); err != nil {
			return err
		}
	}
	if f.Changed("fruits") {
		l.FruitsServings, _ = f.GetInt("fruits")
	}
	if f.Changed("protein") {
		l.ProteinGrams, _ = f.GetInt("protein")
	}
	if f.Changed("supplements") {
		v, _ := f.GetString("supplements")
		l.Supplements = splitList(v)
	}
	if f.Changed("office") {
		l.OfficeDay, _ = f.GetBool("office")
	}
	if f.Changed("sick-contact") {
		l.SickContactExposure, _ = f.GetBool("sick-contact")
	}
	if f.Changed("humidifier") {
		l.HumidifierUsed, _ = f.GetBool("humidifier")
	}
	if f.Changed("notes") {
		l.Notes, _ = f.GetString("notes")
	}
	return nil
}

func runLogShow(cmd *cobra.Command, args []string) {
	dateStr := "today"
	if len(args) > 0 {
		dateStr = args[0]
	}
	day, err := parseDay(dateStr, clock())
	if err != nil {
		exitErr("log show", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	l, err := s.GetLog(cmd.Context(), day)
	if err != nil {
		exitErr("log show", err)
	}

	if textOutput() {
		fmt.Println(color.New(color.Bold).Sprint(model.FormatDay(l.Date)))
		printLogText(*l)
		return
	}
	printJSON(l)
}

func runLogRm(cmd *cobra.Command, args []string) {
	day, err := parseDay(args[0], clock())
	if err != nil {
		exitErr("log rm", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteLog(cmd.Context(), day); err != nil {
		exitErr("log rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"date":%q}`+"\n", model.FormatDay(day))
}

func printLogText(l model.DailyLog) {
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Printf("  Sleep:    %.1fh (quality %d/5)\n", l.SleepHours, l.SleepQuality)
	fmt.Printf("  Stress:   %d/5\n", l.Stress)
	fmt.Printf("  Exercise: %d min %s\n", l.ExerciseMinutes, gray(l.ExerciseType))
	fmt.Printf("  Sugar:    %s   Alcohol: %s\n", l.SugarIntake, l.Alcohol)
	var flags []string
	if l.OfficeDay {
		flags = append(flags, "office")
	}
	if l.SickContactExposure {
		flags = append(flags, color.YellowString("sick contact"))
	}
	if l.HumidifierUsed {
		flags = append(flags, "humidifier")
	}
	if len(flags) > 0 {
		fmt.Printf("  Flags:    %v\n", flags)
	}
	if l.Notes != "" {
		fmt.Printf("  Notes:    %s\n", l.Notes)
	}
}
