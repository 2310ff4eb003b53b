package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/sickday/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import logs and episodes from a JSON bundle",
		Long: "Import a bundle produced by export (stdin or file). Logs merge by date, " +
			"episodes by ID.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open file", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		exitErr("read input", err)
	}

	var bundle store.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.Import(cmd.Context(), bundle)
	if err != nil {
		exitErr("import", err)
	}

	if textOutput() {
		fmt.Printf("Imported %d logs and %d episodes\n", res.Logs, res.Episodes)
		return
	}
	fmt.Printf(`{"ok":true,"logs":%d,"episodes":%d}`+"\n", res.Logs, res.Episodes)
}
