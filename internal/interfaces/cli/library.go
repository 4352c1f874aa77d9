package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/turtacn/molforge/internal/domain/chem"
	"github.com/turtacn/molforge/internal/domain/library"
)

func newLibraryCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List the fragment and linker library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			lib, err := library.WithOverrides(cfg.Library.Fragments, cfg.Library.Linkers)
			if err != nil {
				return err
			}

			toolkit := chem.NewToolkit(nil)
			report := lib.Validate(toolkit)
			inert := make(map[string]bool)
			for _, entry := range append(report.InvalidFragments, report.InvalidLinkers...) {
				inert[entry] = true
			}

			out := cmd.OutOrStdout()
			if root.output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string][]string{
					"fragments": lib.Fragments(),
					"linkers":   lib.Linkers(),
				})
			}

			fmt.Fprintln(out, "Fragments:")
			for _, f := range lib.Fragments() {
				printEntry(out, f, inert[f])
			}
			fmt.Fprintln(out, "\nLinkers:")
			for _, l := range lib.Linkers() {
				printEntry(out, l, inert[l])
			}
			return nil
		},
	}
}

func printEntry(out io.Writer, entry string, isInert bool) {
	if isInert {
		fmt.Fprintf(out, "  %-12s (not standalone-parseable)\n", entry)
		return
	}
	fmt.Fprintf(out, "  %s\n", entry)
}
