package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmcif/pkg/provenance"
)

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [file.pdb...]",
		Short: "Show how coordinate files are classified as starting models",
		Long: `Classify reads the header of each PDB-format file and reports whether it
would be recorded as an experimental structure, a comparative model with
templates, or a model of unknown origin.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: fileCompletion("pdb", "ent"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				r := provenance.Classify(data)
				c.Logger.Debug("classified", "file", path, "kind", r.Kind)
				rows = append(rows, classifyRow(path, r))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Kind", "Source", "Helices", "MODELLER"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func classifyRow(path string, r provenance.Result) []string {
	source := "-"
	switch r.Kind {
	case provenance.KindExperimental:
		source = r.DBCode
		if r.Version != "" {
			source += " (" + r.Version + ")"
		}
	case provenance.KindComparative:
		source = ""
		for i, t := range r.Templates {
			if i > 0 {
				source += ", "
			}
			source += fmt.Sprintf("%s %d-%d %.0f%%", t.Code, t.Begin, t.End, t.Identity)
		}
	}
	modeller := "-"
	if r.Modeller != nil {
		modeller = r.Modeller.Version
	}
	return []string{path, r.Kind.String(), source, strconv.Itoa(len(r.Helices)), modeller}
}
