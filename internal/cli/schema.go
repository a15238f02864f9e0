package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmcif/pkg/export"
	"github.com/matzehuels/ihmcif/pkg/schema"
)

// Schema output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// schemaCommand creates the schema command.
func (c *CLI) schemaCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Draw the reference graph between written categories",
		Long: `Schema prints the categories an export writes, in output order, with an
edge for every category whose identifiers appear in another's rows.
References to categories written later are drawn dashed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := schema.Build(export.New(export.Options{}).Dumpers())
			for _, e := range g.Dangling() {
				c.Logger.Warn("reference to unwritten category", "from", e.From, "to", e.To)
			}
			dot := schema.ToDOT(g)

			var data []byte
			switch format {
			case formatDOT:
				data = []byte(dot)
			case formatSVG:
				svg, err := schema.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				data = svg
			default:
				return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Wrote %d categories, %d forward references", len(g.Categories), len(g.Forward()))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(formatDOT, formatSVG))

	return cmd
}
