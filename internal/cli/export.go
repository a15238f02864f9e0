package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/pipeline"
)

// exportFlags holds flags for the export command.
type exportFlags struct {
	metadata        []string
	output          string
	entryID         string
	lineLength      int
	multiLineLength int
	refresh         bool
	noCache         bool
	stats           bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export [job.json]",
		Short: "Write the mmCIF/IHM document for a job",
		Long: `Export reads a JSON job and optional TOML metadata files and writes the
mmCIF/IHM document. Documents are cached by the content of every input file;
an unchanged job is served from the cache.`,
		Example: `  ihmcif export job.json -m metadata.toml -o model.cif
  ihmcif export job.json --entry-id nup84 --stats`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileCompletion("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.metadata, "metadata", "m", nil, "TOML metadata file (repeatable)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&flags.entryID, "entry-id", "", "override the job's entry id")
	cmd.Flags().IntVar(&flags.lineLength, "line-length", pipeline.DefaultLineLength, "maximum row width")
	cmd.Flags().IntVar(&flags.multiLineLength, "multi-line-length", pipeline.DefaultMultiLineLength, "string length above which values are folded")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached documents")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the document cache")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a table of written categories")
	_ = cmd.MarkFlagFilename("metadata", "toml")
	_ = cmd.MarkFlagFilename("output", "cif")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, jobPath string, flags exportFlags) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(cmd.Context(), "Exporting "+jobPath+"...")
	spinner.Start()

	res, err := runner.Execute(cmd.Context(), pipeline.Options{
		JobPath:         jobPath,
		MetadataPaths:   flags.metadata,
		EntryID:         flags.entryID,
		LineLength:      flags.lineLength,
		MultiLineLength: flags.multiLineLength,
		Refresh:         flags.refresh,
		Logger:          c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	for _, s := range res.Skipped {
		printWarning("skipped %s", s)
	}

	if err := writeDocument(flags.output, res.Document); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported %d categories", len(res.Blocks)))
	if flags.output != "" {
		printFile(flags.output)
	}
	printStats(len(res.Blocks), res.Stats.Datasets, res.CacheHit)

	if flags.stats {
		fmt.Fprintln(cmd.OutOrStdout(), blockTable(res.Blocks))
	}
	return nil
}

func writeDocument(path string, doc []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(doc)
		return err
	}
	return os.WriteFile(path, doc, 0o644)
}

// blockTable lists written categories in output order.
func blockTable(blocks []cif.Block) string {
	rows := make([][]string, len(blocks))
	for i, b := range blocks {
		kind := "category"
		if b.Loop {
			kind = "loop"
		}
		rows[i] = []string{strconv.Itoa(i + 1), b.Name, kind, strconv.Itoa(b.Rows)}
	}
	return renderTable(
		[]string{"#", "Category", "Kind", "Rows"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	)
}
