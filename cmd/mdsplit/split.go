package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsplit/internal/config"
	"github.com/dgallion1/mdsplit/internal/document"
	"github.com/dgallion1/mdsplit/internal/pipeline"
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a markdown file into chunks",
	Long: `Split a markdown file into breadcrumb-prefixed chunks and write them to
<output>/<name>/<name>.<ext> for every enabled format.

Examples:
  mdsplit split manual.md
  mdsplit split manual.md --chunk-size 500 --output build
  mdsplit split manual.md --html --sqlite --no-docx`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

var (
	splitChunkSize int
	splitOutput    string
	splitNoText    bool
	splitNoDocx    bool
	splitNoCSV     bool
	splitHTML      bool
	splitSQLite    bool
	splitNormalize bool
	splitPrint     bool
)

func init() {
	f := splitCmd.Flags()
	f.IntVarP(&splitChunkSize, "chunk-size", "s", 0, "Maximum chunk length in characters (default from config, 300)")
	f.StringVarP(&splitOutput, "output", "o", "", "Output root directory (default from config, output)")
	f.BoolVar(&splitNoText, "no-text", false, "Skip the markdown text output")
	f.BoolVar(&splitNoDocx, "no-docx", false, "Skip the docx output")
	f.BoolVar(&splitNoCSV, "no-csv", false, "Skip the csv output")
	f.BoolVar(&splitHTML, "html", false, "Also write an HTML preview")
	f.BoolVar(&splitSQLite, "sqlite", false, "Also store chunks in a SQLite database")
	f.BoolVar(&splitNormalize, "normalize", false, "Normalize numbered headings before splitting")
	f.BoolVar(&splitPrint, "print", false, "Print every chunk to stdout")
}

// applySplitFlags overrides cfg with the flags the user actually set.
func applySplitFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = splitChunkSize
	}
	if flags.Changed("output") {
		cfg.OutputDir = splitOutput
	}
	if splitNoText {
		cfg.EmitText = false
	}
	if splitNoDocx {
		cfg.EmitRichDocument = false
	}
	if splitNoCSV {
		cfg.EmitTabular = false
	}
	if splitHTML {
		cfg.EmitHTML = true
	}
	if splitSQLite {
		cfg.EmitSQLite = true
	}
	if splitNormalize {
		cfg.NormalizeHeadings = true
	}
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySplitFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newLogger(cfg, cmd.ErrOrStderr())
	proc, err := pipeline.NewProcessor(cfg, log)
	if err != nil {
		return err
	}
	res, err := proc.Process(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if splitPrint {
		printChunks(out, res.Chunks)
	}
	fmt.Fprintf(out, "%s: %d chunks\n", res.Document, len(res.Chunks))
	for _, f := range res.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	return nil
}

func printChunks(w io.Writer, chunks []document.Chunk) {
	for _, c := range chunks {
		fmt.Fprintf(w, "--- chunk %d (%s, line %d) ---\n", c.Index, c.Kind, c.StartLine)
		fmt.Fprint(w, c.Text)
		fmt.Fprintln(w)
	}
}
