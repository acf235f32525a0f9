package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsplit/internal/formatter"
)

var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Turn numbered headings into markdown headings",
	Long: `Rewrite lines such as "2.1 Scope" or "3 概述说明" as markdown headings so
the splitter can build breadcrumbs from them. The first non-empty line is
treated as the document title and left alone.

Examples:
  mdsplit format manual.md
  mdsplit format manual.md -o manual.formatted.md`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

var formatOutput string

func init() {
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Output file (default output/formatted/<file>)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := newLogger(cfg, cmd.ErrOrStderr())

	f := &formatter.Formatter{OutputDir: formatter.DefaultOutputDir}
	path, err := f.FormatFile(args[0], formatOutput)
	if err != nil {
		log.Error("format failed", "input", args[0], "error", err)
		return err
	}
	log.Info("formatted document", "input", args[0], "output", path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
