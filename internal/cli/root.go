// Package cli implements the cellpath command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/cellpath"
	"github.com/tsawler/cellpath/format"
	"github.com/tsawler/cellpath/internal/config"
	"github.com/tsawler/cellpath/internal/outfmt"
)

// Global flags
var (
	formatFlag string
	separator  string
	queryExpr  string

	// Resolved output format after config/flag merging
	outputFormat outfmt.Format
)

var rootCmd = &cobra.Command{
	Use:   "cellpath [file]",
	Short: "Extract semantic paths from tables in HTML and Excel files",
	Long: `cellpath pairs every data cell in a table with the ordered sequence of
header labels that govern it, turning layout back into meaning:

  {"path": ["Revenue", "Q1"], "value": "100", "context": "Revenue → Q1: 100"}

Given a file argument, the input format is detected from the extension
and content. The html and xlsx subcommands expose format-specific
options such as table selection and header geometry.`,
	Example: `  cellpath report.xlsx
  cellpath html https://example.com/report.html
  cellpath html page.html --id results-table -f text
  cellpath xlsx data.xlsx --sheet "Q1 Results" --header-cols 2
  curl https://example.com | cellpath html -`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: applyConfig,
	RunE:              runAuto,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&formatFlag, "format", "f", "", "Output format: json, jsonl, text, csv (default json)")
	pf.StringVarP(&separator, "separator", "s", cellpath.DefaultSeparator, "Path separator in context strings")
	pf.StringVarP(&queryExpr, "query", "q", "", "jq expression applied to the structured output")

	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(xlsxCmd)
}

// applyConfig merges the user config file into unset flags.
func applyConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadConfig()
	if err != nil {
		return err
	}

	if formatFlag == "" {
		formatFlag = cfg.OutputFormat
	}
	if !cmd.Flags().Changed("separator") && cfg.Separator != "" {
		separator = cfg.Separator
	}

	outputFormat, err = outfmt.ParseFormat(formatFlag)
	return err
}

// newPrinter creates the printer for a command's stdout.
func newPrinter(cmd *cobra.Command) *outfmt.Printer {
	return outfmt.NewPrinter(cmd.OutOrStdout(), outputFormat, separator, queryExpr)
}

// runAuto dispatches a bare file argument to the right adapter.
func runAuto(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	filename := args[0]

	detected := format.Detect(filename)
	if detected == format.Unknown {
		f, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		detected, _, err = format.DetectFromReader(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
	}

	switch detected {
	case format.HTML:
		return runHTML(cmd, []string{filename})
	case format.XLSX:
		return runXLSX(cmd, []string{filename})
	default:
		return fmt.Errorf("cannot determine format of %s; use the html or xlsx subcommand", filename)
	}
}
