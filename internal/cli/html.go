package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/cellpath"
)

var (
	tableID   string
	allTables bool
)

var htmlCmd = &cobra.Command{
	Use:   "html <source>",
	Short: "Extract paths from HTML tables",
	Long: `Extract semantic paths from tables in an HTML document.

SOURCE can be a URL, a local file path, or '-' for stdin.`,
	Example: `  cellpath html https://example.com/report.html
  cellpath html page.html --id my-table
  cellpath html page.html --all-tables -f text
  curl https://example.com | cellpath html -`,
	Args: cobra.ExactArgs(1),
	RunE: runHTML,
}

func init() {
	htmlCmd.Flags().StringVar(&tableID, "id", "", "Extract the table with this id attribute")
	htmlCmd.Flags().BoolVarP(&allTables, "all-tables", "a", false, "Process all tables (outputs array of arrays)")
}

func runHTML(cmd *cobra.Command, args []string) error {
	r, cleanup, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	ex := cellpath.HTML(r).Separator(separator)
	printer := newPrinter(cmd)

	if allTables && tableID == "" {
		sets, err := ex.ResultSets()
		if err != nil {
			return err
		}
		return printer.PrintResultSets(sets)
	}

	if tableID != "" {
		ex = ex.TableID(tableID)
	}
	results, err := ex.Results()
	if err != nil {
		return err
	}
	return printer.PrintResults(results)
}
