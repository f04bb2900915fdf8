package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/cellpath"
)

var (
	sheetName  string
	startRef   string
	headerRows int
	headerCols int
)

var xlsxCmd = &cobra.Command{
	Use:   "xlsx <source>",
	Short: "Extract paths from Excel worksheets",
	Long: `Extract semantic paths from a table in an Excel workbook.

Worksheets carry no header markup, so the header window is declared
explicitly: --header-rows counts header rows at the top of the table
region, --header-cols counts header columns on its left. --start moves
the region's top-left corner away from A1.`,
	Example: `  cellpath xlsx data.xlsx
  cellpath xlsx data.xlsx --sheet "Q1 Results"
  cellpath xlsx report.xlsx --start C5 --header-cols 2
  cellpath xlsx report.xlsx --header-rows 2 -f text`,
	Args: cobra.ExactArgs(1),
	RunE: runXLSX,
}

func init() {
	xlsxCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: active sheet)")
	xlsxCmd.Flags().StringVar(&startRef, "start", "", "Starting cell reference, e.g. 'B3'")
	xlsxCmd.Flags().IntVar(&headerRows, "header-rows", 1, "Number of header rows at the top")
	xlsxCmd.Flags().IntVar(&headerCols, "header-cols", 1, "Number of header columns on the left")
}

func runXLSX(cmd *cobra.Command, args []string) error {
	source := args[0]
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", source)
	}

	ex := cellpath.XLSX(source).
		Separator(separator).
		Sheet(sheetName).
		HeaderRows(headerRows).
		HeaderCols(headerCols)
	if startRef != "" {
		ex = ex.Start(startRef)
	}

	results, err := ex.Results()
	if err != nil {
		return err
	}
	return newPrinter(cmd).PrintResults(results)
}
