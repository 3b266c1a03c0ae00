package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

var downloadOutput string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download invoice ID [flags]",
	Short: "Download an invoice PDF",
	Long: `Download the rendered PDF for an invoice. Without -o the file is saved
as invoice-<id>.pdf in the current directory.

Examples:
  # Download invoice 7
  workshop download invoice 7

  # Save to a specific file
  workshop download invoice 7 -o /tmp/september.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	if args[0] != "invoice" {
		return fmt.Errorf("unknown download target %q; only \"invoice\" is supported", args[0])
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	dest := downloadOutput
	if dest == "" {
		dest = fmt.Sprintf("invoice-%d.pdf", id)
	}
	if err := rt.API.Invoices.DownloadPDF(cmd.Context(), id, dest); err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	if jsonOutput {
		printJSON(map[string]string{"file": dest})
	} else {
		okLabel.Printf("✓ Saved %s\n", dest)
	}
	return nil
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export RESOURCE_TYPE [flags]",
	Short: "Export a resource as CSV",
	Long: `Export a resource listing as CSV via the reporting endpoint. Without -o
the file is saved as <resource>.csv in the current directory.

Examples:
  # Export all customers
  workshop export customers

  # Export invoices to a specific file
  workshop export invoices -o /tmp/invoices.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	resource := args[0]

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	dest := downloadOutput
	if dest == "" {
		dest = fmt.Sprintf("%s.csv", resource)
	}
	if err := rt.API.Dashboard.ExportCSV(cmd.Context(), resource, dest); err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	if jsonOutput {
		printJSON(map[string]string{"file": dest})
	} else {
		okLabel.Printf("✓ Saved %s\n", dest)
	}
	return nil
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Destination file")
	exportCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Destination file")

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(exportCmd)
}
