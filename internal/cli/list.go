package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

var listPage int

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list RESOURCE_TYPE [flags]",
	Short: "List resources of a specific type",
	Long: `List resources of a specific type. Supported resource types include
customers, vehicles, mechanics, sites, service-requests, products,
appointments, inventory, low-stock, invoices, promotions, and audit.

Examples:
  # List all customers
  workshop list customers

  # Second page of service requests
  workshop list service-requests --page 2

  # Stock below reorder level
  workshop list low-stock

  # List invoices in JSON format
  workshop list invoices -j`,
	Args: cobra.ExactArgs(1),
	RunE: listResources,
}

// listResources fetches one page of the named resource and renders it
func listResources(cmd *cobra.Command, args []string) error {
	info, err := lookupResource(args[0])
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	var queryParams map[string]string
	if listPage > 0 {
		queryParams = map[string]string{"page": strconv.Itoa(listPage)}
	}

	response, err := rt.Client.Do(cmd.Context(), httpclient.RequestOptions{
		Path:        info.Path,
		QueryParams: queryParams,
	})
	if err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	page := httpclient.ToPaginated(response)

	if jsonOutput {
		rows := make([]json.RawMessage, len(page.Results))
		copy(rows, page.Results)
		printJSON(map[string]any{
			"result": 1,
			"count":  page.Count,
			"value":  rows,
		})
		return nil
	}

	printResourceTable(info, page.Results)
	if page.Count > len(page.Results) {
		fmt.Printf("\nShowing %d of %d. Use --page to see more.\n", len(page.Results), page.Count)
	}
	return nil
}

// printResourceTable renders rows using the resource's column definitions
func printResourceTable(info resourceInfo, rows []json.RawMessage) {
	if len(rows) == 0 {
		fmt.Println("No results.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, col := range info.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col.Header)
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		parsed := gjson.ParseBytes(row)
		for i, col := range info.Columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			value := parsed.Get(col.Path)
			if value.Exists() {
				fmt.Fprint(w, value.String())
			} else {
				fmt.Fprint(w, "-")
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listPage, "page", "p", 0, "Page number")
}
