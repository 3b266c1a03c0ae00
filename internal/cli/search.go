package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/workshop/api"
)

var searchLimit int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY [flags]",
	Short: "Search service requests, customers, and vehicles",
	Long: `Search across service requests, customers, and vehicles with one query.

Examples:
  # Find everything matching a name
  workshop search mensah

  # Limit results per group
  workshop search corolla --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	resp, err := rt.API.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	if jsonOutput {
		printJSON(map[string]any{
			"result": 1,
			"value":  resp,
		})
		return nil
	}

	total := 0
	total += printSearchGroup("Service requests", resp.ServiceRequests)
	total += printSearchGroup("Customers", resp.Customers)
	total += printSearchGroup("Vehicles", resp.Vehicles)
	if total == 0 {
		fmt.Println("No results.")
	}
	return nil
}

func printSearchGroup(label string, items []api.SearchResultItem) int {
	if len(items) == 0 {
		return 0
	}
	fmt.Printf("%s:\n", label)
	for _, item := range items {
		if item.Subtitle != "" {
			fmt.Printf("  %d  %s (%s)\n", item.ID, item.Title, item.Subtitle)
		} else {
			fmt.Printf("  %d  %s\n", item.ID, item.Title)
		}
	}
	fmt.Println()
	return len(items)
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results per group")

	rootCmd.AddCommand(searchCmd)
}
