package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get RESOURCE_TYPE ID",
	Short: "Get a single resource by ID",
	Long: `Get a single resource by ID and print it as formatted JSON.

Examples:
  # Show one customer
  workshop get customers 42

  # Show a service request
  workshop get service-requests 7`,
	Args: cobra.ExactArgs(2),
	RunE: getResource,
}

// getResource fetches one resource and pretty-prints the payload
func getResource(cmd *cobra.Command, args []string) error {
	info, err := lookupResource(args[0])
	if err != nil {
		return err
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

	response, err := rt.Client.Do(cmd.Context(), httpclient.RequestOptions{
		Path: fmt.Sprintf("%s%d/", info.Path, id),
	})
	if err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	if jsonOutput {
		printJSON(map[string]any{
			"result": 1,
			"value":  json.RawMessage(response),
		})
		return nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, response, "", "  "); err != nil {
		fmt.Println(string(response))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(getCmd)
}
