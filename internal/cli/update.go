package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

var updateSets []string

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update RESOURCE_TYPE ID --set key=value [--set key=value ...]",
	Short: "Update fields of a resource",
	Long: `Update a resource with a partial payload. Each --set takes key=value;
values are sent as JSON types when they parse as one (numbers, booleans,
null), otherwise as strings. Nested keys use dots. An explicit null clears
the field server-side.

Examples:
  # Change a customer's phone number
  workshop update customers 42 --set phone=0244000111

  # Mark an invoice paid in cash
  workshop update invoices 7 --set paid=true --set payment_method=cash

  # Detach the vehicle from a service request
  workshop update service-requests 12 --set vehicle=null`,
	Args: cobra.ExactArgs(2),
	RunE: updateResource,
}

// updateResource builds the PATCH body from --set pairs and sends it
func updateResource(cmd *cobra.Command, args []string) error {
	info, err := lookupResource(args[0])
	if err != nil {
		return err
	}
	if info.ReadOnly {
		return fmt.Errorf("resource type %q is read-only", args[0])
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	if len(updateSets) == 0 {
		return fmt.Errorf("nothing to update. Use --set key=value")
	}

	body := []byte("{}")
	for _, pair := range updateSets {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid --set %q, expected key=value", pair)
		}
		body, err = setField(body, key, value)
		if err != nil {
			return fmt.Errorf("invalid --set %q: %w", pair, err)
		}
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	response, err := rt.Client.Do(cmd.Context(), httpclient.RequestOptions{
		Method: "PATCH",
		Path:   fmt.Sprintf("%s%d/", info.Path, id),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	if jsonOutput {
		printJSON(map[string]any{
			"result": 1,
			"value":  json.RawMessage(response),
		})
	} else {
		okLabel.Println("✓ Updated")
		printResourceTable(info, []json.RawMessage{response})
	}
	return nil
}

// setField writes one key=value pair into the payload. Values that parse as
// JSON scalars keep their type; everything else goes in as a string.
func setField(body []byte, key, value string) ([]byte, error) {
	var scalar any
	if err := json.Unmarshal([]byte(value), &scalar); err == nil {
		switch scalar.(type) {
		case float64, bool, nil:
			return sjson.SetRawBytes(body, key, []byte(value))
		}
	}
	return sjson.SetBytes(body, key, value)
}

func init() {
	updateCmd.Flags().StringArrayVar(&updateSets, "set", nil, "Field to set, as key=value (repeatable)")

	rootCmd.AddCommand(updateCmd)
}
