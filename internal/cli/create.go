package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

var createFile string

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create RESOURCE_TYPE -f FILE",
	Short: "Create a resource from a JSON or YAML file",
	Long: `Create a resource from a definition file. The file may be JSON or YAML;
YAML is converted before sending.

Examples:
  # Create a customer
  workshop create customers -f customer.yaml

  # Create a service request from JSON
  workshop create service-requests -f request.json`,
	Args: cobra.ExactArgs(1),
	RunE: createResource,
}

// createResource reads the definition file and POSTs it to the resource path
func createResource(cmd *cobra.Command, args []string) error {
	info, err := lookupResource(args[0])
	if err != nil {
		return err
	}
	if info.ReadOnly {
		return fmt.Errorf("resource type %q is read-only", args[0])
	}
	if createFile == "" {
		return fmt.Errorf("no definition file provided. Use -f")
	}

	body, err := readDefinitionFile(createFile)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	response, err := rt.Client.Do(cmd.Context(), httpclient.RequestOptions{
		Method: "POST",
		Path:   info.Path,
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
		okLabel.Println("✓ Created")
		printResourceTable(info, []json.RawMessage{response})
	}
	return nil
}

// readDefinitionFile loads a JSON or YAML payload and returns it as JSON
func readDefinitionFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	if json.Valid(raw) {
		return raw, nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s is neither valid JSON nor YAML: %w", path, err)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to convert %s to JSON: %w", path, err)
	}
	return body, nil
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete RESOURCE_TYPE ID",
	Short: "Delete a resource by ID",
	Long: `Delete a resource by ID.

Examples:
  # Delete a vehicle
  workshop delete vehicles 13`,
	Args: cobra.ExactArgs(2),
	RunE: deleteResource,
}

// deleteResource issues the DELETE and reports the outcome
func deleteResource(cmd *cobra.Command, args []string) error {
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

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	_, err = rt.Client.Do(cmd.Context(), httpclient.RequestOptions{
		Method: "DELETE",
		Path:   fmt.Sprintf("%s%d/", info.Path, id),
	})
	if err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	if jsonOutput {
		printJSON(map[string]int{"result": 1})
	} else {
		okLabel.Printf("✓ Deleted %s %d\n", strings.TrimSuffix(args[0], "s"), id)
	}
	return nil
}

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "Path to the resource definition file")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
}
