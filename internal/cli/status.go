package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/workshop/session"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and session status",
	Long: `Show the configured server, whether credentials are stored, and when the
stored access token expires. This command works without a valid session and
does not hit the network.

Examples:
  # Show status
  workshop status

  # Show status in JSON format
  workshop status -j`,
	RunE: getStatus,
}

// getStatus reports local configuration and credential state
func getStatus(cmd *cobra.Command, args []string) error {
	LoadConfig(configFile)

	cfg := GetConfig()
	if cfg == nil {
		if jsonOutput {
			kv := map[string]string{
				"version_cli": getCLIVersion(),
				"error":       "Config file cannot be loaded",
			}
			printJSON(kv)
		} else {
			fmt.Printf("workshop CLI %s\n", getCLIVersion())
			fmt.Println("Error: Config file cannot be loaded")
		}
		return ErrAlreadyHandled
	}

	storePath, err := session.DefaultStorePath()
	if err != nil {
		return err
	}
	store, err := session.NewFileStore(storePath, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	access := store.AccessToken()
	email := store.Email()
	expiry := session.TokenExpiry(access)
	subject := session.TokenSubject(access)

	if jsonOutput {
		kv := map[string]any{
			"version_cli": getCLIVersion(),
			"server":      cfg.GetServerURL(),
			"signed_in":   access != "",
		}
		if email != "" {
			kv["email"] = email
		}
		if subject != "" {
			kv["subject"] = subject
		}
		if !expiry.IsZero() {
			kv["token_expires_at"] = expiry.Format(time.RFC3339)
		}
		printJSON(kv)
		return nil
	}

	fmt.Printf("workshop CLI %s\n", getCLIVersion())
	fmt.Printf("Server: %s\n", cfg.GetServerURL())
	if access == "" {
		fmt.Println("Not signed in. Run \"workshop login\" first.")
		return nil
	}
	if email != "" {
		fmt.Printf("Signed in as: %s\n", email)
	} else {
		fmt.Println("Signed in")
	}
	if subject != "" {
		fmt.Printf("Token subject: %s\n", subject)
	}
	if !expiry.IsZero() {
		local := expiry.Local()
		fmt.Printf("Access token expires: %s", local.Format("2006-01-02 15:04:05 MST"))
		if time.Now().After(expiry) {
			fmt.Print(" (expired; it will be refreshed on the next request)")
		}
		fmt.Println()
	}
	return nil
}

// whoamiCmd reports the server's view of the current user
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user and capabilities",
	Long: `Ask the server who you are. Prints the account email and the capability
set the server grants: write access, site scope, and superuser status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		rt.Manager.Restore(cmd.Context())
		if !rt.Manager.IsAuthenticated() {
			return fmt.Errorf("%s", httpclient.MsgSessionExpired)
		}

		caps := rt.Manager.Capabilities()
		if jsonOutput {
			kv := map[string]any{
				"email":             rt.Manager.CurrentUser(),
				"can_write":         caps.CanWrite,
				"can_see_all_sites": caps.CanSeeAllSites,
				"is_superuser":      caps.IsSuperuser,
			}
			if caps.SiteID != nil {
				kv["site_id"] = *caps.SiteID
			}
			printJSON(kv)
			return nil
		}

		fmt.Printf("Signed in as: %s\n", rt.Manager.CurrentUser())
		fmt.Printf("Write access: %v\n", caps.CanWrite)
		fmt.Printf("All sites: %v\n", caps.CanSeeAllSites)
		if caps.SiteID != nil {
			fmt.Printf("Site: %d\n", *caps.SiteID)
		}
		if caps.IsSuperuser {
			fmt.Println("Superuser: true")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(whoamiCmd)
}
