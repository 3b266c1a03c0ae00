package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/workshop/session"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the workshop server",
		Long: `Login to the workshop server to obtain an authentication token pair.
Tokens are stored in the credential store and refreshed silently when they
expire, so a login normally lasts until you log out.

Credentials can come from flags, WORKSHOP_EMAIL / WORKSHOP_PASSWORD in the
environment (a local .env is honored), or an interactive prompt.

Example:
  workshop login --email manager@example.com --passwd secret
  workshop login --email manager@example.com  # prompts for the password`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("passwd", "", "Password for authentication")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = os.Getenv("WORKSHOP_EMAIL")
	}
	if email == "" {
		return fmt.Errorf("no email provided. Use --email flag or set WORKSHOP_EMAIL")
	}

	passwd, _ := cmd.Flags().GetString("passwd")
	if passwd == "" {
		passwd = os.Getenv("WORKSHOP_PASSWORD")
	}
	if passwd == "" {
		fmt.Fprintf(os.Stderr, "Password for %s: ", email)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		passwd = strings.TrimSpace(line)
	}

	pair, err := rt.Manager.Login(cmd.Context(), email, passwd)
	if err != nil {
		return fmt.Errorf("%s", httpclient.ErrorMessage(err))
	}

	expiry := session.TokenExpiry(pair.Access)

	if jsonOutput {
		kv := map[string]interface{}{
			"status": "success",
			"email":  rt.Manager.CurrentUser(),
		}
		if !expiry.IsZero() {
			kv["expires_at"] = expiry.Format(time.RFC3339)
		}
		printJSON(kv)
	} else {
		okLabel.Println("✓ Login successful")
		fmt.Printf("Signed in as: %s\n", rt.Manager.CurrentUser())
		if !expiry.IsZero() {
			fmt.Printf("Access token expires at: %s\n", expiry.Local().Format("2006-01-02 15:04:05 MST"))
		}
	}

	return nil
}

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		Long: `Sign out of the workshop server. The refresh token is invalidated
server-side on a best-effort basis and local credentials are removed either way.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.Manager.Logout(cmd.Context())

			if jsonOutput {
				printJSON(map[string]int{"result": 1})
			} else {
				okLabel.Println("✓ Signed out")
			}
			return nil
		},
	}
}
