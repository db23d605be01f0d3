package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/config"
	"github.com/vuzo-ai/vzdash/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flagExpiresIn time.Duration

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a dashboard session token",
	Long: `Stores the bearer token used for dashboard API calls. Grab it from the
web dashboard (Settings > Session) or your auth provider. The token is kept
in ` + config.SessionPath() + ` with owner-only permissions.

Alternatively, set VUZO_SESSION_TOKEN for one-shot use.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := session.NewStore(config.SessionPath()).Clear(); err != nil {
			return err
		}
		fmt.Println("  Session cleared.")
		return nil
	},
}

func init() {
	loginCmd.Flags().DurationVar(&flagExpiresIn, "expires-in", 0, "Session lifetime (0 = no expiry recorded)")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	fmt.Fprint(os.Stderr, "  Session token (input hidden): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return fmt.Errorf("empty token")
	}

	sess := session.Session{Token: token}
	if flagExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(flagExpiresIn)
	}

	if err := session.NewStore(config.SessionPath()).Save(sess); err != nil {
		return err
	}

	fmt.Println("  " + cli.Good("Session saved."))
	if !sess.ExpiresAt.IsZero() {
		fmt.Println("  " + cli.Muted("Expires "+cli.FormatTime(sess.ExpiresAt)))
	}
	return nil
}
