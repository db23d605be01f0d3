package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/vuzo-ai/vzdash/internal/cli"
	"github.com/vuzo-ai/vzdash/internal/keys"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage gateway API keys",
	RunE:  runKeysList,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all API keys",
	RunE:  runKeysList,
}

var keysCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new API key",
	Long: `Creates a new API key and prints the full secret exactly once.
Copy it immediately — the gateway stores only a hash, and neither it nor
vzdash can show the secret again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeysCreate,
}

var keysRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Permanently revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysRevoke,
}

func init() {
	keysRevokeCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	keysCmd.AddCommand(keysListCmd, keysCreateCmd, keysRevokeCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysList(_ *cobra.Command, _ []string) error {
	client, _ := newClient()
	manager := keys.NewManager(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	list, err := manager.List(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("\n  No API keys yet. Create one with `vzdash keys create`.")
		return nil
	}

	fmt.Println()
	rows := make([][]string, 0, len(list))
	for _, k := range list {
		status := cli.Good("active")
		if !k.IsActive {
			status = cli.Bad("revoked")
		}
		rows = append(rows, []string{
			k.Name,
			k.ID,
			k.KeyPrefix + "...",
			status,
			fmt.Sprintf("%d", k.RateLimitRPM),
			cli.FormatTime(k.CreatedAt),
			cli.FormatDate(k.LastUsedAt),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "API KEYS",
		Headers: []string{"Name", "ID", "Prefix", "Status", "RPM", "Created", "Last used"},
		Rows:    rows,
	}))
	return nil
}

func runKeysCreate(_ *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		// No name argument: ask, but accept blank (the manager falls back
		// to the default label).
		input := huh.NewInput().
			Title("Key name").
			Placeholder("e.g. Production (Enter for default)").
			Value(&name)
		if err := input.Run(); err != nil {
			return err
		}
	}

	client, _ := newClient()
	manager := keys.NewManager(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := manager.Create(ctx, name)
	if err != nil {
		return err
	}

	// Only render path for the secret. It lives in this one response and
	// nowhere else; once this scope returns it is unrecoverable.
	fmt.Println()
	fmt.Println("  " + cli.Good("Key created: "+created.Name))
	fmt.Println()
	fmt.Println("  " + created.Key)
	fmt.Println()
	fmt.Println("  " + cli.Warn("Copy it now — it won't be shown again."))
	fmt.Println("  " + cli.Muted("Only the prefix "+created.KeyPrefix+"... will appear in listings."))
	return nil
}

func runKeysRevoke(_ *cobra.Command, args []string) error {
	id := args[0]

	if !flagYes {
		var confirmed bool
		confirm := huh.NewConfirm().
			Title("Revoke key " + id + "?").
			Description("Revocation is permanent. The key stops working immediately and cannot be reactivated.").
			Value(&confirmed)
		if err := confirm.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	client, _ := newClient()
	manager := keys.NewManager(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := manager.Revoke(ctx, id); err != nil {
		return err
	}

	fmt.Println("  " + cli.Good("Key revoked."))
	return nil
}
