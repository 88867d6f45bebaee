package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/epmk/stackflow/internal/workspace"
)

var authForce bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to Google Workspace",
	Long: `auth runs the OAuth installed-app flow: it prints an authorization URL,
waits for the code Google shows after approval, and stores the exchanged
token next to the config. Workspace steps (Gmail, Sheets, Docs, Drive,
Calendar) need this token.`,
	SilenceUsage: true,
	RunE:         runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().BoolVar(&authForce, "force", false, "Re-authorize even if a token exists")
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	auth := workspace.NewStack(cfg.Workspace).Auth()

	if auth.HasToken() && !authForce {
		fmt.Println("A token is already present. Use --force to re-authorize.")
		return nil
	}

	url, err := auth.AuthURL()
	if err != nil {
		return err
	}
	fmt.Println("Open this URL in your browser and approve access:")
	fmt.Printf("\n  %s\n\n", url)
	fmt.Print("Paste the authorization code: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}
	code := strings.TrimSpace(line)
	if code == "" {
		return fmt.Errorf("no authorization code given")
	}

	token, err := auth.Exchange(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	if err := auth.SaveToken(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println("Token saved. Workspace pipelines are ready.")
	return nil
}
