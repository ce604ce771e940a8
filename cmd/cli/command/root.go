package command

// root.go defines the root command for the musifyCLI application.
// set up the global flags here.

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"musify/cmd/cli/authentication"
	"musify/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var apiURL string // Global flag for API server URL

const requestTimeout = 15 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "musifyCLI",
	Short: "musifyCLI - Musify Command Line Interface",
	Long: `musifyCLI is a tool for users to interact with the Musify API. User can use this application to:
- Browse albums and read their reviews
- Rate and review albums
- Manage their own account

Use "musifyCLI command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("MUSIFY_API_URL", "http://localhost:8080"), "API server URL")

	rootCmd.AddCommand(authCmd, albumCmd, reviewCmd, profileCmd)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// commandContext bounds a single API call.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, requestTimeout)
}

// anonymousClient is used for the public endpoints.
func anonymousClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

// signedInClient carries the stored bearer token.
func signedInClient() (*client.HTTPClient, error) {
	token, err := authentication.ActiveToken()
	if err != nil {
		return nil, err
	}
	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetToken(token)
	return httpClient, nil
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %q", what, arg)
	}
	return id, nil
}
