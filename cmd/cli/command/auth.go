package command

import (
	"fmt"
	"time"

	"musify/cmd/cli/authentication"
	"musify/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

// auth.go handles authentication commands for the musifyCLI application.

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the Musify API server. Supports sign-up, sign-in, sign-out and whoami.`,
}

var signUpCmd = &cobra.Command{
	Use:   "sign-up",
	Short: "Create a new Musify account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.SignUpRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := anonymousClient().SignUp(ctx, &req)
		if err != nil {
			return fmt.Errorf("sign-up failed: %w", err)
		}

		fmt.Println("✓ Account created! Run `musifyCLI auth sign-in` to continue.")
		fmt.Printf("UserID: %s\n", user.ID)
		return nil
	},
}

var signInCmd = &cobra.Command{
	Use:   "sign-in",
	Short: "Sign in to your Musify account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.SignInRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := anonymousClient().SignIn(ctx, &req)
		if err != nil {
			return fmt.Errorf("sign-in failed: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken: resp.AccessToken,
			UserID:      resp.User.ID,
			Username:    resp.User.Username,
			Role:        resp.User.Role,
			ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}

		fmt.Printf("✓ Signed in as %s\n", resp.User.Username)
		return nil
	},
}

var signOutCmd = &cobra.Command{
	Use:   "sign-out",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Println("✓ Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		if creds.Expired(time.Now()) {
			return authentication.ErrNotSignedIn
		}

		fmt.Printf("Username: %s\n", creds.Username)
		fmt.Printf("UserID: %s\n", creds.UserID)
		fmt.Printf("Role: %s\n", creds.Role)
		fmt.Printf("Session expires: %s\n", time.Unix(creds.ExpiresAt, 0).Format(time.RFC1123))
		return nil
	},
}

// init function to add auth commands to root command
func init() {
	authCmd.AddCommand(signUpCmd, signInCmd, signOutCmd, whoamiCmd)

	signUpCmd.Flags().StringP("username", "u", "", "Username for the new account")
	signUpCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	signUpCmd.Flags().StringP("password", "p", "", "Password for the new account")
	_ = signUpCmd.MarkFlagRequired("username")
	_ = signUpCmd.MarkFlagRequired("email")
	_ = signUpCmd.MarkFlagRequired("password")

	signInCmd.Flags().StringP("email", "e", "", "Email address of the account")
	signInCmd.Flags().StringP("password", "p", "", "Password of the account")
	_ = signInCmd.MarkFlagRequired("email")
	_ = signInCmd.MarkFlagRequired("password")
}
