package command

import (
	"fmt"

	"musify/cmd/cli/authentication"
	"musify/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your account",
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		profile, err := httpClient.GetMe(ctx)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		fmt.Printf("Username: %s\n", profile.Username)
		fmt.Printf("Email: %s\n", profile.Email)
		fmt.Printf("Role: %s\n", profile.Role)
		fmt.Printf("Member since: %s\n\n", profile.CreatedAt.Format("2006-01-02"))

		if len(profile.Reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}
		fmt.Printf("Reviews (%d):\n", len(profile.Reviews))
		for i := range profile.Reviews {
			printReview(&profile.Reviews[i])
		}
		return nil
	},
}

var updateProfileCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your username, email or password",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		var req dto.UpdateUserRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")
		if cmd.Flags().Changed("password") {
			password, _ := cmd.Flags().GetString("password")
			req.Password = &password
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := httpClient.UpdateUser(ctx, creds.UserID, &req)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		creds.Username = user.Username
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}

		fmt.Println("✓ Profile updated")
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account and all of your reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("account deletion cannot be undone, re-run with --yes to confirm")
		}

		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		httpClient, err := signedInClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := httpClient.DeleteUser(ctx, creds.UserID); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("account deleted but the local session could not be cleared: %w", err)
		}

		fmt.Println("✓ Account deleted")
		return nil
	},
}

func init() {
	profileCmd.AddCommand(showProfileCmd, updateProfileCmd, deleteProfileCmd)

	updateProfileCmd.Flags().StringP("username", "u", "", "New username")
	updateProfileCmd.Flags().StringP("email", "e", "", "New email address")
	updateProfileCmd.Flags().StringP("password", "p", "", "New password (optional)")
	_ = updateProfileCmd.MarkFlagRequired("username")
	_ = updateProfileCmd.MarkFlagRequired("email")

	deleteProfileCmd.Flags().Bool("yes", false, "Confirm account deletion")
}
