package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/precinct-systems/precinct-stack/cli/internal/client"
	"github.com/precinct-systems/precinct-stack/cli/internal/config"
	"github.com/precinct-systems/precinct-stack/cli/pkg/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage authentication with the records service",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the records service",
	Long:  "Authenticate against the records service and save the token locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		serverURL, _ := cmd.Flags().GetString("server")

		if !cmd.Flags().Changed("server") {
			name, _ := cmd.Flags().GetString("profile")
			if profile, err := cfg.GetProfile(name); err == nil && profile.ServerURL != "" {
				serverURL = profile.ServerURL
			}
		}

		resp, err := client.New(serverURL, "").Login(username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		name, _ := cmd.Flags().GetString("profile")
		if name == "" {
			name = "default"
		}
		err = cfg.SaveProfile(name, &config.Profile{
			ServerURL: serverURL,
			Token:     resp.Token,
			Username:  username,
		})
		if err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		output.Success("Logged in as %s", username)
		output.Info("Profile '%s' saved to ~/.prctl/config.yaml", name)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the records service",
	Long:  "Remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("profile")
		if name == "" {
			name = cfg.CurrentProfile
		}
		if err := cfg.RemoveProfile(name); err != nil {
			return err
		}

		output.Success("Logged out from profile '%s'", name)
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		user, err := api.Me()
		if err != nil {
			return fmt.Errorf("token invalid or expired, run 'prctl auth login': %w", err)
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(user)
		}

		output.Info("Name: %s", user.Name)
		output.Info("Username: %s", user.Username)
		output.Info("Rank: %s", user.Rank)
		output.Info("Role: %s", user.Role)
		output.Info("Permissions: %d", len(user.Permissions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)

	authLoginCmd.Flags().StringP("username", "u", "", "Username")
	authLoginCmd.Flags().StringP("password", "p", "", "Password")
	authLoginCmd.Flags().String("server", "http://localhost:8080", "Records service URL")
	authLoginCmd.MarkFlagRequired("username")
	authLoginCmd.MarkFlagRequired("password")
}
