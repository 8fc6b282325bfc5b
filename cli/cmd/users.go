package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/precinct-systems/precinct-stack/cli/internal/client"
	"github.com/precinct-systems/precinct-stack/cli/pkg/output"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Officer account commands",
	Long:  "Manage officer accounts on the records service",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List officer accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		users, total, err := api.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(users)
		}

		output.Info("Officers (%d total):", total)
		table := output.NewTable("ID", "USERNAME", "NAME", "RANK", "ROLE", "STATUS")
		for _, u := range users {
			status := "ativo"
			if !u.Active {
				status = "desativado"
			}
			table.AddRow(u.ID, u.Username, u.Name, u.Rank, u.Role, status)
		}
		table.Render()
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an officer account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		rank, _ := cmd.Flags().GetString("rank")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")

		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		user, err := api.CreateUser(&client.CreateUserInput{
			Name:        name,
			Username:    username,
			Password:    password,
			Rank:        rank,
			Permissions: permissions,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		output.Success("Officer created")
		fmt.Printf("  ID:       %s\n", user.ID)
		fmt.Printf("  Username: %s\n", user.Username)
		fmt.Printf("  Name:     %s\n", user.Name)
		fmt.Printf("  Rank:     %s\n", user.Rank)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)

	usersCreateCmd.Flags().StringP("name", "n", "", "Full name (required)")
	usersCreateCmd.Flags().StringP("username", "u", "", "Username (required)")
	usersCreateCmd.Flags().StringP("password", "p", "", "Password (required)")
	usersCreateCmd.Flags().StringP("rank", "r", "", "Rank")
	usersCreateCmd.Flags().StringSlice("permissions", nil, "Permissions (comma-separated)")
	usersCreateCmd.MarkFlagRequired("name")
	usersCreateCmd.MarkFlagRequired("username")
	usersCreateCmd.MarkFlagRequired("password")
}
