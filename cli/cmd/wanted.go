package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/precinct-systems/precinct-stack/cli/internal/client"
	"github.com/precinct-systems/precinct-stack/cli/pkg/output"
)

var wantedCmd = &cobra.Command{
	Use:   "wanted",
	Short: "Wanted person commands",
	Long:  "Manage the wanted persons register",
}

var wantedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wanted persons",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		wanted, total, err := api.ListWanted(status)
		if err != nil {
			return fmt.Errorf("failed to list wanted persons: %w", err)
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(wanted)
		}

		output.Info("Wanted persons (%d total):", total)
		table := output.NewTable("ID", "NAME", "CRIMES", "DANGER", "BOUNTY", "STATUS")
		for _, w := range wanted {
			table.AddRow(w.ID, w.Name, w.Crimes,
				strconv.Itoa(w.DangerLevel),
				fmt.Sprintf("%.2f", w.Bounty),
				w.Status)
		}
		table.Render()
		return nil
	},
}

var wantedAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a wanted person",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		crimes, _ := cmd.Flags().GetString("crimes")
		danger, _ := cmd.Flags().GetInt("danger")
		bounty, _ := cmd.Flags().GetFloat64("bounty")

		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		wanted, err := api.CreateWanted(&client.CreateWantedInput{
			Name:        name,
			Crimes:      crimes,
			DangerLevel: danger,
			Bounty:      bounty,
		})
		if err != nil {
			return fmt.Errorf("failed to add wanted person: %w", err)
		}

		output.Success("Wanted person registered")
		fmt.Printf("  ID:     %s\n", wanted.ID)
		fmt.Printf("  Name:   %s\n", wanted.Name)
		fmt.Printf("  Danger: %d\n", wanted.DangerLevel)
		return nil
	},
}

var wantedCaptureCmd = &cobra.Command{
	Use:   "capture [wanted-id]",
	Short: "Mark a wanted person as captured",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		wanted, err := api.CaptureWanted(args[0])
		if err != nil {
			return fmt.Errorf("failed to capture: %w", err)
		}

		output.Success("%s marked as %s", wanted.Name, wanted.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wantedCmd)
	wantedCmd.AddCommand(wantedListCmd)
	wantedCmd.AddCommand(wantedAddCmd)
	wantedCmd.AddCommand(wantedCaptureCmd)

	wantedListCmd.Flags().String("status", "", "Filter by status (procurado, capturado)")

	wantedAddCmd.Flags().StringP("name", "n", "", "Name (required)")
	wantedAddCmd.Flags().StringP("crimes", "c", "", "Crimes (required)")
	wantedAddCmd.Flags().IntP("danger", "d", 1, "Danger level 1-5")
	wantedAddCmd.Flags().Float64P("bounty", "b", 0, "Bounty amount")
	wantedAddCmd.MarkFlagRequired("name")
	wantedAddCmd.MarkFlagRequired("crimes")
}
