package cmd

import (
	"github.com/spf13/cobra"

	"github.com/precinct-systems/precinct-stack/cli/internal/seeder"
	"github.com/precinct-systems/precinct-stack/cli/pkg/output"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the server with sample records",
	Long:  "Generate realistic wanted persons, arrests and fines for testing and development",
	RunE: func(cmd *cobra.Command, args []string) error {
		wanted, _ := cmd.Flags().GetInt("wanted")
		arrests, _ := cmd.Flags().GetInt("arrests")
		fines, _ := cmd.Flags().GetInt("fines")
		seed, _ := cmd.Flags().GetInt64("seed")

		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		result := seeder.NewRunner(api).Run(seeder.Config{
			Wanted:  wanted,
			Arrests: arrests,
			Fines:   fines,
			Seed:    seed,
		})

		output.Success("Seeded %d wanted, %d arrests, %d fines", result.Wanted, result.Arrests, result.Fines)
		for _, err := range result.Errors {
			output.Warn("%v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Int("wanted", 10, "Number of wanted persons to create")
	seedCmd.Flags().Int("arrests", 20, "Number of arrests to create")
	seedCmd.Flags().Int("fines", 30, "Number of traffic fines to create")
	seedCmd.Flags().Int64("seed", 0, "Random seed (0 for non-deterministic)")
}
