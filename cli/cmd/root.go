package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/precinct-systems/precinct-stack/cli/internal/client"
	"github.com/precinct-systems/precinct-stack/cli/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prctl",
	Short: "Precinct Stack CLI",
	Long: `prctl is the command-line interface for the Precinct Stack.

Authenticate against the records service, manage officers and wanted
persons, and seed a fresh server with sample data from your terminal.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.prctl/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "profile to use (default: current profile)")
	rootCmd.PersistentFlags().String("output", "table", "output format: table, json")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		cfg = config.Default()
	}
}

// apiClient builds an authenticated client from the selected profile.
func apiClient(cmd *cobra.Command) (*client.Client, error) {
	name, _ := cmd.Flags().GetString("profile")
	profile, err := cfg.GetProfile(name)
	if err != nil {
		return nil, err
	}
	if profile.Token == "" {
		return nil, fmt.Errorf("profile has no token, run 'prctl auth login' first")
	}
	return client.New(profile.ServerURL, profile.Token), nil
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	return format
}
