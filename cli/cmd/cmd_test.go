package cmd

import (
	"strings"
	"testing"

	"github.com/precinct-systems/precinct-stack/cli/internal/config"
)

func TestCommandsRegistered(t *testing.T) {
	cfg = config.Default()

	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	expected := map[string]bool{
		"auth":   false,
		"users":  false,
		"wanted": false,
		"seed":   false,
	}

	for _, c := range rootCmd.Commands() {
		name := strings.Fields(c.Use)[0]
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestAuthSubcommands(t *testing.T) {
	expected := map[string]bool{
		"login":  false,
		"logout": false,
		"whoami": false,
	}

	for _, c := range authCmd.Commands() {
		name := strings.Fields(c.Use)[0]
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("auth subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, flag := range []string{"config", "profile", "output"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag %q not registered", flag)
		}
	}
}
