// Package cli implements the ninth command-line interface using Cobra.
// Each subcommand maps to one journal surface (vote, entry, goal, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ninth",
	Short: "ninth — Become the 9th character",
	Long: `ninth is a local-first identity and productivity tracker.
Cast a daily vote for who you want to be, log presence and deep work,
and level up through the presence and Character 9 progressions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// user is the account every subcommand operates on.
var user string

func init() {
	defaultUser := os.Getenv("NINTH_USER")
	if defaultUser == "" {
		defaultUser = "default"
	}
	rootCmd.PersistentFlags().StringVar(&user, "user", defaultUser, "User the command applies to")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
