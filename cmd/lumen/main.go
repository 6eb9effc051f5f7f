package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumen",
		Short: "Lumen - real-time chat backend",
		Long: `Lumen is a chat backend with live websocket relay.

Each user message triggers a generated reply; both are persisted and
pushed to every device the user has open.`,
	}

	rootCmd.AddCommand(
		serveCmd(),
		userCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
