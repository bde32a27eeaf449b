// farmctl is the operator CLI for the farmops service. Read and trigger
// commands go through the HTTP API; setup and seeding talk to the database
// directly.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	client := &apiClient{}

	cmd := &cobra.Command{
		Use:           "farmctl",
		Short:         "Operate the farmops order/plan/task pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&client.baseURL, "api-url", envOr("API_URL", "http://localhost:8080"), "farmops API base URL")
	cmd.PersistentFlags().StringVar(&client.apiKey, "api-key", os.Getenv("API_KEY"), "farmops API key")

	cmd.AddCommand(
		templatesCmd(client),
		backfillCmd(client),
		plansCmd(client),
		recipesCmd(client),
		tasksCmd(client),
		sweepCmd(client),
		setupCmd(),
		seedRecipesCmd(),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
