package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "rentalctl",
		Short: "Maintenance commands for the rentalhub API",
	}
	rootCmd.PersistentFlags().String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")

	rootCmd.AddCommand(
		migrateCmd(),
		cleanupCmd(),
		seedCmd(),
		vapidCmd(),
		qrCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
