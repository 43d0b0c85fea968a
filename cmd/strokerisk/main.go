package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strokerisk",
	Short: "stroke risk screening with nearby hospital lookup",
	Long: `
strokerisk classifies a patient's stroke risk from ten clinical features and,
when a risk is detected, lists hospitals near the given Indian pincode.
`,
	SilenceUsage: true,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
