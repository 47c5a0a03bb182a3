package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fifosim",
	Short: "fifosim simulates FIFO process scheduling.",
	Long: `fifosim simulates first-in-first-out process scheduling. Processes ` +
		`enter a ready queue and a simulated CPU executes them one at a time, ` +
		`with a fixed execution interval and a fixed pause between steps.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A .env file may provide defaults such as FIFOSIM_MONITOR_PORT.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
