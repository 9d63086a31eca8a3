// Package main provides the entry point for the HRMS dashboard agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hrms_agent",
	Short: "HRMS dynamic dashboard agent",
	Long:  "hrms_agent turns natural-language HR queries into rendered dashboard layouts: it searches the employee backend, analyzes the result shape, asks an LLM for a layout proposal and repairs it into a valid, renderable view.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
