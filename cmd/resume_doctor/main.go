// Package main provides the entry point for the Resume Doctor HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_doctor",
	Short: "Resume Doctor HTTP API Server",
	Long:  "Resume Doctor scores uploaded resumes with AI-assisted analysis, extracts structured resume data, and enforces tiered daily quotas via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
