// Package main is the entry point for the campaign API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "campaign-api",
	Short: "Campaign API Server",
	Long:  `Campaign API provides a REST interface for managing tabletop RPG campaigns and running combat encounters.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
