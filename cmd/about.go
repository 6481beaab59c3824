package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"matrun/src"
)

const (
	homepage = "https://github.com/matrun/matrun"
	license  = "MIT"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Display details and information about Matrun",
	Run: func(cmd *cobra.Command, args []string) {
		yellow := src.Yellow()

		fmt.Println()
		fmt.Printf("  %s\n\n", cmd.Root().Short)

		fmt.Printf("  %-12s %s\n", "Version:", yellow.Sprint(cmd.Root().Version))
		fmt.Printf("  %-12s %s\n", "Homepage:", yellow.Sprint(homepage))
		fmt.Printf("  %-12s %s\n", "License:", yellow.Sprint(license))

		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}
