package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"matrun/src"
	"matrun/src/locator"
	"matrun/src/mlver"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the MATLAB Runtime versions installed under the prefix",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		arch, err := src.GuessArch()
		if err != nil {
			src.PrintError("%v", err)
			return
		}
		prefix := src.GuessPrefix("", arch)

		releases := locator.InstalledReleases(prefix)
		if len(releases) == 0 {
			src.PrintInfo("No runtimes installed under %s", prefix)
			return
		}

		yellow := src.Yellow()
		src.PrintHighlight("--- Installed Runtimes (%s) ---", prefix)
		for _, release := range releases {
			version, err := mlver.ToDotVersion(release)
			if err != nil {
				version = "?"
			}
			fmt.Printf("  %-12s %s\n", release, yellow.Sprint(version))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
