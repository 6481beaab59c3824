package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"matrun/src"
	"matrun/src/locator"
	"matrun/src/mlver"
)

var pathArch string

var pathCmd = &cobra.Command{
	Use:   "path [version]",
	Short: "Print the root directory of an installed MATLAB Runtime",
	Long: `Print the install root of a runtime version, searching the install
prefix, the MATLAB_PATH location and the conventional MATLAB install
directories. Prints nothing and fails when the version is not
installed, so the output is safe to capture in scripts.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		version := mlver.LatestInstalled
		if len(args) == 1 {
			version = args[0]
		}

		arch, err := pickArch(pathArch)
		if err != nil {
			src.PrintError("%v", err)
			os.Exit(1)
		}
		prefix := src.GuessPrefix("", arch)

		if version == mlver.LatestInstalled {
			releases := locator.InstalledReleases(prefix)
			if len(releases) == 0 {
				src.PrintError("No runtimes installed under %s", prefix)
				os.Exit(1)
			}
			version = releases[0]
		}

		root, err := locator.FindRuntime(version, prefix, arch)
		if err != nil {
			src.PrintError("%v", err)
			os.Exit(1)
		}
		fmt.Println(root)
	},
}

func init() {
	pathCmd.Flags().StringVar(&pathArch, "arch", "", "Target platform (e.g. glnxa64, win64, maca64)")
	rootCmd.AddCommand(pathCmd)
}
